package app

import (
	"html/template"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/tempizhere/linktrack/internal/service"
	"go.uber.org/zap"
)

var errorPage = template.Must(template.New("error").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>{{.Message}}</title></head>
<body><p>{{.Message}}. <a href="{{.Home}}">Go to home page</a></p></body>
</html>
`))

var homePage = template.Must(template.New("home").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>linktrack</title></head>
<body>
{{if .Error}}<p role="alert">{{.Error}}</p>{{end}}
<p>Short links with click analytics. Manage links through <code>/api/links</code>.</p>
</body>
</html>
`))

// homeURL возвращает адрес главной страницы с сообщением об ошибке
func (a *App) homeURL(msg string) string {
	return a.svc.BaseURL() + "/?error=" + url.QueryEscape(msg)
}

// HandleRedirect обрабатывает GET-запросы на "/{code}".
// Успешный исход отдаёт 302; для ошибок возвращается их статус и Refresh на главную,
// чтобы браузер попал на страницу с сообщением, а API-клиент видел настоящий код.
func (a *App) HandleRedirect(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	outcome := a.svc.Resolve(r.Context(), code, r.Header)
	if outcome.Kind == service.OutcomeResolved {
		w.Header().Set("Cache-Control", "no-store")
		http.Redirect(w, r, outcome.URL, outcome.StatusCode())
		return
	}

	home := a.homeURL(outcome.Message())
	w.Header().Set("Refresh", "0; url="+home)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(outcome.StatusCode())
	err := errorPage.Execute(w, struct{ Message, Home string }{outcome.Message(), home})
	if err != nil {
		a.logger.Debug("Failed to write error page", zap.Error(err))
	}
}

// HandleHome обрабатывает GET-запросы на "/"
func (a *App) HandleHome(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if err := homePage.Execute(w, struct{ Error string }{r.URL.Query().Get("error")}); err != nil {
		a.logger.Debug("Failed to write home page", zap.Error(err))
	}
}
