package service

import (
	"errors"
	"net/url"
	"regexp"

	"github.com/go-playground/validator/v10"
)

var shortCodePattern = regexp.MustCompile(`^[A-Za-z0-9_-]{4,10}$`)

// reservedCodes совпадают с фиксированными маршрутами HTTP-сервера
var reservedCodes = map[string]struct{}{
	"ping":    {},
	"metrics": {},
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("shortcode", func(fl validator.FieldLevel) bool {
		return ValidShortCode(fl.Field().String())
	})
	return v
}

// ValidShortCode проверяет формат пользовательского короткого кода
func ValidShortCode(code string) bool {
	if _, reserved := reservedCodes[code]; reserved {
		return false
	}
	return shortCodePattern.MatchString(code)
}

// validationError переводит ошибку валидатора в доменную ошибку
func validationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}
	switch verrs[0].Field() {
	case "Code":
		return ErrInvalidCode
	default:
		return ErrInvalidURL
	}
}

// httpURL дополнительно требует схему http или https
func httpURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
