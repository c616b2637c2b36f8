package a

import (
	"context"
	"net/http"
	"time"
)

func work(ctx context.Context) {}

func handler(w http.ResponseWriter, r *http.Request) {
	go work(r.Context()) // want `request context passed to a goroutine`

	go func() {
		work(r.Context()) // want `request context passed to a goroutine`
	}()

	go work(context.WithoutCancel(r.Context()))

	go func() {
		ctx, cancel := context.WithTimeout(context.WithoutCancel(r.Context()), time.Second)
		defer cancel()
		work(ctx)
	}()

	work(r.Context())

	go work(context.Background())
}

type notRequest struct{}

func (notRequest) Context() context.Context { return context.Background() }

func other(n notRequest) {
	go work(n.Context())
}
