package middleware

import (
	"context"
	"net/http"

	"hookdesk/internal/pkg/errors"
)

type Readiness interface {
	WaitReady(ctx context.Context) error
}

// RequireReady holds requests until the initial subscription load is done.
func RequireReady(ready Readiness) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if err := ready.WaitReady(r.Context()); err != nil {
				errors.WriteError(w, http.StatusServiceUnavailable, errors.ErrCodeServiceUnavailable, "Subscriptions are still loading", nil)
				return
			}
			next(w, r)
		}
	}
}
