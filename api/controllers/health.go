package controllers

import (
	"context"
	"net/http"

	"github.com/kegworks/taproom-backend/api/responses"
	"github.com/kegworks/taproom-backend/pkg/config"
	pkgerrors "github.com/kegworks/taproom-backend/pkg/errors"
	"github.com/kegworks/taproom-backend/pkg/logger"
)

// Pinger is anything with a health probe. Nil pingers are skipped, so
// optional backends (redis in dev) don't fail readiness.
type Pinger interface {
	Ping(ctx context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Taproom-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "ok"})
	}
}

func HealthReady(cfg *config.Config, logg *logger.Logger, pingers ...Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		for _, p := range pingers {
			if p == nil {
				continue
			}
			if err := p.Ping(r.Context()); err != nil {
				responses.WriteError(r.Context(), logg, w,
					pkgerrors.Wrap(pkgerrors.CodePersistence, err, "dependency not ready"))
				return
			}
		}
		w.Header().Set("X-Taproom-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
