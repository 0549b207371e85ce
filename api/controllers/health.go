package controllers

import (
	"net/http"

	"github.com/hypermart/pos-backend/api/responses"
	"github.com/hypermart/pos-backend/pkg/config"
	"github.com/hypermart/pos-backend/pkg/db"
	pkgerrors "github.com/hypermart/pos-backend/pkg/errors"
	"github.com/hypermart/pos-backend/pkg/logger"
)

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Hypermart-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

func HealthReady(cfg *config.Config, logg *logger.Logger, client *db.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Hypermart-Env", cfg.App.Env)
		if err := client.Ping(r.Context()); err != nil {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.Wrap(pkgerrors.CodeInternal, err, "database is not reachable"))
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
