package controllers

import (
	"net/http"
	"time"

	"github.com/gayabeauty/storefront-backend/api/responses"
	"github.com/gayabeauty/storefront-backend/internal/catalog"
	"github.com/gayabeauty/storefront-backend/pkg/config"
	"github.com/gayabeauty/storefront-backend/pkg/logger"
	"github.com/gayabeauty/storefront-backend/pkg/redis"
)

// HealthLive reports process liveness.
func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, map[string]any{
			"status": "ok",
			"env":    cfg.App.Env,
		})
	}
}

// HealthReady reports whether the dependencies the API needs are reachable.
func HealthReady(cfg *config.Config, logg *logger.Logger, redisClient redis.Pinger, catalogSvc catalog.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		checks := map[string]string{}
		healthy := true

		if redisClient != nil {
			if err := redisClient.Ping(r.Context()); err != nil {
				checks["redis"] = err.Error()
				healthy = false
			} else {
				checks["redis"] = "ok"
			}
		}

		if catalogSvc != nil {
			if snapshot := catalogSvc.Latest(); snapshot != nil {
				checks["catalog"] = "ok"
			} else {
				checks["catalog"] = "no snapshot yet"
			}
		}

		status := http.StatusOK
		state := "ready"
		if !healthy {
			status = http.StatusServiceUnavailable
			state = "degraded"
			if logg != nil {
				logg.Warn(logg.WithField(r.Context(), "checks", checks), "readiness check failed")
			}
		}

		responses.WriteSuccessStatus(w, status, map[string]any{
			"status": state,
			"checks": checks,
			"time":   time.Now().UTC().Format(time.RFC3339),
		})
	}
}
