package main

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"github.com/dmitrymomot/sessionguard/pkg/clientip"
	"github.com/dmitrymomot/sessionguard/pkg/fingerprint"
	"github.com/dmitrymomot/sessionguard/pkg/httpserver"
	"github.com/dmitrymomot/sessionguard/pkg/logger"
	"github.com/dmitrymomot/sessionguard/pkg/requestid"
	"github.com/dmitrymomot/sessionguard/pkg/session"
)

const visitsField = "visits"

type statusResponse struct {
	Hijacked bool   `json:"hijacked"`
	Visits   int    `json:"visits"`
	Request  string `json:"request_id,omitempty"`
}

func newRouter(log *slog.Logger, mgr *session.Manager, guardCfg fingerprint.Config, checks map[string]httpserver.Check) http.Handler {
	r := chi.NewRouter()
	r.Use(requestid.Middleware)
	r.Use(clientip.Middleware)
	r.Use(middleware.Recoverer)

	r.Get("/health/live", httpserver.LivenessHandler())
	r.Get("/health/ready", httpserver.ReadinessHandler(log, checks))

	r.Post("/logout", func(w http.ResponseWriter, r *http.Request) {
		if err := mgr.Destroy(r.Context(), w, r); err != nil {
			log.ErrorContext(r.Context(), "failed to destroy session",
				logger.Component("guarddemo"),
				logger.Error(err),
			)
			render.Status(r, http.StatusInternalServerError)
			render.PlainText(w, r, http.StatusText(http.StatusInternalServerError))
			return
		}
		render.NoContent(w, r)
	})

	r.Group(func(r chi.Router) {
		r.Use(fingerprint.MiddlewareFromConfig(guardCfg, mgr, fingerprint.WithLogger(log)))

		r.Get("/", statusHandler(log, mgr))
		r.With(fingerprint.RequireIntact).Get("/account", func(w http.ResponseWriter, r *http.Request) {
			render.JSON(w, r, map[string]string{"account": "ok"})
		})
	})

	return r
}

// statusHandler counts visits in the session and reports the guard result.
// The counter resets whenever the guard replaces a hijacked session.
func statusHandler(log *slog.Logger, mgr *session.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		id, _ := session.IDFromContext(ctx)

		unlock := mgr.Lock(id)
		visits, err := incrementVisits(r, log, mgr.Store(), id)
		unlock()
		if err != nil {
			log.ErrorContext(ctx, "failed to update visits",
				logger.Component("guarddemo"),
				logger.SessionID(id),
				logger.Error(err),
			)
			render.Status(r, http.StatusInternalServerError)
			render.PlainText(w, r, http.StatusText(http.StatusInternalServerError))
			return
		}

		render.JSON(w, r, statusResponse{
			Hijacked: fingerprint.IsHijacked(ctx),
			Visits:   visits,
			Request:  requestid.FromContext(ctx),
		})
	}
}

func incrementVisits(r *http.Request, log *slog.Logger, store session.Store, id string) (int, error) {
	var visits int
	raw, err := store.GetField(r.Context(), id, visitsField)
	switch {
	case err == nil:
		if err := json.Unmarshal(raw, &visits); err != nil {
			log.WarnContext(r.Context(), "discarding unreadable visit counter",
				logger.Component("guarddemo"),
				logger.SessionID(id),
				logger.Error(err),
			)
			visits = 0
		}
	case !errors.Is(err, session.ErrFieldNotFound):
		return 0, err
	}

	visits++
	raw, err = json.Marshal(visits)
	if err != nil {
		return 0, err
	}
	if err := store.SetField(r.Context(), id, visitsField, raw); err != nil {
		return 0, err
	}
	return visits, nil
}
