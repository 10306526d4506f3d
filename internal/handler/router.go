// internal/handler/router.go
package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/unclebandit/campaign-scheduler/internal/controller"
	"github.com/unclebandit/campaign-scheduler/internal/logx"
	"github.com/unclebandit/campaign-scheduler/internal/metrics"
)

// NewRouter mounts the catalog API plus /healthz and /metrics.
func NewRouter(ctrl *controller.CatalogController, requestTimeout time.Duration) http.Handler {
	r := chi.NewRouter()
	r.Use(Observability)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(requestTimeout))

	r.NotFound(jsonStatus(http.StatusNotFound, "NotFound", "Resource not found"))
	r.MethodNotAllowed(jsonStatus(http.StatusMethodNotAllowed, "MethodNotAllowed", "Method not allowed"))

	r.Get("/healthz", Healthz)
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	r.Route("/api", func(r chi.Router) {
		// Recipient lists
		r.Get("/recipient_lists", ctrl.ListRecipientLists)
		r.Post("/recipient_lists", ctrl.CreateRecipientList)

		// Recipients
		r.Get("/recipients", ctrl.ListRecipients)
		r.Post("/recipients", ctrl.CreateRecipient)
		r.Get("/recipients/{recipient_category}", ctrl.RecipientsByCategory)

		// Email templates
		r.Get("/email_templates", ctrl.ListEmailTemplates)
		r.Post("/email_templates", ctrl.CreateEmailTemplate)

		// Campaign routes
		r.Get("/campaigns", ctrl.ListCampaigns)
		r.Post("/campaigns", ctrl.CreateCampaign)
		r.Delete("/campaigns/delete", ctrl.CancelCampaign)
		r.Get("/campaigns/{status}", ctrl.CampaignsByStatus)
		r.Put("/campaigns/{name}", ctrl.UpdateCampaign)
		r.Patch("/campaigns/{name}", ctrl.PatchCampaign)
	})

	return r
}

func Healthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("ok")); err != nil {
		logx.L().Warnw("response_write_failed", "err", err)
	}
}

func jsonStatus(status int, code, message string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if err := json.NewEncoder(w).Encode(map[string]string{"error": code, "message": message}); err != nil {
			logx.L().Warnw("response_encode_failed", "err", err)
		}
	}
}
