package rest

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ideagarden/backend/internal/config"
	"github.com/ideagarden/backend/internal/transport/middleware"
)

// NewRouter assembles the HTTP API. Health probes stay outside the API
// key check; everything under /api requires it when a key is configured.
func NewRouter(
	logger *slog.Logger,
	cfg *config.Config,
	health *HealthHandler,
	journal *JournalHandler,
	idea *IdeaHandler,
	writing *WritingHandler,
) http.Handler {
	r := chi.NewRouter()

	base := middleware.Chain(
		middleware.RequestID,
		middleware.Recovery(logger),
		middleware.Logger(logger),
		middleware.CORS(cfg.CORS),
	)

	r.Group(func(r chi.Router) {
		r.Get("/health", health.Health)
		r.Get("/health/live", health.Live)
		r.Get("/health/ready", health.Ready)
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.APIKey(cfg.Auth.APIKey))

		r.Post("/submit", journal.Submit)

		r.Route("/entries", func(r chi.Router) {
			r.Get("/", journal.List)
			r.Post("/merge", journal.Merge)
			r.Get("/{id}", journal.Get)
			r.Delete("/{id}", journal.Delete)
		})

		r.Route("/ideas", func(r chi.Router) {
			r.Patch("/{id}", idea.UpdateStatus)
			r.Post("/{id}/plan", idea.GeneratePlan)
		})

		r.Route("/writing", func(r chi.Router) {
			r.Get("/active", writing.Active)
			r.Get("/{ideaId}", writing.GetWorkspace)
			r.Put("/{ideaId}", writing.UpdateWorkspace)
			r.Post("/{ideaId}/feedback", writing.Feedback)
			r.Get("/{ideaId}/chat", writing.Conversation)
			r.Post("/{ideaId}/chat", writing.Chat)
			r.Post("/{ideaId}/upload", writing.Upload)
		})
	})

	return base(r)
}
