package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"aren-backend/internal/handlers"
	"aren-backend/internal/middleware"
)

func New(
	tutorHandler *handlers.TutorHandler,
	limiter middleware.Limiter,
	frontendURL string,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.CORS(frontendURL))

	r.Get("/", tutorHandler.Welcome)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api/v1", func(r chi.Router) {
		// Every route here can reach the model backend
		r.Group(func(r chi.Router) {
			r.Use(middleware.RateLimit(limiter))
			r.Post("/ask", tutorHandler.Ask)
			r.Post("/prompt", tutorHandler.Prompt)
			r.Get("/ai/test-connection", tutorHandler.TestConnection)
		})
	})

	return r
}
