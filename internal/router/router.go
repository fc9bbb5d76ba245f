package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"denizsel-backend/internal/handlers"
	"denizsel-backend/internal/middleware"
)

func New(
	chatHandler *handlers.ChatHandler,
	contactHandler *handlers.ContactHandler,
	chatLimiter *middleware.RateLimiter,
	contactLimiter *middleware.RateLimiter,
	frontendURL string,
	trustProxy bool,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	if trustProxy {
		r.Use(chimiddleware.RealIP)
	}
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.CORS(frontendURL))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api", func(r chi.Router) {
		r.With(chatLimiter.Middleware).Post("/chat", chatHandler.Chat)
		r.With(contactLimiter.Middleware).Post("/contact", contactHandler.Submit)
	})

	return r
}
