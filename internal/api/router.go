package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"claudechat-backend/internal/config"
	"claudechat-backend/internal/handlers"
)

// RouterDependencies holds all the dependencies required by the router setup,
// primarily handlers and configuration.
type RouterDependencies struct {
	ChatHandler *handlers.ChatHandlers
	Config      *config.Config
	Logger      zerolog.Logger
}

// NewRouter creates and configures the main Chi router for the application.
func NewRouter(deps RouterDependencies) *chi.Mux {
	if deps.ChatHandler == nil {
		panic("ChatHandler dependency is nil in router setup")
	}

	r := chi.NewRouter()

	// --- Base Middleware Stack ---
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger(deps.Logger)...)
	r.Use(middleware.Recoverer)
	// No request timeout: a turn runs to completion once issued.

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.Config.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Requested-With"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}))

	// --- Public Routes ---
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	r.Route("/v1/sessions", func(r chi.Router) {
		r.Post("/", deps.ChatHandler.HandleCreateSession)

		// --- Session Routes (token bound to {sessionID}) ---
		r.Route("/{sessionID}", func(r chi.Router) {
			r.Use(SessionAuthMiddleware(deps.Config.JWTSecret))

			r.Get("/", deps.ChatHandler.HandleGetSession)
			r.Delete("/", deps.ChatHandler.HandleCloseSession)
			r.Post("/messages", deps.ChatHandler.HandleSendMessage)
			r.Get("/steps", deps.ChatHandler.HandleGetSteps)
		})
	})

	return r
}
