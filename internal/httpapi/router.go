package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter mounts the API behind the standard middleware stack. corsOrigins
// may be empty to skip CORS entirely (the CLI path never needs it).
func NewRouter(api *API, corsOrigins []string) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	if len(corsOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: corsOrigins,
			AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
			AllowedHeaders: []string{"Content-Type"},
			ExposedHeaders: []string{"Content-Length"},
			MaxAge:         300,
		}))
	}

	r.Get("/banks", api.HandleBanks)
	r.Get("/chapters", api.HandleChapters)
	r.Get("/counts", api.HandleCounts)

	r.Route("/sessions", func(sr chi.Router) {
		sr.Post("/", api.HandleStartSession)
		sr.Get("/{session_id}", api.HandleSession)
		sr.Post("/{session_id}/answers", api.HandleAnswer)
		sr.Post("/{session_id}/advance", api.HandleAdvance)
		sr.Post("/{session_id}/retreat", api.HandleRetreat)
		sr.Get("/{session_id}/results", api.HandleSessionResults)
		sr.Delete("/{session_id}", api.HandleDeleteSession)
	})

	r.Get("/results", api.HandleArchivedResults)
	r.Get("/results/chapters", api.HandleChapterAccuracy)

	return r
}
