// Package server exposes the movie helpers over HTTP for the front end.
package server

import (
	"net/http"
	"slices"

	"github.com/gorilla/mux"
)

// corsMiddleware allows cross-origin requests from the configured origins.
// "*" allows any origin.
func corsMiddleware(allowedOrigins []string) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin != "" && isAllowedOrigin(allowedOrigins, origin) {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Set("Vary", "Origin")
				w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
				w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
			}

			// Handle preflight requests
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func isAllowedOrigin(allowed []string, origin string) bool {
	return slices.Contains(allowed, "*") || slices.Contains(allowed, origin)
}

// NewRouter constructs the mux router with all API routes.
func NewRouter(h *Handler, allowedOrigins []string) *mux.Router {
	r := mux.NewRouter()

	r.Use(corsMiddleware(allowedOrigins))
	r.Use(loggingMiddleware)

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/genres", h.Genres).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/genres/{id:[0-9]+}/views", h.RecordView).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/movies/discover", h.Discover).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/movies/by-genre", h.ByGenre).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/movies/home", h.Home).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/stats", h.ListStats).Methods(http.MethodGet, http.MethodOptions)

	return r
}
