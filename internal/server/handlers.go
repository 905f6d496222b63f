package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"github.com/lepinkainen/marquee/internal/movies"
	"github.com/lepinkainen/marquee/internal/stats"
	"github.com/lepinkainen/marquee/internal/tmdb"
)

type movieService interface {
	Genres(ctx context.Context) ([]tmdb.Genre, error)
	DiscoverRaw(ctx context.Context, genreID int) (*tmdb.DiscoverPage, error)
	Discover(ctx context.Context, genreID int) ([]movies.ProjectedMovie, error)
	Categorize(ctx context.Context, genreID int) (*movies.GenreGroups, error)
	Home(ctx context.Context, genreStats []movies.GenreStat, k int) *movies.HomeMovies
}

var _ movieService = (*movies.Service)(nil)

type statsStore interface {
	List(ctx context.Context) ([]movies.GenreStat, error)
	RecordView(ctx context.Context, id int, name string) (movies.GenreStat, error)
}

var _ statsStore = (*stats.Store)(nil)

// Handler serves the movie API.
type Handler struct {
	Service       movieService
	Store         statsStore
	TopCategories int
}

// NewHandler creates a Handler. topCategories is the default number of home page genres.
func NewHandler(svc movieService, store statsStore, topCategories int) *Handler {
	return &Handler{Service: svc, Store: store, TopCategories: topCategories}
}

// Genres handles GET /api/genres
func (h *Handler) Genres(w http.ResponseWriter, r *http.Request) {
	genres, err := h.Service.Genres(r.Context())
	if err != nil {
		upstreamError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, genres)
}

// Discover handles GET /api/movies/discover?genre=ID&raw=true
func (h *Handler) Discover(w http.ResponseWriter, r *http.Request) {
	genreID, ok := genreParam(w, r)
	if !ok {
		return
	}

	if raw, _ := strconv.ParseBool(r.URL.Query().Get("raw")); raw {
		page, err := h.Service.DiscoverRaw(r.Context(), genreID)
		if err != nil {
			upstreamError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, page)
		return
	}

	projected, err := h.Service.Discover(r.Context(), genreID)
	if err != nil {
		upstreamError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, projected)
}

// ByGenre handles GET /api/movies/by-genre?genre=ID
func (h *Handler) ByGenre(w http.ResponseWriter, r *http.Request) {
	genreID, ok := genreParam(w, r)
	if !ok {
		return
	}

	groups, err := h.Service.Categorize(r.Context(), genreID)
	if err != nil {
		upstreamError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, groups)
}

// Home handles GET /api/movies/home?top=N
func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	top := h.TopCategories
	if raw := strings.TrimSpace(r.URL.Query().Get("top")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			jsonError(w, "top must be a non-negative integer", http.StatusBadRequest)
			return
		}
		top = n
	}

	genreStats, err := h.Store.List(r.Context())
	if err != nil {
		slog.Error("Failed to load genre stats", "error", err)
		jsonError(w, "failed to load genre stats", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, h.Service.Home(r.Context(), genreStats, top))
}

// ListStats handles GET /api/stats
func (h *Handler) ListStats(w http.ResponseWriter, r *http.Request) {
	genreStats, err := h.Store.List(r.Context())
	if err != nil {
		slog.Error("Failed to load genre stats", "error", err)
		jsonError(w, "failed to load genre stats", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, genreStats)
}

// RecordView handles POST /api/genres/{id}/views?name=NAME
func (h *Handler) RecordView(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		jsonError(w, "invalid genre id", http.StatusBadRequest)
		return
	}

	stat, err := h.Store.RecordView(r.Context(), id, strings.TrimSpace(r.URL.Query().Get("name")))
	switch {
	case errors.Is(err, stats.ErrUnknownGenre):
		jsonError(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, stats.ErrInvalidStat):
		jsonError(w, err.Error(), http.StatusBadRequest)
	case err != nil:
		slog.Error("Failed to record genre view", "id", id, "error", err)
		jsonError(w, "failed to record view", http.StatusInternalServerError)
	default:
		writeJSON(w, http.StatusOK, stat)
	}
}

func genreParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := strings.TrimSpace(r.URL.Query().Get("genre"))
	if raw == "" {
		return tmdb.AllGenres, true
	}
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		jsonError(w, "genre must be a positive integer", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

func upstreamError(w http.ResponseWriter, err error) {
	slog.Warn("Upstream TMDB request failed", "error", err)
	jsonError(w, "upstream TMDB request failed: "+err.Error(), http.StatusBadGateway)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Warn("Failed to write JSON response", "error", err)
	}
}

// Helper for JSON error responses
func jsonError(w http.ResponseWriter, message string, statusCode int) {
	writeJSON(w, statusCode, map[string]string{"error": message})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		slog.Debug("HTTP request", "method", r.Method, "path", r.URL.Path, "status", rec.status, "duration", time.Since(start))
	})
}
