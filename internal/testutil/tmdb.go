package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/lepinkainen/marquee/internal/tmdb"
)

// FakeTMDB is an httptest server that answers the genre and discover endpoints.
type FakeTMDB struct {
	*httptest.Server

	mu       sync.Mutex
	genres   []tmdb.Genre
	pages    map[int]tmdb.DiscoverPage
	rawPages map[int]string
	failures map[int]int
	requests []*http.Request
}

// NewFakeTMDB starts a FakeTMDB that is closed when the test completes.
func NewFakeTMDB(t *testing.T) *FakeTMDB {
	t.Helper()

	f := &FakeTMDB{
		pages:    make(map[int]tmdb.DiscoverPage),
		rawPages: make(map[int]string),
		failures: make(map[int]int),
	}
	f.Server = httptest.NewServer(http.HandlerFunc(f.serve))
	t.Cleanup(f.Close)
	return f
}

// WithGenres sets the genre list response.
func (f *FakeTMDB) WithGenres(genres ...tmdb.Genre) *FakeTMDB {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.genres = genres
	return f
}

// WithPage sets the discover response for genreID. tmdb.AllGenres matches
// requests without a genre filter.
func (f *FakeTMDB) WithPage(genreID int, page tmdb.DiscoverPage) *FakeTMDB {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pages[genreID] = page
	return f
}

// WithRawPage sets a verbatim JSON discover response body for genreID.
func (f *FakeTMDB) WithRawPage(genreID int, body string) *FakeTMDB {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rawPages[genreID] = body
	return f
}

// WithFailure makes discover requests for genreID answer with status.
func (f *FakeTMDB) WithFailure(genreID, status int) *FakeTMDB {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failures[genreID] = status
	return f
}

// Requests returns a copy of the requests served so far.
func (f *FakeTMDB) Requests() []*http.Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*http.Request(nil), f.requests...)
}

func (f *FakeTMDB) serve(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, r.Clone(r.Context()))

	if !strings.HasPrefix(r.Header.Get("Authorization"), "Bearer ") {
		http.Error(w, `{"status_message":"Invalid API key"}`, http.StatusUnauthorized)
		return
	}

	switch r.URL.Path {
	case "/genre/movie/list":
		genres := f.genres
		if genres == nil {
			genres = []tmdb.Genre{}
		}
		writeFakeJSON(w, map[string]any{"genres": genres})
	case "/discover/movie":
		genreID := tmdb.AllGenres
		if raw := r.URL.Query().Get("with_genres"); raw != "" {
			if _, err := fmt.Sscan(raw, &genreID); err != nil {
				http.Error(w, "bad genre", http.StatusBadRequest)
				return
			}
		}
		if status, ok := f.failures[genreID]; ok {
			http.Error(w, `{"status_message":"failure"}`, status)
			return
		}
		if body, ok := f.rawPages[genreID]; ok {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(body))
			return
		}
		page := f.pages[genreID]
		if page.Results == nil {
			page.Results = []tmdb.RawMovie{}
		}
		writeFakeJSON(w, page)
	default:
		http.NotFound(w, r)
	}
}

func writeFakeJSON(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(payload)
}
