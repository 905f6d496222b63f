package movies

import (
	"context"
	"log/slog"

	"github.com/sourcegraph/conc/iter"

	"github.com/lepinkainen/marquee/internal/tmdb"
)

const defaultConcurrency = 4

// Discoverer fetches one discovery page, optionally filtered by genre.
type Discoverer interface {
	DiscoverMovies(ctx context.Context, genreID int) (*tmdb.DiscoverPage, error)
}

// HomeMovies maps genre display names to their movie lists in category order.
type HomeMovies struct {
	m orderedMap[string, []HomeMovie]
}

// Names returns the genre names in category order.
func (h *HomeMovies) Names() []string {
	return append([]string(nil), h.m.keys...)
}

// Movies returns the movie list for a genre name.
func (h *HomeMovies) Movies(name string) ([]HomeMovie, bool) {
	return h.m.get(name)
}

// Len returns the number of genres.
func (h *HomeMovies) Len() int {
	return len(h.m.keys)
}

// MarshalJSON encodes the mapping as an object keyed by genre name.
func (h *HomeMovies) MarshalJSON() ([]byte, error) {
	return h.m.marshalJSON()
}

// Aggregator builds the home page mapping from the top genres.
type Aggregator struct {
	discoverer  Discoverer
	projector   Projector
	concurrency int
}

// AggregatorOption configures an Aggregator.
type AggregatorOption func(*Aggregator)

// WithProjector sets the projector used for discovered pages.
func WithProjector(p Projector) AggregatorOption {
	return func(a *Aggregator) {
		a.projector = p
	}
}

// WithConcurrency bounds the number of genres fetched at once. 1 fetches sequentially.
func WithConcurrency(n int) AggregatorOption {
	return func(a *Aggregator) {
		if n > 0 {
			a.concurrency = n
		}
	}
}

// NewAggregator creates an Aggregator fetching through d.
func NewAggregator(d Discoverer, opts ...AggregatorOption) *Aggregator {
	a := &Aggregator{
		discoverer:  d,
		projector:   NewProjector(""),
		concurrency: defaultConcurrency,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// BuildHomeMovies discovers movies for every category and maps the category
// name to the projected results. A category whose fetch fails maps to an
// empty list; it never affects the other categories.
func (a *Aggregator) BuildHomeMovies(ctx context.Context, categories []GenreStat) *HomeMovies {
	mapper := iter.Mapper[GenreStat, []HomeMovie]{MaxGoroutines: a.concurrency}
	lists := mapper.Map(categories, func(category *GenreStat) []HomeMovie {
		return a.fetchCategory(ctx, *category)
	})

	home := &HomeMovies{m: newOrderedMap[string, []HomeMovie](len(categories))}
	for i, category := range categories {
		home.m.set(category.Name, lists[i])
	}
	return home
}

func (a *Aggregator) fetchCategory(ctx context.Context, category GenreStat) []HomeMovie {
	page, err := a.discoverer.DiscoverMovies(ctx, category.ID)
	if err != nil {
		slog.Warn("Failed to fetch movies for genre, leaving it empty", "genre", category.Name, "id", category.ID, "error", err)
		return []HomeMovie{}
	}
	if page == nil {
		slog.Warn("Empty discovery response for genre", "genre", category.Name, "id", category.ID)
		return []HomeMovie{}
	}
	return a.projector.ProjectHome(page)
}
