package movies

import (
	"context"

	"github.com/lepinkainen/marquee/internal/tmdb"
)

// Source is the TMDB surface the service needs.
type Source interface {
	Discoverer
	FetchGenres(ctx context.Context) ([]tmdb.Genre, error)
}

// Service wires the TMDB source to the projection and aggregation steps.
type Service struct {
	source     Source
	projector  Projector
	aggregator *Aggregator
}

// NewService creates a Service. concurrency bounds the home page fan-out.
func NewService(source Source, projector Projector, concurrency int) *Service {
	return &Service{
		source:     source,
		projector:  projector,
		aggregator: NewAggregator(source, WithProjector(projector), WithConcurrency(concurrency)),
	}
}

// Genres returns the TMDB genre list.
func (s *Service) Genres(ctx context.Context) ([]tmdb.Genre, error) {
	return s.source.FetchGenres(ctx)
}

// DiscoverRaw returns one unmodified discovery page.
func (s *Service) DiscoverRaw(ctx context.Context, genreID int) (*tmdb.DiscoverPage, error) {
	return s.source.DiscoverMovies(ctx, genreID)
}

// Discover returns one discovery page projected to ProjectedMovie.
func (s *Service) Discover(ctx context.Context, genreID int) ([]ProjectedMovie, error) {
	page, err := s.source.DiscoverMovies(ctx, genreID)
	if err != nil {
		return nil, err
	}
	return s.projector.Project(page), nil
}

// Categorize discovers one page and groups the projected movies by genre id.
func (s *Service) Categorize(ctx context.Context, genreID int) (*GenreGroups, error) {
	projected, err := s.Discover(ctx, genreID)
	if err != nil {
		return nil, err
	}
	return GroupByGenre(projected), nil
}

// Home selects the top k genres from stats and builds their movie lists.
func (s *Service) Home(ctx context.Context, stats []GenreStat, k int) *HomeMovies {
	return s.aggregator.BuildHomeMovies(ctx, SelectTopCategories(stats, k))
}
