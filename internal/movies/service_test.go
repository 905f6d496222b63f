package movies

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lepinkainen/marquee/internal/tmdb"
)

type fakeSource struct {
	fakeDiscoverer
	genres    []tmdb.Genre
	genresErr error
}

func (f *fakeSource) FetchGenres(context.Context) ([]tmdb.Genre, error) {
	return f.genres, f.genresErr
}

func TestServiceCategorize(t *testing.T) {
	source := &fakeSource{fakeDiscoverer: fakeDiscoverer{
		pages: map[int]*tmdb.DiscoverPage{
			tmdb.AllGenres: {Results: []tmdb.RawMovie{
				{OriginalTitle: "A", GenreIDs: []int{1, 2}},
				{OriginalTitle: "B", GenreIDs: []int{2}},
			}},
		},
	}}

	groups, err := NewService(source, NewProjector(""), 1).Categorize(context.Background(), tmdb.AllGenres)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, groups.GenreIDs())

	two, _ := groups.Movies(2)
	assert.Equal(t, []string{"A", "B"}, titles(two))
}

func TestServiceDiscoverPropagatesErrors(t *testing.T) {
	source := &fakeSource{fakeDiscoverer: fakeDiscoverer{errs: map[int]error{5: errors.New("down")}}}
	svc := NewService(source, NewProjector(""), 1)

	movies, err := svc.Discover(context.Background(), 5)
	require.Error(t, err)
	assert.Nil(t, movies)

	groups, err := svc.Categorize(context.Background(), 5)
	require.Error(t, err)
	assert.Nil(t, groups)
}

func TestServiceHomeSelectsTopCategories(t *testing.T) {
	source := &fakeSource{fakeDiscoverer: fakeDiscoverer{
		pages: map[int]*tmdb.DiscoverPage{
			3: {Results: []tmdb.RawMovie{{OriginalTitle: "Drama 1"}}},
			1: {Results: []tmdb.RawMovie{{OriginalTitle: "Action 1"}}},
		},
	}}
	stats := []GenreStat{
		{ID: 1, Name: "Action", Count: 100},
		{ID: 2, Name: "Comedy", Count: 80},
		{ID: 3, Name: "Drama", Count: 120},
	}

	home := NewService(source, NewProjector(""), 2).Home(context.Background(), stats, 2)

	assert.Equal(t, []string{"Drama", "Action"}, home.Names())
	assert.ElementsMatch(t, []int{3, 1}, source.calls)
}

func TestServiceGenres(t *testing.T) {
	source := &fakeSource{genres: []tmdb.Genre{{ID: 28, Name: "Action"}}}
	genres, err := NewService(source, NewProjector(""), 1).Genres(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []tmdb.Genre{{ID: 28, Name: "Action"}}, genres)
}
