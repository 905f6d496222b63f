package testutil

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lepinkainen/marquee/internal/config"
	"github.com/lepinkainen/marquee/internal/tmdb"
)

func TestTestEnvPath(t *testing.T) {
	env := NewTestEnv(t)

	path := env.Path("subdir", "file.txt")
	assert.True(t, filepath.IsAbs(path))
	assert.Equal(t, filepath.Join(env.RootDir(), "subdir", "file.txt"), path)
}

func TestTestEnvWriteFile(t *testing.T) {
	env := NewTestEnv(t)

	written := env.WriteFile("nested/seed.yaml", "genres: []\n")
	assert.True(t, env.FileExists("nested/seed.yaml"))

	data, err := os.ReadFile(written)
	require.NoError(t, err)
	assert.Equal(t, "genres: []\n", string(data))
}

func TestTestEnvChdir(t *testing.T) {
	env := NewTestEnv(t)
	env.WriteFile("dir/.keep", "")
	env.Chdir("dir")

	wd, err := os.Getwd()
	require.NoError(t, err)
	resolved, err := filepath.EvalSymlinks(env.Path("dir"))
	require.NoError(t, err)
	wdResolved, err := filepath.EvalSymlinks(wd)
	require.NoError(t, err)
	assert.Equal(t, resolved, wdResolved)
}

func TestLoadConfig(t *testing.T) {
	cfg := LoadConfig(t, map[string]any{config.KeyHomeTopCategories: 5})

	assert.Equal(t, TestAPIKey, cfg.TMDB.APIKey)
	assert.Equal(t, 5, cfg.Home.TopCategories)
	assert.Equal(t, 4, cfg.Home.Concurrency)
}

func TestFakeTMDB(t *testing.T) {
	fake := NewFakeTMDB(t).
		WithGenres(tmdb.Genre{ID: 28, Name: "Action"}).
		WithPage(28, tmdb.DiscoverPage{Page: 3, Results: []tmdb.RawMovie{{ID: 1, OriginalTitle: "Heat"}}}).
		WithFailure(35, 500)

	client := tmdb.NewClient(TestAPIKey, tmdb.WithBaseURL(fake.URL), tmdb.WithPageSelector(tmdb.FixedPage(3)))
	ctx := context.Background()

	genres, err := client.FetchGenres(ctx)
	require.NoError(t, err)
	assert.Equal(t, []tmdb.Genre{{ID: 28, Name: "Action"}}, genres)

	page, err := client.DiscoverMovies(ctx, 28)
	require.NoError(t, err)
	require.Len(t, page.Results, 1)
	assert.Equal(t, "Heat", page.Results[0].OriginalTitle)

	_, err = client.DiscoverMovies(ctx, 35)
	require.Error(t, err)

	empty, err := client.DiscoverMovies(ctx, tmdb.AllGenres)
	require.NoError(t, err)
	assert.Empty(t, empty.Results)

	assert.Len(t, fake.Requests(), 4)
}
