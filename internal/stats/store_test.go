package stats

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lepinkainen/marquee/internal/movies"
	"github.com/lepinkainen/marquee/internal/tmdb"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := Open(filepath.Join(t.TempDir(), "stats.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestListEmpty(t *testing.T) {
	store := openTestStore(t)

	stats, err := store.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, stats)
	assert.Empty(t, stats)
}

func TestUpsertKeepsInsertionOrder(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Upsert(ctx, movies.GenreStat{ID: 35, Name: "Comedy", Count: 80}))
	require.NoError(t, store.Upsert(ctx, movies.GenreStat{ID: 18, Name: "Drama", Count: 120}))
	require.NoError(t, store.Upsert(ctx, movies.GenreStat{ID: 28, Name: "Action", Count: 100}))
	// updating must not move the row
	require.NoError(t, store.Upsert(ctx, movies.GenreStat{ID: 35, Name: "Comedy", Count: 90}))

	stats, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []movies.GenreStat{
		{ID: 35, Name: "Comedy", Count: 90},
		{ID: 18, Name: "Drama", Count: 120},
		{ID: 28, Name: "Action", Count: 100},
	}, stats)
}

func TestUpsertValidates(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	tests := []movies.GenreStat{
		{ID: 0, Name: "Zero", Count: 1},
		{ID: 1, Name: "", Count: 1},
		{ID: 1, Name: "Negative", Count: -1},
	}
	for _, stat := range tests {
		err := store.Upsert(ctx, stat)
		assert.ErrorIs(t, err, ErrInvalidStat, "stat %+v", stat)
	}
}

func TestImportIsAllOrNothing(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	err := store.Import(ctx, []movies.GenreStat{
		{ID: 1, Name: "Action", Count: 1},
		{ID: -2, Name: "Broken", Count: 1},
	})
	require.ErrorIs(t, err, ErrInvalidStat)

	stats, err := store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, stats)

	require.NoError(t, store.Import(ctx, []movies.GenreStat{
		{ID: 1, Name: "Action", Count: 1},
		{ID: 2, Name: "Comedy", Count: 2},
	}))
	stats, err = store.List(ctx)
	require.NoError(t, err)
	assert.Len(t, stats, 2)
}

func TestRecordView(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	_, err := store.RecordView(ctx, 28, "")
	require.ErrorIs(t, err, ErrUnknownGenre)

	stat, err := store.RecordView(ctx, 28, "Action")
	require.NoError(t, err)
	assert.Equal(t, movies.GenreStat{ID: 28, Name: "Action", Count: 1}, stat)

	stat, err = store.RecordView(ctx, 28, "")
	require.NoError(t, err)
	assert.Equal(t, 2, stat.Count)
	assert.Equal(t, "Action", stat.Name)

	stat, err = store.RecordView(ctx, 28, "Action & Adventure")
	require.NoError(t, err)
	assert.Equal(t, movies.GenreStat{ID: 28, Name: "Action & Adventure", Count: 3}, stat)

	got, found, err := store.Get(ctx, 28)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, stat, got)

	_, err = store.RecordView(ctx, 0, "Nope")
	assert.ErrorIs(t, err, ErrInvalidStat)
}

func TestSyncGenres(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Upsert(ctx, movies.GenreStat{ID: 28, Name: "Old Action", Count: 50}))

	added, err := store.SyncGenres(ctx, []tmdb.Genre{
		{ID: 28, Name: "Action"},
		{ID: 35, Name: "Comedy"},
		{ID: 0, Name: "Invalid"},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, added)

	stats, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []movies.GenreStat{
		{ID: 28, Name: "Action", Count: 50},
		{ID: 35, Name: "Comedy", Count: 0},
	}, stats)

	added, err = store.SyncGenres(ctx, []tmdb.Genre{{ID: 35, Name: "Comedy"}})
	require.NoError(t, err)
	assert.Zero(t, added)
}

func TestGetMissing(t *testing.T) {
	store := openTestStore(t)

	_, found, err := store.Get(context.Background(), 404)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestStorePersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stats.db")
	ctx := context.Background()

	store, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, store.Upsert(ctx, movies.GenreStat{ID: 10, Name: "Music", Count: 3}))
	require.NoError(t, store.Close())

	reopened, err := Open(path)
	require.NoError(t, err)
	defer func() { _ = reopened.Close() }()

	stats, err := reopened.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []movies.GenreStat{{ID: 10, Name: "Music", Count: 3}}, stats)
	assert.Equal(t, path, reopened.Path())
}
