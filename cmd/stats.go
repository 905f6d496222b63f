package cmd

import (
	"log/slog"

	"github.com/lepinkainen/marquee/internal/stats"
)

// StatsCmd groups the statistics store subcommands
type StatsCmd struct {
	List   StatsListCmd   `cmd:"" default:"1" help:"List recorded genre statistics"`
	Import StatsImportCmd `cmd:"" help:"Import genre statistics from a YAML seed file"`
	Sync   StatsSyncCmd   `cmd:"" help:"Add every TMDB genre to the store without touching counts"`
	View   StatsViewCmd   `cmd:"" help:"Record one view of a genre"`
}

// StatsListCmd prints all statistics in insertion order
type StatsListCmd struct{}

// StatsImportCmd upserts statistics from a seed file
type StatsImportCmd struct {
	File string `arg:"" type:"existingfile" help:"YAML file with genres: [{id, name, count}]"`
}

// StatsSyncCmd registers the TMDB genre list in the store
type StatsSyncCmd struct{}

// StatsViewCmd increments the view count of one genre
type StatsViewCmd struct {
	ID   int    `arg:"" help:"Genre id"`
	Name string `help:"Genre name, required when the genre is not yet in the store"`
}

func (l *StatsListCmd) Run(app *App) error {
	store, err := app.OpenStats()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	genreStats, err := store.List(app.Context())
	if err != nil {
		return err
	}
	return printJSON(app, genreStats)
}

func (i *StatsImportCmd) Run(app *App) error {
	seed, err := stats.LoadSeed(i.File)
	if err != nil {
		return err
	}

	store, err := app.OpenStats()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	if err := store.Import(app.Context(), seed); err != nil {
		return err
	}
	slog.Info("Imported genre statistics", "file", i.File, "count", len(seed), "db", store.Path())
	return nil
}

func (s *StatsSyncCmd) Run(app *App) error {
	svc, err := app.Service()
	if err != nil {
		return err
	}

	store, err := app.OpenStats()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	ctx := app.Context()
	genres, err := svc.Genres(ctx)
	if err != nil {
		return err
	}

	added, err := store.SyncGenres(ctx, genres)
	if err != nil {
		return err
	}
	slog.Info("Synced genres", "total", len(genres), "added", added)
	return nil
}

func (v *StatsViewCmd) Run(app *App) error {
	store, err := app.OpenStats()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	stat, err := store.RecordView(app.Context(), v.ID, v.Name)
	if err != nil {
		return err
	}
	return printJSON(app, stat)
}
