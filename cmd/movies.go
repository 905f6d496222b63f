package cmd

import (
	"encoding/json"
	"fmt"
	"log/slog"

	apperrors "github.com/lepinkainen/marquee/internal/errors"
	"github.com/lepinkainen/marquee/internal/tmdb"
	"github.com/lepinkainen/marquee/internal/tui"
)

var selectGenre = tui.SelectGenre

// GenresCmd prints the TMDB genre list
type GenresCmd struct{}

// DiscoverCmd prints one discovery page
type DiscoverCmd struct {
	Genre int  `help:"Restrict results to this genre id (0 = all genres)" default:"0"`
	Pick  bool `help:"Choose the genre interactively"`
	Raw   bool `help:"Print the unmodified TMDB page instead of projected movies"`
}

// CategorizeCmd prints one discovery page grouped by genre id
type CategorizeCmd struct {
	Genre int `help:"Restrict results to this genre id (0 = all genres)" default:"0"`
}

// HomeCmd prints the home page movie lists. Top -1 means home.top_categories.
type HomeCmd struct {
	Top int `help:"Number of genres to include (defaults to home.top_categories)" default:"-1"`
}

func (g *GenresCmd) Run(app *App) error {
	svc, err := app.Service()
	if err != nil {
		return err
	}

	genres, err := svc.Genres(app.Context())
	if err != nil {
		return err
	}
	return printJSON(app, genres)
}

func (d *DiscoverCmd) Run(app *App) error {
	svc, err := app.Service()
	if err != nil {
		return err
	}
	ctx := app.Context()

	genreID := d.Genre
	if d.Pick {
		genres, err := svc.Genres(ctx)
		if err != nil {
			return err
		}
		genreID, err = pickGenre(genres)
		if err != nil {
			return err
		}
	}

	if d.Raw {
		page, err := svc.DiscoverRaw(ctx, genreID)
		if err != nil {
			return err
		}
		return printJSON(app, page)
	}

	projected, err := svc.Discover(ctx, genreID)
	if err != nil {
		return err
	}
	return printJSON(app, projected)
}

func pickGenre(genres []tmdb.Genre) (int, error) {
	result, err := selectGenre(genres)
	if err != nil {
		return 0, fmt.Errorf("genre picker failed: %w", err)
	}

	switch result.Action {
	case tui.ActionStopped, tui.ActionNone:
		return 0, apperrors.NewStopProcessingError("genre selection cancelled")
	case tui.ActionSelected:
		slog.Info("Genre selected", "id", result.Selection.ID, "name", result.Selection.Name)
	}
	return result.GenreID(), nil
}

func (c *CategorizeCmd) Run(app *App) error {
	svc, err := app.Service()
	if err != nil {
		return err
	}

	groups, err := svc.Categorize(app.Context(), c.Genre)
	if err != nil {
		return err
	}
	return printJSON(app, groups)
}

func (h *HomeCmd) Run(app *App) error {
	if h.Top < -1 {
		return fmt.Errorf("--top must be a non-negative integer, got %d", h.Top)
	}

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
	genreStats, err := store.List(ctx)
	if err != nil {
		return err
	}

	top := h.Top
	if top < 0 {
		top = app.Config.Home.TopCategories
	}
	if len(genreStats) == 0 {
		slog.Warn("No genre statistics recorded, home page will be empty", "db", store.Path())
	}

	return printJSON(app, svc.Home(ctx, genreStats, top))
}

func printJSON(app *App, payload any) error {
	enc := json.NewEncoder(app.Out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(payload); err != nil {
		return fmt.Errorf("failed to write JSON output: %w", err)
	}
	return nil
}
