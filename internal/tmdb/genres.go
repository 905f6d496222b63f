package tmdb

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"

	apperrors "github.com/lepinkainen/marquee/internal/errors"
)

// FetchGenres returns the TMDB movie genre list.
func (c *Client) FetchGenres(ctx context.Context) ([]Genre, error) {
	const op = "fetch genres"

	params := url.Values{}
	params.Set("language", c.language)
	endpoint := fmt.Sprintf("%s/genre/movie/list?%s", c.baseURL, params.Encode())

	var response struct {
		Genres []Genre `json:"genres"`
	}

	if err := c.getJSON(ctx, op, endpoint, &response); err != nil {
		slog.Error("Failed to fetch TMDB genres", "error", err)
		return nil, err
	}

	if response.Genres == nil {
		err := apperrors.NewMissingFieldError(op, "genres")
		slog.Error("Failed to fetch TMDB genres", "error", err)
		return nil, err
	}

	slog.Debug("Fetched TMDB genres", "count", len(response.Genres))
	return response.Genres, nil
}
