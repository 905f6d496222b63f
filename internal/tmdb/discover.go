package tmdb

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"

	apperrors "github.com/lepinkainen/marquee/internal/errors"
)

// AllGenres disables the genre filter of DiscoverMovies.
const AllGenres = 0

// DiscoverMovies fetches one page of popular English-language movies.
// The page comes from the client's PageSelector. A genreID other than
// AllGenres restricts results to that genre. Failures are logged at debug
// level only; callers decide how severe they are.
func (c *Client) DiscoverMovies(ctx context.Context, genreID int) (*DiscoverPage, error) {
	const op = "discover movies"

	page := c.pageSelector()
	endpoint := fmt.Sprintf("%s/discover/movie?%s", c.baseURL, c.discoverParams(page, genreID).Encode())

	var body json.RawMessage
	if err := c.getJSON(ctx, op, endpoint, &body); err != nil {
		slog.Debug("TMDB discover request failed", "genre", genreID, "page", page, "error", err)
		return nil, err
	}

	var response struct {
		Page         int         `json:"page"`
		TotalPages   int         `json:"total_pages"`
		TotalResults int         `json:"total_results"`
		Results      *[]RawMovie `json:"results"`
	}
	if err := json.Unmarshal(body, &response); err != nil {
		err = apperrors.NewMalformedError(op, err)
		slog.Debug("TMDB discover response malformed", "genre", genreID, "page", page, "error", err)
		return nil, err
	}

	if response.Results == nil {
		err := apperrors.NewMissingFieldError(op, "results")
		slog.Debug("TMDB discover response malformed", "genre", genreID, "page", page, "error", err)
		return nil, err
	}

	result := DiscoverPage{
		Page:         response.Page,
		TotalPages:   response.TotalPages,
		TotalResults: response.TotalResults,
		Results:      *response.Results,
		raw:          body,
	}

	slog.Debug("Discovered TMDB movies", "genre", genreID, "page", page, "results", len(result.Results))
	return &result, nil
}

func (c *Client) discoverParams(page, genreID int) url.Values {
	params := url.Values{}
	params.Set("language", c.language)
	params.Set("with_original_language", "en")
	params.Set("sort_by", "popularity.desc")
	params.Set("page", strconv.Itoa(page))
	if genreID != AllGenres {
		params.Set("with_genres", strconv.Itoa(genreID))
	}
	return params
}
