package movies

import (
	"github.com/lepinkainen/marquee/internal/tmdb"
)

// Projector turns raw discovery results into front end shapes.
type Projector struct {
	imageBaseURL string
}

// NewProjector creates a Projector prefixing poster fragments with imageBaseURL.
// An empty base falls back to the TMDB image CDN.
func NewProjector(imageBaseURL string) Projector {
	if imageBaseURL == "" {
		imageBaseURL = tmdb.DefaultImageBaseURL
	}
	return Projector{imageBaseURL: imageBaseURL}
}

// Project maps every result of page to a ProjectedMovie using the TMDB image CDN.
func Project(page *tmdb.DiscoverPage) []ProjectedMovie {
	return NewProjector("").Project(page)
}

// Project maps every result of page to a ProjectedMovie.
// The output has exactly one entry per input result.
func (p Projector) Project(page *tmdb.DiscoverPage) []ProjectedMovie {
	if page == nil {
		return []ProjectedMovie{}
	}

	out := make([]ProjectedMovie, len(page.Results))
	for i, raw := range page.Results {
		out[i] = ProjectedMovie{
			GenreIDs:      cloneIDs(raw.GenreIDs),
			OriginalTitle: raw.OriginalTitle,
			PosterPath:    tmdb.PosterURL(p.imageBaseURL, raw.PosterPath),
		}
	}
	return out
}

// ProjectHome maps every result of page to a HomeMovie.
func (p Projector) ProjectHome(page *tmdb.DiscoverPage) []HomeMovie {
	if page == nil {
		return []HomeMovie{}
	}

	out := make([]HomeMovie, len(page.Results))
	for i, raw := range page.Results {
		out[i] = HomeMovie{
			GenreIDs:      cloneIDs(raw.GenreIDs),
			OriginalTitle: raw.DisplayTitle(),
			PosterPath:    tmdb.PosterURL(p.imageBaseURL, raw.PosterPath),
			Overview:      raw.Overview,
			ReleaseDate:   raw.ReleaseDate,
		}
	}
	return out
}

func cloneIDs(ids []int) []int {
	return append(make([]int, 0, len(ids)), ids...)
}
