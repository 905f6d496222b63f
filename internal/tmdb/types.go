package tmdb

import "encoding/json"

// Genre is an entry of the TMDB movie genre list.
type Genre struct {
	ID   int    `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

// RawMovie is a movie as returned by the discover endpoint.
// PosterPath is a path fragment such as "/abc.jpg" and is empty when TMDB sends null.
type RawMovie struct {
	ID               int     `json:"id"`
	GenreIDs         []int   `json:"genre_ids"`
	OriginalTitle    string  `json:"original_title"`
	Title            string  `json:"title"`
	PosterPath       string  `json:"poster_path"`
	Overview         string  `json:"overview"`
	ReleaseDate      string  `json:"release_date"`
	OriginalLanguage string  `json:"original_language"`
	Popularity       float64 `json:"popularity"`
	VoteAverage      float64 `json:"vote_average"`
	VoteCount        int     `json:"vote_count"`
}

// DisplayTitle returns the original title, falling back to the localized one.
func (m RawMovie) DisplayTitle() string {
	if m.OriginalTitle != "" {
		return m.OriginalTitle
	}
	return m.Title
}

// DiscoverPage is one page of the discover endpoint. Results holds the typed
// view used for projection; a page decoded by DiscoverMovies also keeps the
// upstream body, which MarshalJSON writes back byte for byte.
type DiscoverPage struct {
	Page         int        `json:"page"`
	TotalPages   int        `json:"total_pages"`
	TotalResults int        `json:"total_results"`
	Results      []RawMovie `json:"results"`

	raw json.RawMessage
}

// Raw returns the upstream response body, or nil for pages built in code.
func (p DiscoverPage) Raw() json.RawMessage {
	return p.raw
}

// MarshalJSON encodes the upstream body when present and the typed fields otherwise.
func (p DiscoverPage) MarshalJSON() ([]byte, error) {
	if len(p.raw) > 0 {
		return p.raw, nil
	}
	type plain DiscoverPage
	return json.Marshal(plain(p))
}
