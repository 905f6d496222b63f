// Package movies reshapes TMDB discovery results for the front end:
// projection, grouping by genre, top genre selection and the home page mapping.
package movies

// ProjectedMovie is the reduced shape of a discovered movie.
// PosterPath is an absolute URL or nil when TMDB has no poster.
type ProjectedMovie struct {
	GenreIDs      []int   `json:"genreIds"`
	OriginalTitle string  `json:"originalTitle"`
	PosterPath    *string `json:"posterPath"`
}

// HomeMovie is the richer projection used on the home page.
type HomeMovie struct {
	GenreIDs      []int   `json:"genre_ids"`
	OriginalTitle string  `json:"originalTitle"`
	PosterPath    *string `json:"posterPath"`
	Overview      string  `json:"overview"`
	ReleaseDate   string  `json:"releaseDate"`
}

// GenreStat is a usage statistic for one genre.
type GenreStat struct {
	ID    int    `json:"id" yaml:"id"`
	Name  string `json:"name" yaml:"name"`
	Count int    `json:"count" yaml:"count"`
}
