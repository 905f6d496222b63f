package tmdb

// PosterURL builds an absolute poster URL by prefixing the path fragment with
// imageBaseURL as-is. It returns nil when the fragment is empty so callers can
// tell "no poster" apart from a real URL.
func PosterURL(imageBaseURL, posterPath string) *string {
	if posterPath == "" {
		return nil
	}
	u := imageBaseURL + posterPath
	return &u
}

// PosterURL builds an absolute poster URL using the client's image origin.
func (c *Client) PosterURL(posterPath string) *string {
	return PosterURL(c.imageBaseURL, posterPath)
}
