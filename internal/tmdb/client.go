// Package tmdb provides a client for TheMovieDB API.
package tmdb

import (
	"errors"
	"math/rand/v2"
	"net/http"
	"strings"
	"time"
)

const (
	defaultBaseURL  = "https://api.themoviedb.org/3"
	defaultTimeout  = 10 * time.Second
	defaultLanguage = "en-US"

	// DefaultImageBaseURL is the CDN origin for full-size TMDB images.
	DefaultImageBaseURL = "https://image.tmdb.org/t/p/original"

	// MaxDiscoverPage is the highest page DiscoverMovies will ask for.
	MaxDiscoverPage = 100
)

// ErrMissingAPIKey is returned when a client is used without a bearer token.
var ErrMissingAPIKey = errors.New("tmdb: missing API key")

// HTTPDoer is an interface for making HTTP requests.
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// PageSelector picks the result page for a discovery query.
type PageSelector func() int

// RandomPage picks a page uniformly from [1, MaxDiscoverPage].
func RandomPage() int {
	return rand.IntN(MaxDiscoverPage) + 1
}

// FixedPage returns a PageSelector that always picks page.
func FixedPage(page int) PageSelector {
	return func() int { return page }
}

// Client is a TMDB API client.
type Client struct {
	apiKey       string
	baseURL      string
	imageBaseURL string
	language     string
	timeout      time.Duration
	httpClient   HTTPDoer
	pageSelector PageSelector
}

// NewClient creates a new TMDB API client authenticating with apiKey as a bearer token.
func NewClient(apiKey string, opts ...Option) *Client {
	client := &Client{
		apiKey:       apiKey,
		baseURL:      defaultBaseURL,
		imageBaseURL: DefaultImageBaseURL,
		language:     defaultLanguage,
		timeout:      defaultTimeout,
		pageSelector: RandomPage,
	}

	for _, opt := range opts {
		opt(client)
	}

	if client.httpClient == nil {
		client.httpClient = &http.Client{Timeout: client.timeout}
	}

	return client
}

// Option is a functional option for configuring the Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c HTTPDoer) Option {
	return func(client *Client) {
		if c != nil {
			client.httpClient = c
		}
	}
}

// WithBaseURL sets a custom base URL for the TMDB API.
func WithBaseURL(base string) Option {
	return func(client *Client) {
		if base != "" {
			client.baseURL = strings.TrimSuffix(base, "/")
		}
	}
}

// WithImageBaseURL sets a custom base URL for TMDB images.
func WithImageBaseURL(base string) Option {
	return func(client *Client) {
		if base != "" {
			client.imageBaseURL = strings.TrimSuffix(base, "/")
		}
	}
}

// WithTimeout bounds every request made by the client.
// It also applies to a custom HTTP client through the request context.
func WithTimeout(d time.Duration) Option {
	return func(client *Client) {
		if d > 0 {
			client.timeout = d
		}
	}
}

// WithPageSelector replaces the random page choice used by DiscoverMovies.
func WithPageSelector(selector PageSelector) Option {
	return func(client *Client) {
		if selector != nil {
			client.pageSelector = selector
		}
	}
}

// ImageBaseURL returns the origin prepended to poster path fragments.
func (c *Client) ImageBaseURL() string {
	return c.imageBaseURL
}
