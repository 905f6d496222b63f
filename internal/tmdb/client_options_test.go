package tmdb

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestClientOptionsApply(t *testing.T) {
	customHTTP := &http.Client{}

	client := NewClient(
		"key",
		WithBaseURL("https://example.test/"),
		WithImageBaseURL("https://images.test/"),
		WithHTTPClient(customHTTP),
		WithTimeout(3*time.Second),
		WithPageSelector(FixedPage(7)),
	)

	require.Equal(t, "https://example.test", client.baseURL)
	require.Equal(t, "https://images.test", client.imageBaseURL)
	require.Equal(t, customHTTP, client.httpClient)
	require.Equal(t, 3*time.Second, client.timeout)
	require.Equal(t, 7, client.pageSelector())
}

func TestClientDefaults(t *testing.T) {
	client := NewClient("key", WithBaseURL(""), WithHTTPClient(nil), WithPageSelector(nil), WithTimeout(0))

	require.Equal(t, defaultBaseURL, client.baseURL)
	require.Equal(t, DefaultImageBaseURL, client.ImageBaseURL())
	require.Equal(t, defaultTimeout, client.timeout)
	require.NotNil(t, client.httpClient)
	require.NotNil(t, client.pageSelector)
}

func TestRandomPageStaysInRange(t *testing.T) {
	for range 1000 {
		page := RandomPage()
		require.GreaterOrEqual(t, page, 1)
		require.LessOrEqual(t, page, MaxDiscoverPage)
	}
}
