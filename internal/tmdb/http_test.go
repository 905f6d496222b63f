package tmdb

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/lepinkainen/marquee/internal/errors"
)

type failingDoer struct {
	calls int
	err   error
}

func (f *failingDoer) Do(*http.Request) (*http.Response, error) {
	f.calls++
	return nil, f.err
}

func TestGetJSONSendsBearerToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("accept"))
		assert.Empty(t, r.URL.Query().Get("api_key"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}))
	defer server.Close()

	client := NewClient("secret", WithBaseURL(server.URL), WithHTTPClient(server.Client()))

	var payload map[string]string
	err := client.getJSON(context.Background(), "test", server.URL, &payload)
	require.NoError(t, err)
	assert.Equal(t, "ok", payload["status"])
}

func TestGetJSONDoesNotRetry(t *testing.T) {
	doer := &failingDoer{err: &url.Error{Op: "Get", URL: "http://example.test", Err: errors.New("connection reset by peer")}}
	client := NewClient("key", WithHTTPClient(doer))

	var payload map[string]any
	err := client.getJSON(context.Background(), "test", "http://example.test/", &payload)
	require.Error(t, err)
	assert.True(t, apperrors.IsTransportError(err))
	assert.Equal(t, 1, doer.calls)
}

func TestGetJSONStatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("oops"))
	}))
	defer server.Close()

	client := NewClient("key", WithBaseURL(server.URL), WithHTTPClient(server.Client()))

	var payload map[string]any
	err := client.getJSON(context.Background(), "test", server.URL, &payload)
	require.Error(t, err)
	assert.True(t, apperrors.IsResponseError(err))
	assert.Contains(t, err.Error(), "unexpected status 500")
}

func TestGetJSONMalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<html>not json</html>"))
	}))
	defer server.Close()

	client := NewClient("key", WithBaseURL(server.URL), WithHTTPClient(server.Client()))

	var payload map[string]any
	err := client.getJSON(context.Background(), "test", server.URL, &payload)
	require.Error(t, err)
	assert.True(t, apperrors.IsResponseError(err))
	assert.Contains(t, err.Error(), "malformed response")
}

func TestGetJSONTimeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	client := NewClient("key", WithBaseURL(server.URL), WithHTTPClient(server.Client()), WithTimeout(50*time.Millisecond))

	var payload map[string]any
	err := client.getJSON(context.Background(), "test", server.URL, &payload)
	require.Error(t, err)
	assert.True(t, apperrors.IsTransportError(err))
}

func TestGetJSONRequiresAPIKey(t *testing.T) {
	doer := &failingDoer{}
	client := NewClient("", WithHTTPClient(doer))

	var payload map[string]any
	err := client.getJSON(context.Background(), "test", "http://example.test/", &payload)
	require.ErrorIs(t, err, ErrMissingAPIKey)
	assert.Zero(t, doer.calls)
}
