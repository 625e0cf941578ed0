package fetch

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const themeURL = "https://tweakcn.com/r/themes/vintage-paper.json"

func TestClient_Fetch(t *testing.T) {
	mock := NewMockHTTPFetcher()
	mock.AddResponse(themeURL, 200, `{"cssVars":{}}`)

	client := NewClientWithFetcher(Options{UserAgent: "themekit-test"}, mock)
	body, err := client.Fetch(context.Background(), themeURL)
	require.NoError(t, err)
	assert.Equal(t, `{"cssVars":{}}`, string(body))

	require.Len(t, mock.Requests, 1)
	assert.Equal(t, "themekit-test", mock.Requests[0].Header.Get("User-Agent"))
	_, hasDeadline := mock.Requests[0].Context().Deadline()
	assert.True(t, hasDeadline)
}

func TestClient_Fetch_Status(t *testing.T) {
	client := NewClientWithFetcher(Options{}, NewMockHTTPFetcher())
	_, err := client.Fetch(context.Background(), themeURL)
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
	assert.False(t, IsNetworkError(err))

	mock := NewMockHTTPFetcher()
	mock.AddResponse(themeURL, 500, "boom")
	_, err = NewClientWithFetcher(Options{}, mock).Fetch(context.Background(), themeURL)
	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, 500, statusErr.StatusCode)
	assert.False(t, IsNotFound(err))
}

func TestClient_Fetch_NetworkError(t *testing.T) {
	mock := NewMockHTTPFetcher()
	cause := errors.New("connection refused")
	mock.AddError(themeURL, cause)

	_, err := NewClientWithFetcher(Options{}, mock).Fetch(context.Background(), themeURL)
	require.Error(t, err)
	assert.True(t, IsNetworkError(err))
	assert.ErrorIs(t, err, cause)
}

func TestClient_Fetch_TooLarge(t *testing.T) {
	mock := NewMockHTTPFetcher()
	mock.AddResponse(themeURL, 200, strings.Repeat("x", 11))

	_, err := NewClientWithFetcher(Options{MaxBytes: 10}, mock).Fetch(context.Background(), themeURL)
	assert.ErrorIs(t, err, ErrTooLarge)
}

func TestWithDefaults(t *testing.T) {
	opts := withDefaults(Options{})
	assert.Equal(t, DefaultTimeout, opts.Timeout)
	assert.Equal(t, DefaultUserAgent, opts.UserAgent)
	assert.Equal(t, int64(DefaultMaxBytes), opts.MaxBytes)
}
