package httpclient

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPClient_SetsConfiguredHeaders(t *testing.T) {
	var gotUserAgent, gotCustom string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserAgent = r.Header.Get("User-Agent")
		gotCustom = r.Header.Get("X-Watch-Token")
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client, err := NewHTTPClientBuilder(zerolog.Nop()).
		WithUserAgent("pagewatch-test/1.0").
		WithCustomHeaders(map[string]string{"X-Watch-Token": "abc123"}).
		Build()
	require.NoError(t, err)

	_, err = client.Do(&HTTPRequest{URL: server.URL, Method: "GET"})
	require.NoError(t, err)
	assert.Equal(t, "pagewatch-test/1.0", gotUserAgent)
	assert.Equal(t, "abc123", gotCustom)
}

func TestHTTPClient_MaxContentSizeTruncates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(make([]byte, 4096))
	}))
	defer server.Close()

	client, err := NewHTTPClientBuilder(zerolog.Nop()).
		WithMaxContentSize(1024).
		Build()
	require.NoError(t, err)

	resp, err := client.Do(&HTTPRequest{URL: server.URL, Method: "GET"})
	require.NoError(t, err)
	assert.Len(t, resp.Body, 1024)
}

func TestHTTPClient_NetworkErrorType(t *testing.T) {
	client, err := NewHTTPClientBuilder(zerolog.Nop()).
		WithTimeout(200 * time.Millisecond).
		WithDialTimeout(200 * time.Millisecond).
		Build()
	require.NoError(t, err)

	// Reserved TEST-NET-1 address, nothing listens there.
	_, err = client.Do(&HTTPRequest{URL: "http://192.0.2.1:1/", Method: "GET"})
	require.Error(t, err)
	var netErr *NetworkError
	assert.ErrorAs(t, err, &netErr)
}

func TestFetchPage_NonHTMLContentType(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	client, err := NewHTTPClientBuilder(zerolog.Nop()).Build()
	require.NoError(t, err)

	result, err := client.FetchPage(FetchPageInput{URL: server.URL})
	require.NoError(t, err)
	assert.False(t, result.IsHTML())
	assert.Equal(t, `{"ok":true}`, string(result.Body))
}
