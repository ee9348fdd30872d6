package browser

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetcherFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "iframe", r.Header.Get("Sec-Fetch-Dest"))
		assert.Equal(t, "test-agent", r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Header().Set("X-Frame-Options", "DENY")
		fmt.Fprint(w, "<p>hi</p>")
	}))
	defer srv.Close()

	f := NewFetcher(WithHTTPClient(srv.Client()), WithUserAgent("test-agent"))
	res, err := f.Fetch(context.Background(), srv.URL+"/", FetchOptions{})
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.True(t, IsHTML(res.ContentType))
	assert.Equal(t, "DENY", res.Header.Get("X-Frame-Options"))
	assert.Equal(t, "<p>hi</p>", string(res.Body))
}

func TestFetcherCookies(t *testing.T) {
	var seen []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c, err := r.Cookie("session")
		if err == nil {
			seen = append(seen, c.Value)
		} else {
			seen = append(seen, "")
		}
		http.SetCookie(w, &http.Cookie{Name: "session", Value: "abc", Path: "/"})
	}))
	defer srv.Close()

	f := NewFetcher(WithHTTPClient(srv.Client()))
	ctx := context.Background()

	for _, opts := range []FetchOptions{{WithCookies: true}, {WithCookies: true}, {WithCookies: false}} {
		_, err := f.Fetch(ctx, srv.URL+"/", opts)
		require.NoError(t, err)
	}

	assert.Equal(t, []string{"", "abc", ""}, seen)
}

func TestFetcherTooManyRedirects(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/loop", http.StatusFound)
	}))
	defer srv.Close()

	f := NewFetcher(WithHTTPClient(srv.Client()))
	_, err := f.Fetch(context.Background(), srv.URL+"/", FetchOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "too many redirects")
}

func TestFetcherCanceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewFetcher(WithHTTPClient(srv.Client())).Fetch(ctx, srv.URL, FetchOptions{})
	require.ErrorIs(t, err, context.Canceled)
}
