package newsapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEverything(t *testing.T) {
	var gotPath string
	var gotKey string
	var gotQuery map[string][]string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("X-Api-Key")
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"status": "ok",
			"totalResults": 1,
			"articles": [{
				"source": {"id": "wire", "name": "The Wire"},
				"title": "Fintech funding roundup",
				"description": "weekly deals",
				"url": "https://example.com/a",
				"publishedAt": "2025-08-30T10:00:00Z"
			}]
		}`))
	}))
	defer srv.Close()

	c := NewClient("test-key", WithBaseURL(srv.URL))

	resp, err := c.Everything(context.Background(), EverythingRequest{
		Query:    "fintech",
		From:     time.Date(2025, 8, 25, 0, 0, 0, 0, time.UTC),
		PageSize: 25,
	})
	require.NoError(t, err)

	assert.Equal(t, "/everything", gotPath)
	assert.Equal(t, "test-key", gotKey)
	assert.Equal(t, "fintech", gotQuery["q"][0])
	assert.Equal(t, "en", gotQuery["language"][0])
	assert.Equal(t, "publishedAt", gotQuery["sortBy"][0])
	assert.Equal(t, "25", gotQuery["pageSize"][0])

	assert.Equal(t, 1, resp.TotalResults)
	require.Len(t, resp.Articles, 1)
	assert.Equal(t, "Fintech funding roundup", resp.Articles[0].Title)
	assert.Equal(t, "The Wire", resp.Articles[0].Source.Name)
}

func TestTopHeadlines_Defaults(t *testing.T) {
	var gotQuery map[string][]string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Write([]byte(`{"status": "ok", "totalResults": 0, "articles": []}`))
	}))
	defer srv.Close()

	c := NewClient("k", WithBaseURL(srv.URL))

	_, err := c.TopHeadlines(context.Background(), TopHeadlinesRequest{})
	require.NoError(t, err)
	assert.Equal(t, "business", gotQuery["category"][0])
}

func TestGet_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"status": "error", "code": "apiKeyInvalid", "message": "invalid key"}`))
	}))
	defer srv.Close()

	c := NewClient("bad-key", WithBaseURL(srv.URL))

	_, err := c.Everything(context.Background(), EverythingRequest{Query: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "apiKeyInvalid")
	assert.Contains(t, err.Error(), "invalid key")
}

func TestGet_ContextCanceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status": "ok", "articles": []}`))
	}))
	defer srv.Close()

	c := NewClient("k", WithBaseURL(srv.URL))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Everything(ctx, EverythingRequest{Query: "x"})
	require.Error(t, err)
}
