// Package newsapi provides a minimal client for the NewsAPI.org v2 API.
package newsapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"
)

const defaultBaseURL = "https://newsapi.org/v2"

// The free NewsAPI tier allows roughly 100 requests per day; a conservative
// client-side limiter keeps bursts from tripping the account.
const requestsPerSecond = 2

// Client defines the NewsAPI operations used by the market layer.
type Client interface {
	Everything(ctx context.Context, req EverythingRequest) (*ArticlesResponse, error)
	TopHeadlines(ctx context.Context, req TopHeadlinesRequest) (*ArticlesResponse, error)
}

// EverythingRequest holds parameters for GET /everything.
type EverythingRequest struct {
	Query    string
	From     time.Time
	Language string
	SortBy   string
	PageSize int
}

// TopHeadlinesRequest holds parameters for GET /top-headlines.
type TopHeadlinesRequest struct {
	Category string
	Country  string
	PageSize int
}

// ArticlesResponse is the common response shape for article listings.
type ArticlesResponse struct {
	Status       string    `json:"status"`
	TotalResults int       `json:"totalResults"`
	Articles     []Article `json:"articles"`
	Code         string    `json:"code,omitempty"`
	Message      string    `json:"message,omitempty"`
}

// Article is a single news article.
type Article struct {
	Source      Source `json:"source"`
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	PublishedAt string `json:"publishedAt"`
}

// Source identifies an article's publisher.
type Source struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Option configures the client.
type Option func(*httpClient)

// WithBaseURL overrides the default API base URL.
func WithBaseURL(u string) Option {
	return func(c *httpClient) {
		c.baseURL = u
	}
}

// WithHTTPClient overrides the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) {
		c.http = hc
	}
}

type httpClient struct {
	apiKey  string
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
}

// NewClient creates a NewsAPI client.
func NewClient(apiKey string, opts ...Option) Client {
	c := &httpClient{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		http: &http.Client{
			Timeout: 30 * time.Second,
		},
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), 1),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *httpClient) Everything(ctx context.Context, req EverythingRequest) (*ArticlesResponse, error) {
	params := url.Values{}
	params.Set("q", req.Query)
	if !req.From.IsZero() {
		params.Set("from", req.From.UTC().Format(time.RFC3339))
	}
	language := req.Language
	if language == "" {
		language = "en"
	}
	params.Set("language", language)
	sortBy := req.SortBy
	if sortBy == "" {
		sortBy = "publishedAt"
	}
	params.Set("sortBy", sortBy)
	if req.PageSize > 0 {
		params.Set("pageSize", fmt.Sprintf("%d", req.PageSize))
	}

	return c.get(ctx, "/everything", params)
}

func (c *httpClient) TopHeadlines(ctx context.Context, req TopHeadlinesRequest) (*ArticlesResponse, error) {
	params := url.Values{}
	category := req.Category
	if category == "" {
		category = "business"
	}
	params.Set("category", category)
	if req.Country != "" {
		params.Set("country", req.Country)
	}
	if req.PageSize > 0 {
		params.Set("pageSize", fmt.Sprintf("%d", req.PageSize))
	}

	return c.get(ctx, "/top-headlines", params)
}

func (c *httpClient) get(ctx context.Context, path string, params url.Values) (*ArticlesResponse, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, eris.Wrap(err, "newsapi: rate limit wait")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return nil, eris.Wrap(err, "newsapi: create request")
	}
	httpReq.Header.Set("X-Api-Key", c.apiKey)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, eris.Wrap(err, "newsapi: send request")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "newsapi: read response")
	}

	var result ArticlesResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, eris.Wrapf(err, "newsapi: unmarshal response (status %d)", resp.StatusCode)
	}

	if resp.StatusCode != http.StatusOK || result.Status == "error" {
		return nil, eris.Errorf("newsapi: API error %q: %s", result.Code, result.Message)
	}

	return &result, nil
}
