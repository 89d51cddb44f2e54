// Package tavily wraps the Tavily web search API.
package tavily

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const DefaultBaseURL = "https://api.tavily.com"

type SearchRequest struct {
	Query         string `json:"query"`
	SearchDepth   string `json:"search_depth,omitempty"`
	IncludeAnswer bool   `json:"include_answer"`
	MaxResults    int    `json:"max_results,omitempty"`
}

type Result struct {
	Title   string  `json:"title"`
	URL     string  `json:"url"`
	Content string  `json:"content"`
	Score   float64 `json:"score"`
}

// Response is the subset of the search response used by callers.
// Answer is nil when the API did not produce one.
type Response struct {
	Query   string   `json:"query"`
	Answer  *string  `json:"answer"`
	Results []Result `json:"results"`
}

type StatusError struct {
	StatusCode int
	Detail     string
}

func (e *StatusError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("tavily status %d", e.StatusCode)
	}
	return fmt.Sprintf("tavily status %d: %s", e.StatusCode, e.Detail)
}

type Client struct {
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client
}

func New(apiKey, baseURL string, timeout time.Duration) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("tavily: TAVILY_API_KEY is not set")
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		APIKey:     apiKey,
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: timeout},
	}, nil
}

// Search runs a basic-depth search that asks for a direct answer.
func (c *Client) Search(ctx context.Context, query string) (*Response, error) {
	return c.Do(ctx, SearchRequest{Query: query, SearchDepth: "basic", IncludeAnswer: true, MaxResults: 5})
}

func (c *Client) Do(ctx context.Context, sr SearchRequest) (*Response, error) {
	b, err := json.Marshal(sr)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/search", bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.APIKey)
	req.Header.Set("Content-Type", "application/json")
	hc := c.HTTPClient
	if hc == nil {
		hc = http.DefaultClient
	}
	res, err := hc.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		var eresp struct {
			Detail any `json:"detail"`
		}
		raw, _ := io.ReadAll(io.LimitReader(res.Body, 2048))
		detail := strings.TrimSpace(string(raw))
		if json.Unmarshal(raw, &eresp) == nil && eresp.Detail != nil {
			detail = fmt.Sprint(eresp.Detail)
		}
		return nil, &StatusError{StatusCode: res.StatusCode, Detail: detail}
	}
	var out Response
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("tavily: decode response: %w", err)
	}
	return &out, nil
}
