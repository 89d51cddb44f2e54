// Package golfcourse is a small client for the golfcourseapi.com REST API.
package golfcourse

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const DefaultBaseURL = "https://api.golfcourseapi.com/v1"

// StatusError is returned for non-2xx responses.
type StatusError struct {
	StatusCode int
	URL        string
	Body       string
}

func (e *StatusError) Error() string {
	msg := fmt.Sprintf("%d %s for url: %s", e.StatusCode, http.StatusText(e.StatusCode), e.URL)
	if e.Body != "" {
		msg += ": " + e.Body
	}
	return msg
}

// DecodeError is returned when a response body is not the expected JSON.
type DecodeError struct {
	URL string
	Err error
}

func (e *DecodeError) Error() string { return fmt.Sprintf("invalid JSON from %s: %v", e.URL, e.Err) }

func (e *DecodeError) Unwrap() error { return e.Err }

// Value holds a scalar field that the API sends as either a string or a
// number. Null and missing values are empty.
type Value string

func (v *Value) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case bytes.Equal(b, []byte("null")):
		*v = ""
	case len(b) > 0 && b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*v = Value(s)
	default:
		*v = Value(b)
	}
	return nil
}

func (v Value) String() string { return string(v) }

// Or returns v, or def when v is empty.
func (v Value) Or(def string) string {
	if v == "" {
		return def
	}
	return string(v)
}

type CourseSummary struct {
	ID         Value  `json:"id"`
	CourseName string `json:"course_name"`
	ClubName   string `json:"club_name"`
}

type Location struct {
	Address string `json:"address"`
}

type Tee struct {
	TeeName      Value  `json:"tee_name"`
	CourseRating Value  `json:"course_rating"`
	SlopeRating  Value  `json:"slope_rating"`
	TotalYards   Value  `json:"total_yards"`
	ParTotal     Value  `json:"par_total"`
}

type Tees struct {
	Male   []Tee `json:"male"`
	Female []Tee `json:"female"`
}

// All returns male tees followed by female tees.
func (t Tees) All() []Tee {
	out := make([]Tee, 0, len(t.Male)+len(t.Female))
	out = append(out, t.Male...)
	return append(out, t.Female...)
}

// Course is the detail record. Names and ids come from the search result, so
// only location and tees are decoded here.
type Course struct {
	Location *Location `json:"location"`
	Tees     Tees      `json:"tees"`
}

// Client talks to the course API. The zero HTTPClient uses http.DefaultClient.
type Client struct {
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client
}

func New(apiKey, baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		APIKey:     apiKey,
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: timeout},
	}
}

// Search returns the courses matching a free-text query.
func (c *Client) Search(ctx context.Context, query string) ([]CourseSummary, error) {
	endpoint := c.BaseURL + "/search?" + url.Values{"search_query": {query}}.Encode()
	var out struct {
		Courses []CourseSummary `json:"courses"`
	}
	if err := c.getJSON(ctx, endpoint, &out); err != nil {
		return nil, err
	}
	return out.Courses, nil
}

// Course fetches the detail record for one course.
func (c *Client) Course(ctx context.Context, id string) (*Course, error) {
	endpoint := c.BaseURL + "/courses/" + url.PathEscape(id)
	var out struct {
		Course Course `json:"course"`
	}
	if err := c.getJSON(ctx, endpoint, &out); err != nil {
		return nil, err
	}
	return &out.Course, nil
}

func (c *Client) getJSON(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Key "+c.APIKey)
	req.Header.Set("Accept", "application/json")
	hc := c.HTTPClient
	if hc == nil {
		hc = http.DefaultClient
	}
	res, err := hc.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(res.Body, 512))
		return &StatusError{StatusCode: res.StatusCode, URL: endpoint, Body: strings.TrimSpace(string(b))}
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return &DecodeError{URL: endpoint, Err: err}
	}
	return nil
}
