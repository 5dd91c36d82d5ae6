// Package weather fetches the current conditions shown on the status screen.
package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// DefaultEndpoint is the weatherapi.com current-conditions endpoint.
const DefaultEndpoint = "https://api.weatherapi.com/v1/current.json"

// Report is the subset of the current conditions the device displays.
type Report struct {
	TempC     float64
	Condition string
	Humidity  int
}

// response mirrors the JSON fields we read. Pointers distinguish missing
// fields from zero values.
type response struct {
	Current struct {
		TempC     *float64 `json:"temp_c"`
		Humidity  *int     `json:"humidity"`
		Condition struct {
			Text *string `json:"text"`
		} `json:"condition"`
	} `json:"current"`
}

// Client fetches reports from a fixed URL.
type Client struct {
	httpClient *http.Client
	url        string
}

// NewClient creates a client for endpoint with the given request timeout.
func NewClient(endpoint string, timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		url:        endpoint,
	}
}

// BuildURL returns endpoint with the key and location query parameters set.
func BuildURL(endpoint, key, query string) (string, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return "", fmt.Errorf("parse endpoint: %w", err)
	}
	q := u.Query()
	q.Set("key", key)
	q.Set("q", query)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// Fetch performs one GET and parses the report. Any non-2xx status is an error.
func (c *Client) Fetch(ctx context.Context) (Report, error) {
	log.Printf("weather: fetching from %s", redact(c.url))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return Report{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Report{}, fmt.Errorf("request: %w", err)
	}
	defer resp.Body.Close()

	log.Printf("weather: response code %d", resp.StatusCode)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Report{}, fmt.Errorf("request failed with status: %d", resp.StatusCode)
	}

	body, err := readText(resp.Body)
	if err != nil {
		return Report{}, fmt.Errorf("read body: %w", err)
	}
	log.Printf("weather: total %d bytes", len(body))

	return Parse(body)
}

// Parse decodes a current-conditions document. temp_c is required; a missing
// condition reads as "Unknown" and a missing humidity as 0.
func Parse(body string) (Report, error) {
	var r response
	if err := json.Unmarshal([]byte(body), &r); err != nil {
		return Report{}, fmt.Errorf("decode json: %w", err)
	}
	if r.Current.TempC == nil {
		return Report{}, fmt.Errorf("decode json: missing current.temp_c")
	}

	rep := Report{
		TempC:     *r.Current.TempC,
		Condition: "Unknown",
	}
	if r.Current.Condition.Text != nil {
		rep.Condition = *r.Current.Condition.Text
	}
	if r.Current.Humidity != nil {
		rep.Humidity = *r.Current.Humidity
	}
	return rep, nil
}

// readText reads r as UTF-8 text. A multi-byte sequence split across reads
// is held back and completed by the next read instead of failing the body.
func readText(r io.Reader) (string, error) {
	var sb strings.Builder
	tr := transform.NewReader(r, unicode.UTF8.NewDecoder())
	if _, err := io.Copy(&sb, tr); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// redact drops the query string, which carries the API key.
func redact(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return "(invalid url)"
	}
	u.RawQuery = ""
	return u.String()
}
