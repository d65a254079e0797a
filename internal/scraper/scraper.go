package scraper

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pfrederiksen/herb-scraper/internal/herb"
	"github.com/pfrederiksen/herb-scraper/internal/logger"
)

const (
	BaseURL          = "https://www.wowhead.com"
	HerbListEndpoint = "/objects/herbs?filter=17;11;0"
	ZoneListEndpoint = "/zones"
	Timeout          = 10 * time.Second
)

// DefaultHeaders mimic a desktop browser; Wowhead serves a reduced page to
// unknown clients.
var DefaultHeaders = map[string]string{
	"accept":                    "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,image/apng,*/*;q=0.8,application/signed-exchange;v=b3;q=0.7",
	"accept-language":           "en-US,en;q=0.9",
	"priority":                  "u=0, i",
	"sec-ch-ua":                 `"Microsoft Edge";v="131", "Chromium";v="131", "Not_A Brand";v="24"`,
	"sec-ch-ua-mobile":          "?0",
	"sec-ch-ua-platform":        `"Windows"`,
	"sec-fetch-dest":            "document",
	"sec-fetch-mode":            "navigate",
	"sec-fetch-site":            "none",
	"sec-fetch-user":            "?1",
	"upgrade-insecure-requests": "1",
	"user-agent":                "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36 Edg/131.0.0.0",
}

// StatusError reports a non-200 response
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status code %d from %s", e.StatusCode, e.URL)
}

// Client fetches Wowhead pages one at a time
type Client struct {
	client  *http.Client
	baseURL string
	headers map[string]string
}

// New creates a Client for baseURL. A zero timeout uses Timeout and nil
// headers use DefaultHeaders.
func New(baseURL string, timeout time.Duration, headers map[string]string) *Client {
	if timeout <= 0 {
		timeout = Timeout
	}
	if headers == nil {
		headers = DefaultHeaders
	}
	return &Client{
		client: &http.Client{
			Timeout: timeout,
		},
		baseURL: strings.TrimRight(baseURL, "/"),
		headers: headers,
	}
}

// HerbListURL returns the URL of the herb listing page.
func (c *Client) HerbListURL() string {
	return c.baseURL + HerbListEndpoint
}

// HerbURL returns the detail page URL of one herb.
func (c *Client) HerbURL(d herb.Descriptor) string {
	return fmt.Sprintf("%s/object=%d/%s", c.baseURL, d.ID, d.Name)
}

// Fetch returns the body of url. Any status other than 200 is a
// *StatusError; a timeout is returned like any other transport error. An
// empty body is not an error.
func (c *Client) Fetch(url string) (string, error) {
	logger.Info("Fetching content from URL", logger.Fields{"url": url})

	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}

	start := time.Now()
	resp, err := c.client.Do(req)
	logger.RecordTiming("http.fetch", time.Since(start))
	if err != nil {
		return "", fmt.Errorf("fetching page: %w", err)
	}
	defer resp.Body.Close()

	logger.Info("Response received", logger.Fields{
		"url":         url,
		"status_code": resp.StatusCode,
	})
	if resp.StatusCode != http.StatusOK {
		return "", &StatusError{URL: url, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading body: %w", err)
	}
	return string(body), nil
}
