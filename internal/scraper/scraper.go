package scraper

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/jhutchins/kirkgate-events/internal/httperr"
)

// Timeout bounds the whole page fetch; the upstream site occasionally stalls.
const Timeout = 30 * time.Second

// Client fetches the events page
type Client struct {
	httpClient *http.Client
	url        string
	userAgent  string
}

// New creates a new Client for the given events page URL. userAgent may be
// empty, in which case no User-Agent header is set.
func New(url, userAgent string) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: Timeout,
		},
		url:       url,
		userAgent: userAgent,
	}
}

// FetchPage fetches the events page and returns its HTML. A non-2xx response
// is returned as a *httperr.StatusError carrying the response body.
func (c *Client) FetchPage() (string, error) {
	req, err := http.NewRequest("GET", c.url, nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetching page: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &httperr.StatusError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	return string(body), nil
}

// ExtractEventsTable returns the serialized markup (tag included) of the
// first <table> inside the first <main> element of the page.
func ExtractEventsTable(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("parsing HTML: %w", err)
	}

	main := doc.Find("main").First()
	if main.Length() == 0 {
		return "", fmt.Errorf("no <main> element found in page")
	}

	table := main.Find("table").First()
	if table.Length() == 0 {
		return "", fmt.Errorf("no <table> element found inside <main>")
	}

	markup, err := goquery.OuterHtml(table)
	if err != nil {
		return "", fmt.Errorf("serializing table markup: %w", err)
	}

	return markup, nil
}
