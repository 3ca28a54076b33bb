package network

import (
	"context"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	fhttp "github.com/bogdanfinn/fhttp"
)

// Page is the outcome of a single proxied GET.
type Page struct {
	URL       string `json:"url"`
	Status    int    `json:"status"`
	LatencyMS int64  `json:"latency_ms"`
	Title     string `json:"title,omitempty"`
	Session   string `json:"session"`
}

// Fetch requests target through the client's proxy and reads the page
// title from HTML responses. Non-2xx statuses are not treated as errors.
func Fetch(ctx context.Context, client *Client, target string) (*Page, error) {
	req, err := fhttp.NewRequestWithContext(ctx, fhttp.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("accept-language", "en-US,en;q=0.9")

	start := time.Now()
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	page := &Page{
		URL:       target,
		Status:    resp.StatusCode,
		LatencyMS: time.Since(start).Milliseconds(),
		Session:   client.proxy.SessionID(),
	}

	if strings.Contains(strings.ToLower(resp.Header.Get("Content-Type")), "html") {
		if doc, err := goquery.NewDocumentFromReader(resp.Body); err == nil {
			page.Title = pageTitle(doc)
		}
	}
	return page, nil
}

func pageTitle(doc *goquery.Document) string {
	title := doc.Find("head title").First().Text()
	if title == "" {
		title = doc.Find("title").First().Text()
	}
	return strings.Join(strings.Fields(title), " ")
}
