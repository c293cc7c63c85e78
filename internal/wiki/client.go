// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package wiki retrieves Wikipedia articles as plain text through the
// MediaWiki Action API.
package wiki

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pdiddy/wikilearn/internal/httputil"
	"github.com/pdiddy/wikilearn/pkg/types"
)

// apiBase is the MediaWiki Action API endpoint pattern, formatted with the
// language subdomain. Declared as a var so tests can substitute an httptest
// server (in which case the %s verb is absent and the value is used as-is).
var apiBase = "https://%s.wikipedia.org/w/api.php"

// ErrPageMissing is returned when no article exists for the requested
// title. Callers treat it as a rephrase-able condition, not a transport
// failure.
var ErrPageMissing = errors.New("no article found for topic")

// Client fetches articles from one language edition of Wikipedia.
type Client struct {
	Client *http.Client
	Config types.WikiConfig
}

// NewClient returns a Client with defaults applied: language "en",
// timeout 30s.
func NewClient(cfg types.WikiConfig) *Client {
	if cfg.Language == "" {
		cfg.Language = "en"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &Client{
		Client: &http.Client{Timeout: cfg.Timeout},
		Config: cfg,
	}
}

func (c *Client) endpoint() string {
	if strings.Contains(apiBase, "%s") {
		return fmt.Sprintf(apiBase, c.Config.Language)
	}
	return apiBase
}

// queryResponse mirrors the Action API query result (formatversion=2).
type queryResponse struct {
	Query struct {
		Pages []struct {
			PageID  int64  `json:"pageid"`
			Title   string `json:"title"`
			Missing bool   `json:"missing"`
			Extract string `json:"extract"`
			FullURL string `json:"fullurl"`
		} `json:"pages"`
	} `json:"query"`
}

// Fetch retrieves the article for title, following redirects. The plain
// text comes from the TextExtracts extension; when a wiki serves no
// extract the rendered page HTML is fetched and converted instead.
func (c *Client) Fetch(ctx context.Context, title string) (*types.Article, error) {
	if strings.TrimSpace(title) == "" {
		return nil, fmt.Errorf("article title is empty")
	}

	params := url.Values{}
	params.Set("action", "query")
	params.Set("format", "json")
	params.Set("formatversion", "2")
	params.Set("prop", "extracts|info")
	params.Set("explaintext", "1")
	params.Set("redirects", "1")
	params.Set("inprop", "url")
	params.Set("titles", title)

	var qr queryResponse
	if err := c.get(ctx, params, &qr); err != nil {
		return nil, err
	}
	if len(qr.Query.Pages) == 0 {
		return nil, ErrPageMissing
	}

	page := qr.Query.Pages[0]
	if page.Missing {
		return nil, ErrPageMissing
	}

	text := strings.TrimSpace(page.Extract)
	if text == "" {
		rendered, err := c.fetchRendered(ctx, page.Title)
		if err != nil {
			return nil, fmt.Errorf("article %q has no extract and render fallback failed: %w", page.Title, err)
		}
		text = rendered
	}

	return &types.Article{
		PageID:      page.PageID,
		Title:       page.Title,
		Summary:     leadSection(text),
		Text:        text,
		URL:         page.FullURL,
		RetrievedAt: time.Now().UTC(),
	}, nil
}

// get performs an API GET with retry on HTTP 429 and decodes the JSON
// response into out.
func (c *Client) get(ctx context.Context, params url.Values, out any) error {
	reqURL := c.endpoint() + "?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.Config.UserAgent)

	resp, err := httputil.DoWithRetry(ctx, c.Client, req, 0)
	if err != nil {
		return fmt.Errorf("wikipedia API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("wikipedia API returned HTTP %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("parsing wikipedia response: %w", err)
	}
	return nil
}

// leadSection returns the text before the first section heading. Plain
// text extracts mark headings as "== Heading ==" on their own line.
func leadSection(text string) string {
	if idx := strings.Index(text, "\n=="); idx >= 0 {
		return strings.TrimSpace(text[:idx])
	}
	return strings.TrimSpace(text)
}
