// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package wiki

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pdiddy/wikilearn/pkg/types"
)

func testClient(ts *httptest.Server) *Client {
	c := NewClient(types.WikiConfig{
		HTTPConfig: types.HTTPConfig{UserAgent: "wikilearn-test/0.1"},
	})
	c.Client = ts.Client()
	return c
}

func swapAPIBase(t *testing.T, url string) {
	t.Helper()
	old := apiBase
	apiBase = url
	t.Cleanup(func() { apiBase = old })
}

const sampleQueryJSON = `{
  "query": {
    "pages": [
      {
        "pageid": 21721040,
        "title": "Wild animal",
        "extract": "Wild animals live in the wild.\n\nThey are not domesticated.\n\n\n== Habitat ==\nForests of Canada and Brazil.",
        "fullurl": "https://en.wikipedia.org/wiki/Wild_animal"
      }
    ]
  }
}`

func TestFetch(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("User-Agent"); got != "wikilearn-test/0.1" {
			t.Errorf("User-Agent = %q", got)
		}
		if got := r.URL.Query().Get("titles"); got != "wild animals" {
			t.Errorf("titles param = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, sampleQueryJSON)
	}))
	defer ts.Close()
	swapAPIBase(t, ts.URL)

	article, err := testClient(ts).Fetch(context.Background(), "wild animals")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}

	if article.Title != "Wild animal" {
		t.Errorf("Title = %q", article.Title)
	}
	if article.PageID != 21721040 {
		t.Errorf("PageID = %d", article.PageID)
	}
	if article.URL != "https://en.wikipedia.org/wiki/Wild_animal" {
		t.Errorf("URL = %q", article.URL)
	}
	// Summary stops at the first section heading.
	if strings.Contains(article.Summary, "Habitat") {
		t.Errorf("Summary = %q, should exclude sections", article.Summary)
	}
	if !strings.HasPrefix(article.Summary, "Wild animals live") {
		t.Errorf("Summary = %q", article.Summary)
	}
	// Text keeps the full body.
	if !strings.Contains(article.Text, "Forests of Canada") {
		t.Errorf("Text = %q, should include section bodies", article.Text)
	}
	if article.RetrievedAt.IsZero() {
		t.Error("RetrievedAt not set")
	}
}

func TestFetchMissingPage(t *testing.T) {
	missingJSON := `{"query":{"pages":[{"title":"Nonsense topic","missing":true}]}}`
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, missingJSON)
	}))
	defer ts.Close()
	swapAPIBase(t, ts.URL)

	_, err := testClient(ts).Fetch(context.Background(), "Nonsense topic")
	if !errors.Is(err, ErrPageMissing) {
		t.Errorf("err = %v, want ErrPageMissing", err)
	}
}

func TestFetchEmptyTitle(t *testing.T) {
	c := NewClient(types.WikiConfig{})
	if _, err := c.Fetch(context.Background(), "  "); err == nil {
		t.Fatal("expected error for empty title")
	}
}

func TestFetchHTTPError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer ts.Close()
	swapAPIBase(t, ts.URL)

	_, err := testClient(ts).Fetch(context.Background(), "anything")
	if err == nil || !strings.Contains(err.Error(), "HTTP 500") {
		t.Errorf("err = %v, want HTTP 500", err)
	}
}

func TestFetchMalformedJSON(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{not json`)
	}))
	defer ts.Close()
	swapAPIBase(t, ts.URL)

	_, err := testClient(ts).Fetch(context.Background(), "anything")
	if err == nil || !strings.Contains(err.Error(), "parsing") {
		t.Errorf("err = %v, want parse error", err)
	}
}

// Empty extract should trigger the rendered-HTML fallback via action=parse.
func TestFetchRenderFallback(t *testing.T) {
	queryJSON := `{"query":{"pages":[{"pageid":7,"title":"Small wiki page","extract":"","fullurl":"https://example.org/wiki/Small_wiki_page"}]}}`
	parseJSON := `{"parse":{"title":"Small wiki page","text":"<div><p>Body text here.</p><table><tr><td>infobox junk</td></tr></table></div>"}}`

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("action") {
		case "query":
			fmt.Fprint(w, queryJSON)
		case "parse":
			fmt.Fprint(w, parseJSON)
		default:
			t.Errorf("unexpected action %q", r.URL.Query().Get("action"))
		}
	}))
	defer ts.Close()
	swapAPIBase(t, ts.URL)

	article, err := testClient(ts).Fetch(context.Background(), "Small wiki page")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if article.Text != "Body text here." {
		t.Errorf("Text = %q, want rendered fallback text", article.Text)
	}
}

// --- leadSection ---

func TestLeadSection(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"with sections", "Lead paragraph.\n\n\n== History ==\nLater.", "Lead paragraph."},
		{"no sections", "Just one paragraph.", "Just one paragraph."},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := leadSection(tt.text); got != tt.want {
				t.Errorf("leadSection() = %q, want %q", got, tt.want)
			}
		})
	}
}

// --- htmlToText ---

func TestHTMLToText(t *testing.T) {
	tests := []struct {
		name string
		html string
		want string
	}{
		{
			name: "block tags separate text",
			html: "<div>first</div><div>second</div>",
			want: "first second",
		},
		{
			name: "chrome removed",
			html: `<p>Paris<sup class="reference">[1]</sup> is a city.</p><table><tr><td>box</td></tr></table>`,
			want: "Paris is a city.",
		},
		{
			name: "whitespace collapsed",
			html: "<p>a\n\n   b</p>",
			want: "a b",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := htmlToText(tt.html)
			if err != nil {
				t.Fatalf("htmlToText: %v", err)
			}
			if got != tt.want {
				t.Errorf("htmlToText() = %q, want %q", got, tt.want)
			}
		})
	}
}
