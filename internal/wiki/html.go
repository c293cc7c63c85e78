// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package wiki

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var (
	reWhitespace = regexp.MustCompile(`\s+`)
	reBlockTags  = regexp.MustCompile(`</?(?:div|p|br|li|td|tr|h[1-6])[^>]*>`)
)

// chromeSelector matches page furniture that carries no article prose:
// infoboxes, navboxes, reference markers, edit links, and styling.
const chromeSelector = "table, style, script, sup.reference, .mw-editsection, .infobox, .navbox, .reflist, .thumb"

// parseResponse mirrors the Action API parse result (formatversion=2).
type parseResponse struct {
	Parse struct {
		Title string `json:"title"`
		Text  string `json:"text"`
	} `json:"parse"`
}

// fetchRendered retrieves the rendered article HTML and converts it to
// plain text. It is the fallback for wikis without the TextExtracts
// extension.
func (c *Client) fetchRendered(ctx context.Context, title string) (string, error) {
	params := url.Values{}
	params.Set("action", "parse")
	params.Set("format", "json")
	params.Set("formatversion", "2")
	params.Set("prop", "text")
	params.Set("redirects", "1")
	params.Set("page", title)

	var pr parseResponse
	if err := c.get(ctx, params, &pr); err != nil {
		return "", err
	}
	if pr.Parse.Text == "" {
		return "", fmt.Errorf("empty rendered text for %q", title)
	}
	return htmlToText(pr.Parse.Text)
}

// htmlToText strips page chrome from rendered article HTML and returns
// whitespace-normalized plain text.
func htmlToText(rawHTML string) (string, error) {
	// Pad block elements so their text does not run together once tags
	// are stripped.
	padded := reBlockTags.ReplaceAllString(rawHTML, " $0 ")

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(padded))
	if err != nil {
		return "", fmt.Errorf("parsing article HTML: %w", err)
	}
	doc.Find(chromeSelector).Remove()

	return normalizeText(doc.Text()), nil
}

func normalizeText(text string) string {
	return strings.TrimSpace(reWhitespace.ReplaceAllString(text, " "))
}
