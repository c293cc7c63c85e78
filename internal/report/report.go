// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report assembles and formats the output of a learn pipeline run.
package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/pdiddy/wikilearn/pkg/types"
)

// Build assembles a Report from the pipeline's pieces.
func Build(topic string, article *types.Article, places []types.PlaceCount, similar []string) types.Report {
	return types.Report{
		Topic:        topic,
		Title:        article.Title,
		Summary:      article.Summary,
		URL:          article.URL,
		Places:       places,
		SimilarWords: similar,
		RetrievedAt:  article.RetrievedAt,
	}
}

// FormatText writes a human-readable report to w. summaryLength caps the
// summary excerpt; zero prints the whole lead section.
func FormatText(r types.Report, summaryLength int, w io.Writer) {
	fmt.Fprintf(w, "Page Title:   %s\n", r.Title)
	fmt.Fprintf(w, "Page Summary: %s\n", excerpt(r.Summary, summaryLength))
	fmt.Fprintf(w, "Page URL:     %s\n", r.URL)

	fmt.Fprintf(w, "\nMost frequently referenced places:\n")
	if len(r.Places) == 0 {
		fmt.Fprintln(w, "  (none found)")
	}
	for _, p := range r.Places {
		fmt.Fprintf(w, "  %-30s %d\n", p.Name, p.Count)
	}

	fmt.Fprintf(w, "\nWords similar to %q:\n", r.Topic)
	if len(r.SimilarWords) == 0 {
		fmt.Fprintln(w, "  (none found)")
	}
	for _, word := range r.SimilarWords {
		fmt.Fprintf(w, "  %s\n", word)
	}
}

// FormatJSON writes the report as indented JSON to w.
func FormatJSON(r types.Report, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// excerpt truncates s to max characters on a rune boundary, appending an
// ellipsis when text was cut.
func excerpt(s string, max int) string {
	if max <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}
