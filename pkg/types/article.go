// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types holds the data structures shared across pipeline stages.
package types

import "time"

// Article holds a retrieved Wikipedia article.
type Article struct {
	// PageID is the numeric MediaWiki page ID.
	PageID int64 `json:"page_id" yaml:"page_id"`

	// Title is the canonical article title after redirect resolution.
	Title string `json:"title" yaml:"title"`

	// Summary is the plain-text lead section of the article.
	Summary string `json:"summary" yaml:"summary"`

	// Text is the full plain-text body, including the lead section.
	Text string `json:"text" yaml:"text"`

	// URL is the canonical article URL.
	URL string `json:"url" yaml:"url"`

	// RetrievedAt records when the article was fetched.
	RetrievedAt time.Time `json:"retrieved_at" yaml:"retrieved_at"`
}

// PlaceCount is a geo-political entity and how often the article mentions it.
type PlaceCount struct {
	Name  string `json:"name" yaml:"name"`
	Count int    `json:"count" yaml:"count"`
}

// Report is the assembled output of one learn pipeline run.
type Report struct {
	// Topic is the keyphrase extracted from the user's statement, or the
	// title the user asked for directly.
	Topic string `json:"topic" yaml:"topic"`

	// Title, Summary, and URL come from the retrieved article.
	Title   string `json:"title" yaml:"title"`
	Summary string `json:"summary" yaml:"summary"`
	URL     string `json:"url" yaml:"url"`

	// Places lists the most frequently referenced geo-political entities
	// in descending frequency order.
	Places []PlaceCount `json:"places" yaml:"places"`

	// SimilarWords lists article words whose embedding similarity to the
	// topic exceeds the configured threshold.
	SimilarWords []string `json:"similar_words" yaml:"similar_words"`

	// RetrievedAt records when the underlying article was fetched.
	RetrievedAt time.Time `json:"retrieved_at" yaml:"retrieved_at"`
}
