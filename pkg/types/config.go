// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "wikilearn/0.1"). Wikimedia API etiquette asks for a contact
	// address; see the .secrets/contact-email file.
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// WikiConfig holds settings for article retrieval.
type WikiConfig struct {
	HTTPConfig `yaml:",inline"`

	// Language is the Wikipedia language subdomain (default "en").
	Language string `json:"language" yaml:"language"`
}

// AnalysisConfig holds settings for the article analysis pass.
type AnalysisConfig struct {
	// VectorsPath is the path to a word2vec/GloVe text-format embeddings
	// file. Empty disables the similar-words section.
	VectorsPath string `json:"vectors_path" yaml:"vectors_path"`

	// SimilarityThreshold is the minimum cosine similarity for a word to
	// count as similar to the topic (default 0.80).
	SimilarityThreshold float64 `json:"similarity_threshold" yaml:"similarity_threshold"`

	// MaxPlaces is the number of top geo-political entities to report
	// (default 10).
	MaxPlaces int `json:"max_places" yaml:"max_places"`
}

// ReportConfig holds settings for report formatting.
type ReportConfig struct {
	// SummaryLength is the maximum number of characters of the article
	// summary to print (default 100). Zero prints the whole lead section.
	SummaryLength int `json:"summary_length" yaml:"summary_length"`
}

// HistoryConfig holds settings for the lookup history store.
type HistoryConfig struct {
	// DataDir is the directory holding the history database (contains
	// history.db and exports).
	DataDir string `json:"data_dir" yaml:"data_dir"`

	// MaxResults is the default maximum number of history query results
	// (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// PipelineConfig groups all stage configurations for the pipeline.
type PipelineConfig struct {
	Wiki     WikiConfig     `json:"wiki" yaml:"wiki"`
	Analysis AnalysisConfig `json:"analysis" yaml:"analysis"`
	Report   ReportConfig   `json:"report" yaml:"report"`
	History  HistoryConfig  `json:"history" yaml:"history"`
}
