// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/pdiddy/wikilearn/pkg/types"
)

const (
	defaultTimeout       = 30 * time.Second
	defaultUserAgent     = "wikilearn/0.1"
	defaultLanguage      = "en"
	defaultThreshold     = 0.80
	defaultMaxPlaces     = 10
	defaultSummaryLength = 100
	defaultDataDir       = "data"
)

// pipelineConfig assembles stage configuration from the config file and
// environment. Individual command flags override fields afterwards.
func pipelineConfig() types.PipelineConfig {
	cfg := types.PipelineConfig{
		Wiki: types.WikiConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   defaultTimeout,
				UserAgent: userAgent(),
			},
			Language: defaultLanguage,
		},
		Analysis: types.AnalysisConfig{
			SimilarityThreshold: defaultThreshold,
			MaxPlaces:           defaultMaxPlaces,
		},
		Report: types.ReportConfig{
			SummaryLength: defaultSummaryLength,
		},
		History: types.HistoryConfig{
			DataDir: defaultDataDir,
		},
	}

	if v := viper.GetDuration("wiki.timeout"); v > 0 {
		cfg.Wiki.Timeout = v
	}
	if v := viper.GetString("wiki.user_agent"); v != "" {
		cfg.Wiki.UserAgent = v
	}
	if v := viper.GetString("wiki.language"); v != "" {
		cfg.Wiki.Language = v
	}
	if v := viper.GetString("analysis.vectors_path"); v != "" {
		cfg.Analysis.VectorsPath = v
	}
	if v := viper.GetFloat64("analysis.similarity_threshold"); v > 0 {
		cfg.Analysis.SimilarityThreshold = v
	}
	if v := viper.GetInt("analysis.max_places"); v > 0 {
		cfg.Analysis.MaxPlaces = v
	}
	if v := viper.GetInt("report.summary_length"); v > 0 {
		cfg.Report.SummaryLength = v
	}
	if v := viper.GetString("history.data_dir"); v != "" {
		cfg.History.DataDir = v
	}
	if v := viper.GetInt("history.max_results"); v > 0 {
		cfg.History.MaxResults = v
	}

	return cfg
}

// userAgent builds the HTTP User-Agent, appending the optional contact
// email from .secrets/ per the Wikimedia API etiquette.
func userAgent() string {
	if email, ok := loadedSecrets["contact-email"]; ok {
		return fmt.Sprintf("%s (%s)", defaultUserAgent, email)
	}
	return defaultUserAgent
}
