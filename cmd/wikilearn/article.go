// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/wikilearn/internal/report"
	"github.com/pdiddy/wikilearn/internal/wiki"
)

var articleCmd = &cobra.Command{
	Use:   "article [title...]",
	Short: "Report on a Wikipedia article by title, skipping extraction",
	Long: `Article fetches the named Wikipedia article directly and prints the same
report as "learn": summary, URL, referenced places, and similar words. The
title is used verbatim as the topic.`,
	RunE: runArticle,
}

func init() {
	articleCmd.Flags().Bool("json", false, "output the report as JSON")
	articleCmd.Flags().String("language", "", "Wikipedia language subdomain (default en)")
	articleCmd.Flags().String("vectors", "", "path to a word-vectors file for the similar-words section")
	articleCmd.Flags().Bool("no-history", false, "do not record the report in the history store")

	rootCmd.AddCommand(articleCmd)
}

func runArticle(cmd *cobra.Command, args []string) error {
	title := strings.Join(args, " ")
	if title == "" {
		return fmt.Errorf("provide an article title, e.g.: wikilearn article Nikola Tesla")
	}

	cfg := pipelineConfig()
	if v, _ := cmd.Flags().GetString("language"); v != "" {
		cfg.Wiki.Language = v
	}
	if v, _ := cmd.Flags().GetString("vectors"); v != "" {
		cfg.Analysis.VectorsPath = v
	}

	client := wiki.NewClient(cfg.Wiki)
	ctx := cmd.Context()

	article, err := client.Fetch(ctx, title)
	if errors.Is(err, wiki.ErrPageMissing) {
		return fmt.Errorf("no Wikipedia article found for %q", title)
	}
	if err != nil {
		return err
	}

	rep, err := analyze(cfg, title, article)
	if err != nil {
		return err
	}

	asJSON, _ := cmd.Flags().GetBool("json")
	if asJSON {
		if err := report.FormatJSON(rep, cmd.OutOrStdout()); err != nil {
			return err
		}
	} else {
		report.FormatText(rep, cfg.Report.SummaryLength, cmd.OutOrStdout())
	}

	if noHistory, _ := cmd.Flags().GetBool("no-history"); !noHistory {
		if err := recordHistory(ctx, cfg.History, rep); err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not record history: %v\n", err)
		}
	}
	return nil
}
