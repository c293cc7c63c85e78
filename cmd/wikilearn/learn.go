// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/wikilearn/internal/entities"
	"github.com/pdiddy/wikilearn/internal/history"
	"github.com/pdiddy/wikilearn/internal/report"
	"github.com/pdiddy/wikilearn/internal/topic"
	"github.com/pdiddy/wikilearn/internal/vectors"
	"github.com/pdiddy/wikilearn/internal/wiki"
	"github.com/pdiddy/wikilearn/pkg/types"
)

var learnCmd = &cobra.Command{
	Use:   "learn",
	Short: "Extract a topic from a statement and report on its Wikipedia article",
	Long: `Learn runs the full pipeline: it extracts the topic of a free-text statement,
fetches the matching Wikipedia article, and prints a report with the article
summary and URL, the most frequently referenced places, and words similar to
the topic.

Without --query it prompts on stdin and asks you to rephrase when the topic
cannot be determined or no article exists for it. With --query it runs once
and fails instead of re-prompting.`,
	RunE: runLearn,
}

func init() {
	learnCmd.Flags().String("query", "", "run once with this statement instead of prompting")
	learnCmd.Flags().Bool("json", false, "output the report as JSON")
	learnCmd.Flags().Int("max-attempts", 5, "maximum prompt attempts in interactive mode")
	learnCmd.Flags().String("language", "", "Wikipedia language subdomain (default en)")
	learnCmd.Flags().String("vectors", "", "path to a word-vectors file for the similar-words section")
	learnCmd.Flags().Bool("no-history", false, "do not record the report in the history store")

	rootCmd.AddCommand(learnCmd)
}

func runLearn(cmd *cobra.Command, args []string) error {
	cfg := pipelineConfig()
	if v, _ := cmd.Flags().GetString("language"); v != "" {
		cfg.Wiki.Language = v
	}
	if v, _ := cmd.Flags().GetString("vectors"); v != "" {
		cfg.Analysis.VectorsPath = v
	}

	query, _ := cmd.Flags().GetString("query")
	maxAttempts, _ := cmd.Flags().GetInt("max-attempts")

	client := wiki.NewClient(cfg.Wiki)
	ctx := cmd.Context()

	var (
		phrase  string
		article *types.Article
		err     error
	)
	if query != "" {
		phrase, article, err = lookupOnce(ctx, client, query)
	} else {
		phrase, article, err = lookupInteractive(ctx, client, cmd.InOrStdin(), cmd.OutOrStdout(), maxAttempts)
	}
	if err != nil {
		return err
	}

	rep, err := analyze(cfg, phrase, article)
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

// fetcher is the slice of wiki.Client the lookup loop needs. Tests
// substitute a fake.
type fetcher interface {
	Fetch(ctx context.Context, title string) (*types.Article, error)
}

// lookupOnce runs extraction and retrieval a single time, returning
// rephrase-able conditions as plain errors.
func lookupOnce(ctx context.Context, client fetcher, statement string) (string, *types.Article, error) {
	phrase, err := topic.Extract(statement)
	if errors.Is(err, topic.ErrNoTopic) {
		return "", nil, fmt.Errorf("could not determine a topic in %q: try rephrasing the statement", statement)
	}
	if err != nil {
		return "", nil, err
	}

	article, err := client.Fetch(ctx, phrase)
	if errors.Is(err, wiki.ErrPageMissing) {
		return "", nil, fmt.Errorf("no Wikipedia article found for %q: try another topic", phrase)
	}
	if err != nil {
		return "", nil, err
	}
	return phrase, article, nil
}

// lookupInteractive prompts on in until extraction and retrieval both
// succeed or maxAttempts statements have been tried.
func lookupInteractive(ctx context.Context, client fetcher, in io.Reader, out io.Writer, maxAttempts int) (string, *types.Article, error) {
	scanner := bufio.NewScanner(in)
	prompt := "Give me a statement about what you would like to learn about: "

	for attempt := 0; attempt < maxAttempts; attempt++ {
		fmt.Fprint(out, prompt)
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return "", nil, fmt.Errorf("reading input: %w", err)
			}
			return "", nil, fmt.Errorf("no input")
		}

		phrase, err := topic.Extract(scanner.Text())
		if errors.Is(err, topic.ErrNoTopic) {
			prompt = "We were unable to determine the topic you want to know about. Please rephrase your statement and try again: "
			continue
		}
		if err != nil {
			return "", nil, err
		}

		article, err := client.Fetch(ctx, phrase)
		if errors.Is(err, wiki.ErrPageMissing) {
			prompt = fmt.Sprintf("We were unable to find a Wikipedia page for %q. Please try again with another topic: ", phrase)
			continue
		}
		if err != nil {
			return "", nil, err
		}
		return phrase, article, nil
	}
	return "", nil, fmt.Errorf("no topic found after %d attempts", maxAttempts)
}

// analyze runs the NLP pass over the article and assembles the report.
// A missing or unreadable vectors file degrades to an empty similar-words
// section with a notice on stderr.
func analyze(cfg types.PipelineConfig, phrase string, article *types.Article) (types.Report, error) {
	places, err := entities.Places(article.Text, cfg.Analysis.MaxPlaces)
	if err != nil {
		return types.Report{}, fmt.Errorf("analyzing article: %w", err)
	}

	var similar []string
	if cfg.Analysis.VectorsPath == "" {
		fmt.Fprintln(os.Stderr, "notice: no vectors file configured; skipping similar words")
	} else {
		model, err := vectors.Load(cfg.Analysis.VectorsPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "notice: skipping similar words: %v\n", err)
		} else {
			similar = model.SimilarWords(article.Text, phrase, cfg.Analysis.SimilarityThreshold)
		}
	}

	return report.Build(phrase, article, places, similar), nil
}

func recordHistory(ctx context.Context, cfg types.HistoryConfig, rep types.Report) error {
	store, err := history.NewStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()
	return store.Save(ctx, rep)
}
