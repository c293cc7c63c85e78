// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/wikilearn/internal/topic"
)

var topicCmd = &cobra.Command{
	Use:   "topic [statement...]",
	Short: "Extract the topic of a statement without fetching anything",
	Long: `Topic runs only the extraction heuristics and prints the keyphrase they
find. Useful for checking what "learn" would look up for a given statement.`,
	RunE: runTopic,
}

func init() {
	rootCmd.AddCommand(topicCmd)
}

func runTopic(cmd *cobra.Command, args []string) error {
	statement := strings.Join(args, " ")
	if statement == "" {
		return fmt.Errorf("provide a statement, e.g.: wikilearn topic Can you tell me about wild animals")
	}

	phrase, err := topic.Extract(statement)
	if errors.Is(err, topic.ErrNoTopic) {
		return fmt.Errorf("could not determine a topic in %q: try rephrasing the statement", statement)
	}
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), phrase)
	return nil
}
