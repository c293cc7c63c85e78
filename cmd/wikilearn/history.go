// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/wikilearn/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Browse past reports (list, search, export)",
	Long: `History manages the local SQLite store of past learn reports. Use
subcommands to list recent lookups, search them, or export everything.`,
}

// --- list subcommand ---

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent lookups, newest first",
	RunE:  runHistoryList,
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	store, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	max, _ := cmd.Flags().GetInt("max")
	entries, err := store.List(cmd.Context(), max)
	if err != nil {
		return err
	}
	return printEntries(cmd, entries)
}

// --- search subcommand ---

var historySearchCmd = &cobra.Command{
	Use:   "search [query...]",
	Short: "Full-text search over past topics, titles, and summaries",
	RunE:  runHistorySearch,
}

func runHistorySearch(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")
	if query == "" {
		return fmt.Errorf("provide a search query")
	}

	store, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	max, _ := cmd.Flags().GetInt("max")
	entries, err := store.Search(cmd.Context(), query, max)
	if err != nil {
		return err
	}
	return printEntries(cmd, entries)
}

// --- export subcommand ---

var historyExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the full history to a YAML file",
	RunE:  runHistoryExport,
}

func runHistoryExport(cmd *cobra.Command, args []string) error {
	store, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	output, _ := cmd.Flags().GetString("output")
	path, err := store.ExportYAML(cmd.Context(), output)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Exported history to", path)
	return nil
}

func init() {
	historyCmd.PersistentFlags().String("data-dir", "", "history data directory (default \"data\")")

	historyListCmd.Flags().Int("max", 0, "maximum entries to show (default 20)")
	historyListCmd.Flags().Bool("json", false, "output entries as JSON")

	historySearchCmd.Flags().Int("max", 0, "maximum entries to show (default 20)")
	historySearchCmd.Flags().Bool("json", false, "output entries as JSON")

	historyExportCmd.Flags().String("output", "", "export file path (default <data-dir>/export.yaml)")

	historyCmd.AddCommand(historyListCmd, historySearchCmd, historyExportCmd)
	rootCmd.AddCommand(historyCmd)
}

func openStore(cmd *cobra.Command) (*history.Store, error) {
	cfg := pipelineConfig().History
	if v, _ := cmd.Flags().GetString("data-dir"); v != "" {
		cfg.DataDir = v
	}
	return history.NewStore(cfg)
}

func printEntries(cmd *cobra.Command, entries []history.Entry) error {
	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}

	w := cmd.OutOrStdout()
	if len(entries) == 0 {
		fmt.Fprintln(w, "No history entries.")
		return nil
	}
	for _, e := range entries {
		fmt.Fprintf(w, "%-4d  %-25s  %-30s  %s\n",
			e.ID, truncate(e.Topic, 25), truncate(e.Title, 30),
			e.RetrievedAt.Format("2006-01-02 15:04"))
	}
	fmt.Fprintf(w, "\n%d entr%s\n", len(entries), plural(len(entries)))
	return nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}

func plural(n int) string {
	if n == 1 {
		return "y"
	}
	return "ies"
}
