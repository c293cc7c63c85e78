// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the wikilearn CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/wikilearn/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds optional values loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// rootCmd is the base command for the wikilearn CLI.
var rootCmd = &cobra.Command{
	Use:   "wikilearn",
	Short: "A command-line Wikipedia learning assistant",
	Long: `wikilearn turns a free-text statement of what you want to learn about into
a short report. It extracts the topic of your statement with part-of-speech
heuristics, fetches the matching Wikipedia article, and prints the article
summary and URL, the places the article references most, and words from the
article that are similar to your topic.

Each stage is also available as its own subcommand: topic (extraction only),
article (fetch a known title), and history (browse past reports).`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./wikilearn.yaml or ~/.config/wikilearn/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("wikilearn")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "wikilearn"))
		}
	}

	viper.SetEnvPrefix("WIKILEARN")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
