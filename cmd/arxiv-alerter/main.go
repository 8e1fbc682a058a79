// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the arxiv-alerter CLI, a batch job
// that emails a digest of new arXiv papers matching configured keywords.
// It is designed to be invoked once per run by a scheduler.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the arxiv-alerter CLI.
var rootCmd = &cobra.Command{
	Use:   "arxiv-alerter",
	Short: "Email digests of new arXiv papers matching your keywords",
	Long: `arxiv-alerter searches arXiv for papers submitted in the last day that match
configured keywords and categories, optionally generates an explanation for
each via the Gemini API, and emails the result as a single digest.

Settings come from environment variables or an env-file (see --config);
SMTP_PASSWORD and GEMINI_API_KEY may instead live in a secrets directory.

Invoked without a subcommand it runs one alert cycle, so a scheduler entry
needs no arguments.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPipeline(cmd, false)
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "env-file to load (default: ./config.env if present)")
	rootCmd.PersistentFlags().String("secrets-dir", ".secrets", "directory of secret files (smtp-password, gemini-api-key)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile == "" {
		cfgFile = "config.env"
	}
	viper.SetConfigFile(cfgFile)
	viper.SetConfigType("env")
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
