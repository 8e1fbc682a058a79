// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/arxiv-alerter/internal/config"
	"github.com/pdiddy/arxiv-alerter/internal/fetch"
	"github.com/pdiddy/arxiv-alerter/internal/mail"
	"github.com/pdiddy/arxiv-alerter/internal/pipeline"
	"github.com/pdiddy/arxiv-alerter/internal/search"
	"github.com/pdiddy/arxiv-alerter/internal/secrets"
	"github.com/pdiddy/arxiv-alerter/internal/summary"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Search, summarize, and email the digest",
	Long: `Run executes one alert cycle: query arXiv for papers matching the
configured keywords and categories, keep those submitted within the window,
fetch full text where available, generate explanations, and send one email.

Finding no new papers is a successful run; the digest is simply not sent.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPipeline(cmd, false)
	},
}

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Render the digest to stdout without sending email",
	Long: `Preview runs the same cycle as run but prints the rendered digest
instead of connecting to the SMTP server. Useful for checking keywords and
templates before scheduling.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPipeline(cmd, true)
	},
}

func init() {
	for _, cmd := range []*cobra.Command{runCmd, previewCmd} {
		cmd.Flags().String("query-file", "", "YAML file with keywords/categories, overriding the environment")
		rootCmd.AddCommand(cmd)
	}
}

func runPipeline(cmd *cobra.Command, preview bool) error {
	secretsDir, _ := cmd.Flags().GetString("secrets-dir")
	secretValues, err := secrets.Load(secretsDir, os.Stderr)
	if err != nil {
		return err
	}

	cfg, err := config.Load(viper.GetViper(), secretValues)
	if err != nil {
		return err
	}

	queryFile, _ := cmd.Flags().GetString("query-file")
	var query search.Query
	if queryFile != "" {
		query, err = search.ReadQueryFile(queryFile)
	} else {
		query, err = search.NewQuery(cfg.Search.Keywords, cfg.Search.Categories)
	}
	if err != nil {
		return err
	}
	// The digest header and hit counts follow whatever the query ended up
	// being, query file included.
	cfg.Search.Keywords = query.Keywords
	cfg.Search.Categories = query.Categories

	if cfg.Summary.APIKey == "" {
		fmt.Fprintln(os.Stderr, "warning: GEMINI_API_KEY is not set; explanations will be skipped")
	}

	var sender mail.Sender = &mail.SMTPSender{Cfg: cfg.Mail}
	if preview {
		sender = printSender{out: cmd.OutOrStdout()}
	}

	p := &pipeline.Pipeline{
		Search: &search.Client{
			HTTP: &http.Client{Timeout: cfg.Search.Timeout},
			Cfg:  cfg.Search,
			Out:  os.Stderr,
		},
		Fetch: &fetch.Client{
			HTTP: &http.Client{Timeout: cfg.Fetch.Timeout},
			Cfg:  cfg.Fetch,
		},
		Summarize: summary.New(cfg.Summary, &http.Client{Timeout: cfg.Summary.Timeout}),
		Send:      sender,
		Cfg:       cfg,
		Query:     query,
		Out:       os.Stderr,
	}

	_, err = p.Run(cmd.Context())
	return err
}

// printSender writes the rendered digest to out instead of dialing SMTP.
type printSender struct {
	out io.Writer
}

func (s printSender) Send(msg mail.Message) error {
	fmt.Fprintf(s.out, "Subject: %s\n\n%s\n", msg.Subject, msg.Body)
	return nil
}
