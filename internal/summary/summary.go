// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package summary produces a short generated explanation for each paper.
// Summaries are best-effort enrichment: when no API key is configured, or
// the API call fails, the digest carries SkipPlaceholder instead and the
// run continues.
package summary

import (
	"context"
	"net/http"

	"github.com/pdiddy/arxiv-alerter/pkg/types"
)

// SkipPlaceholder is the fixed text used when no explanation was produced.
const SkipPlaceholder = "（Geminiによる解説はスキップされました）"

// Summarizer generates an explanation for one paper. text is the full text
// when retrieval succeeded, the abstract otherwise.
type Summarizer interface {
	Summarize(ctx context.Context, paper types.PaperRecord, text string) (string, error)
}

// Skip is the summarizer used when no API key is configured. It returns
// SkipPlaceholder without any network call.
type Skip struct{}

// Summarize implements Summarizer.
func (Skip) Summarize(context.Context, types.PaperRecord, string) (string, error) {
	return SkipPlaceholder, nil
}

// New selects the summarizer for cfg: the Gemini backend when an API key is
// configured, Skip otherwise.
func New(cfg types.SummaryConfig, client *http.Client) Summarizer {
	if cfg.APIKey == "" {
		return Skip{}
	}
	return &Gemini{
		APIKey:        cfg.APIKey,
		Model:         cfg.Model,
		MaxInputChars: cfg.MaxInputChars,
		Client:        client,
	}
}
