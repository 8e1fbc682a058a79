// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline runs one alert cycle end to end: search, window filter,
// per-paper enrichment, digest assembly, delivery. Execution is strictly
// sequential, one paper at a time, to bound load on the upstream services.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/pdiddy/arxiv-alerter/internal/digest"
	"github.com/pdiddy/arxiv-alerter/internal/mail"
	"github.com/pdiddy/arxiv-alerter/internal/search"
	"github.com/pdiddy/arxiv-alerter/internal/summary"
	"github.com/pdiddy/arxiv-alerter/pkg/types"
)

// Searcher returns candidate records for a query. *search.Client is the
// production implementation.
type Searcher interface {
	Search(ctx context.Context, query search.Query) ([]types.PaperRecord, error)
}

// Fetcher retrieves the full text of one paper. *fetch.Client is the
// production implementation.
type Fetcher interface {
	FullText(ctx context.Context, htmlURL string) (string, error)
}

// Result summarizes one run.
type Result struct {
	// Found is the number of records the search returned; Kept is how many
	// survived the window filter.
	Found int
	Kept  int

	// FullText and Fallback split Kept by where the summarization input
	// came from.
	FullText int
	Fallback int

	// Sent reports whether a digest was delivered.
	Sent bool
}

// Pipeline wires the stages of one run. Every external call sits behind an
// interface so tests can substitute doubles.
type Pipeline struct {
	Search    Searcher
	Fetch     Fetcher
	Summarize summary.Summarizer
	Send      mail.Sender

	Cfg   types.RunConfig
	Query search.Query

	// Out receives progress lines. Defaults to io.Discard when nil.
	Out io.Writer

	// Now and Sleep exist for tests; nil means the real clock.
	Now   func() time.Time
	Sleep func(time.Duration)
}

// Run executes one alert cycle. Search and delivery failures are fatal;
// per-paper fetch and summarize failures degrade that paper and continue.
// An empty window is success: no digest is sent.
func (p *Pipeline) Run(ctx context.Context) (Result, error) {
	out := p.Out
	if out == nil {
		out = io.Discard
	}
	now := p.Now
	if now == nil {
		now = time.Now
	}
	sleep := p.Sleep
	if sleep == nil {
		sleep = time.Sleep
	}

	fmt.Fprintf(out, "searching arXiv for %s\n", p.Query.Expression())
	records, err := p.Search.Search(ctx, p.Query)
	if err != nil {
		return Result{}, fmt.Errorf("searching arXiv: %w", err)
	}

	fresh := search.FilterWindow(records, now(), p.Cfg.Search.Window)
	result := Result{Found: len(records), Kept: len(fresh)}
	fmt.Fprintf(out, "%d results, %d within the last %v\n", result.Found, result.Kept, p.Cfg.Search.Window)

	if len(fresh) == 0 {
		fmt.Fprintln(out, "no papers to process")
		return result, nil
	}

	papers := make([]types.EnrichedPaper, 0, len(fresh))
	for i, rec := range fresh {
		if i > 0 && p.Cfg.Fetch.Delay > 0 {
			sleep(p.Cfg.Fetch.Delay)
		}
		fmt.Fprintf(out, "[%d/%d] %s\n", i+1, len(fresh), rec.Title)
		papers = append(papers, p.enrich(ctx, rec, out, &result))
	}

	body, err := digest.Build(p.Cfg.Search.Keywords, papers)
	if err != nil {
		return result, err
	}

	msg := mail.Message{
		From:    p.Cfg.Mail.From,
		To:      p.Cfg.Mail.To,
		Subject: p.Cfg.Mail.Subject,
		Body:    body,
	}
	if err := p.Send.Send(msg); err != nil {
		return result, fmt.Errorf("sending digest: %w", err)
	}
	result.Sent = true

	fmt.Fprintf(out, "digest sent: %d papers (%d full text, %d abstract only)\n",
		result.Kept, result.FullText, result.Fallback)
	return result, nil
}

// enrich runs fetch and summarize for one record. Both stages degrade on
// failure rather than aborting: the abstract stands in for the full text,
// and the skip placeholder stands in for the explanation.
func (p *Pipeline) enrich(ctx context.Context, rec types.PaperRecord, out io.Writer, result *Result) types.EnrichedPaper {
	paper := types.EnrichedPaper{PaperRecord: rec}

	text, err := p.Fetch.FullText(ctx, rec.HTMLLink)
	if err != nil || text == "" {
		if err != nil {
			fmt.Fprintf(out, "  warning: full text unavailable, using abstract: %v\n", err)
		}
		paper.Text = rec.Abstract
		result.Fallback++
	} else {
		paper.Text = text
		paper.UsedFullText = true
		result.FullText++
	}

	sum, err := p.Summarize.Summarize(ctx, rec, paper.Text)
	if err != nil || sum == "" {
		if err != nil {
			fmt.Fprintf(out, "  warning: explanation failed, using placeholder: %v\n", err)
		}
		sum = summary.SkipPlaceholder
	}
	paper.Summary = sum

	return paper
}
