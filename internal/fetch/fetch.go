// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package fetch retrieves the full text of a paper from its arXiv HTML
// rendering. Retrieval is best-effort: on any failure the caller falls back
// to the abstract and the run continues.
package fetch

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/microcosm-cc/bluemonday"

	"github.com/pdiddy/arxiv-alerter/internal/httputil"
	"github.com/pdiddy/arxiv-alerter/pkg/types"
)

// Client fetches paper pages over HTTP.
type Client struct {
	HTTP *http.Client
	Cfg  types.FetchConfig
}

// FullText downloads the HTML rendering at htmlURL and extracts its plain
// text. Not every paper has an HTML rendering; older submissions return 404.
func (c *Client) FullText(ctx context.Context, htmlURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, htmlURL, nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.Cfg.UserAgent)

	resp, err := httputil.DoWithRetry(ctx, c.HTTP, req, 0)
	if err != nil {
		return "", fmt.Errorf("fetching %s: %w", htmlURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("HTTP %d from %s", resp.StatusCode, htmlURL)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", htmlURL, err)
	}

	text, err := ExtractText(body)
	if err != nil {
		return "", fmt.Errorf("extracting text from %s: %w", htmlURL, err)
	}
	return text, nil
}

// ExtractText converts an arXiv HTML page into plain text. It prefers the
// LaTeXML content container (div.ltx_page_content) with chrome elements
// removed, then the document body, and finally a strict tag strip of the
// raw input. An empty extraction is an error so the caller can fall back
// to the abstract.
func ExtractText(html []byte) (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return stripTags(html)
	}

	content := doc.Find("div.ltx_page_content")
	if content.Length() > 0 {
		content.Find("header, footer, nav").Remove()
		if text := collapseWhitespace(content.Text()); text != "" {
			return text, nil
		}
	}

	if text := collapseWhitespace(doc.Find("body").Text()); text != "" {
		return text, nil
	}

	return stripTags(html)
}

// stripTags is the last-resort extraction: drop every tag and keep the text.
func stripTags(html []byte) (string, error) {
	text := collapseWhitespace(bluemonday.StrictPolicy().Sanitize(string(html)))
	if text == "" {
		return "", fmt.Errorf("page contains no text")
	}
	return text, nil
}

// collapseWhitespace trims and replaces whitespace runs with single spaces.
func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
