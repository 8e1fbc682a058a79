// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/pdiddy/arxiv-alerter/internal/httputil"
	"github.com/pdiddy/arxiv-alerter/pkg/types"
)

// arxivAPIBase is the arXiv search endpoint. Declared as a var so tests
// can substitute an httptest server.
var arxivAPIBase = "https://export.arxiv.org/api/query"

// arxivHTMLBase is the base URL for the full-text HTML rendering of a paper.
var arxivHTMLBase = "https://arxiv.org/html/"

// Client queries the arXiv export API.
type Client struct {
	HTTP *http.Client
	Cfg  types.SearchConfig

	// Out receives per-entry warnings for malformed feed entries.
	Out io.Writer
}

// Search runs the query and returns candidate records in the order the API
// provides them (submission time, descending). Entries missing a required
// field are skipped with a warning; transport failures and non-200 statuses
// fail the whole run.
func (c *Client) Search(ctx context.Context, query Query) ([]types.PaperRecord, error) {
	params := url.Values{}
	params.Set("search_query", query.Expression())
	params.Set("sortBy", "submittedDate")
	params.Set("sortOrder", "descending")
	params.Set("start", "0")

	maxResults := c.Cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 25
	}
	params.Set("max_results", strconv.Itoa(maxResults))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, arxivAPIBase+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.Cfg.UserAgent)

	resp, err := httputil.DoWithRetry(ctx, c.HTTP, req, 0)
	if err != nil {
		return nil, fmt.Errorf("arXiv API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("arXiv API returned HTTP %d", resp.StatusCode)
	}

	var feed arxivFeed
	if err := xml.NewDecoder(resp.Body).Decode(&feed); err != nil {
		return nil, fmt.Errorf("parsing arXiv response: %w", err)
	}

	out := c.Out
	if out == nil {
		out = io.Discard
	}

	var records []types.PaperRecord
	for _, entry := range feed.Entries {
		record, err := entry.toRecord()
		if err != nil {
			fmt.Fprintf(out, "warning: skipping entry: %v\n", err)
			continue
		}
		records = append(records, record)
	}
	return records, nil
}

// arXiv Atom feed XML structures.
type arxivFeed struct {
	Entries []arxivEntry `xml:"entry"`
}

type arxivEntry struct {
	ID        string        `xml:"id"`
	Title     string        `xml:"title"`
	Summary   string        `xml:"summary"`
	Published string        `xml:"published"`
	Authors   []arxivAuthor `xml:"author"`
}

type arxivAuthor struct {
	Name string `xml:"name"`
}

// toRecord validates the entry and converts it to a PaperRecord. The ID,
// title, abstract, and submission time are all required.
func (e arxivEntry) toRecord() (types.PaperRecord, error) {
	id := extractArxivID(e.ID)
	if id == "" {
		return types.PaperRecord{}, fmt.Errorf("no arXiv ID in entry id %q", e.ID)
	}

	title := collapseWhitespace(e.Title)
	if title == "" {
		return types.PaperRecord{}, fmt.Errorf("entry %s has no title", id)
	}

	abstract := strings.TrimSpace(e.Summary)
	if abstract == "" {
		return types.PaperRecord{}, fmt.Errorf("entry %s has no abstract", id)
	}

	submitted, err := time.Parse(time.RFC3339, e.Published)
	if err != nil {
		return types.PaperRecord{}, fmt.Errorf("entry %s has invalid published time %q", id, e.Published)
	}

	record := types.PaperRecord{
		ID:        id,
		Title:     title,
		Link:      strings.TrimSpace(e.ID),
		HTMLLink:  arxivHTMLBase + id,
		Abstract:  abstract,
		Submitted: submitted.UTC(),
	}

	for _, a := range e.Authors {
		if name := strings.TrimSpace(a.Name); name != "" {
			record.Authors = append(record.Authors, name)
		}
	}

	return record, nil
}

// extractArxivID pulls the arXiv ID from the entry's <id> URL
// (e.g. "http://arxiv.org/abs/2301.07041v1" → "2301.07041v1"). The version
// suffix is kept so the HTML link points at the submitted revision.
func extractArxivID(idURL string) string {
	const prefix = "/abs/"
	idx := strings.Index(idURL, prefix)
	if idx < 0 {
		return ""
	}
	return strings.TrimSpace(idURL[idx+len(prefix):])
}

// collapseWhitespace trims s and replaces runs of whitespace (arXiv titles
// carry feed line breaks) with single spaces.
func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
