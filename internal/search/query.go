// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package search builds arXiv queries, runs them against the export API,
// and narrows the results to the trailing submission window.
package search

import (
	"fmt"
	"sort"
	"strings"
)

// AllCategories is the sentinel meaning "do not restrict by category".
const AllCategories = "all"

// Query is a normalized search expression: OR across keywords, OR across
// categories, intersected. Immutable once built.
type Query struct {
	Keywords   []string
	Categories []string // empty means all categories
}

// NewQuery normalizes keywords and categories into a Query. Both sets are
// deduplicated and sorted, so the same terms in any order produce the same
// Query. The AllCategories sentinel (case-insensitive, in any position)
// clears the category restriction. An empty keyword set is a configuration
// error: an unconstrained search is not the intended use.
func NewQuery(keywords, categories []string) (Query, error) {
	kws := normalizeTerms(keywords)
	if len(kws) == 0 {
		return Query{}, fmt.Errorf("no search keywords configured: set SEARCH_KEYWORDS to a comma-separated list")
	}

	cats := normalizeTerms(categories)
	for _, c := range cats {
		if strings.EqualFold(c, AllCategories) {
			cats = nil
			break
		}
	}

	return Query{Keywords: kws, Categories: cats}, nil
}

// Expression renders the arXiv search_query parameter. Each keyword matches
// title or abstract; categories, when present, intersect the keyword match.
func (q Query) Expression() string {
	terms := make([]string, 0, len(q.Keywords))
	for _, kw := range q.Keywords {
		terms = append(terms, fmt.Sprintf("(ti:%q OR abs:%q)", kw, kw))
	}
	expr := "(" + strings.Join(terms, " OR ") + ")"

	if len(q.Categories) > 0 {
		cats := make([]string, 0, len(q.Categories))
		for _, c := range q.Categories {
			cats = append(cats, "cat:"+c)
		}
		expr += " AND (" + strings.Join(cats, " OR ") + ")"
	}

	return expr
}

// normalizeTerms trims, drops empties, deduplicates, and sorts.
func normalizeTerms(terms []string) []string {
	seen := make(map[string]bool, len(terms))
	var out []string
	for _, t := range terms {
		t = strings.TrimSpace(t)
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}
