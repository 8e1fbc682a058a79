// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// PaperRecord holds the metadata for one arXiv search result. Records are
// produced by the search client and read-only downstream.
type PaperRecord struct {
	// ID is the arXiv identifier including any version suffix (e.g. "2301.07041v2").
	ID string `json:"id" yaml:"id"`

	// Title is the paper title with whitespace collapsed.
	Title string `json:"title" yaml:"title"`

	// Authors lists the paper authors in source order.
	Authors []string `json:"authors" yaml:"authors"`

	// Link is the abstract page URL (https://arxiv.org/abs/<id>).
	Link string `json:"link" yaml:"link"`

	// HTMLLink is the full-text HTML rendering URL (https://arxiv.org/html/<id>).
	HTMLLink string `json:"html_link" yaml:"html_link"`

	// Abstract is the paper abstract as returned by the search API.
	Abstract string `json:"abstract" yaml:"abstract"`

	// Submitted is the submission timestamp (UTC).
	Submitted time.Time `json:"submitted" yaml:"submitted"`
}

// EnrichedPaper is a PaperRecord plus the text and summary gathered during
// a run. It exists only for the lifetime of one digest; nothing persists it.
type EnrichedPaper struct {
	PaperRecord

	// Text is the full text when retrieval succeeded, the abstract otherwise.
	// Never empty once the fetcher has run.
	Text string `json:"text" yaml:"text"`

	// UsedFullText reports whether Text came from the HTML rendering.
	UsedFullText bool `json:"used_full_text" yaml:"used_full_text"`

	// Summary is the generated explanation, or the skip placeholder when no
	// explanation was produced. Never empty once the summarizer has run.
	Summary string `json:"summary" yaml:"summary"`
}
