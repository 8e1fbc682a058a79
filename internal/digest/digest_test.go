// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package digest

import (
	"strings"
	"testing"
	"time"

	"github.com/pdiddy/arxiv-alerter/pkg/types"
)

func testPapers() []types.EnrichedPaper {
	return []types.EnrichedPaper{
		{
			PaperRecord: types.PaperRecord{
				ID:        "2608.01234v1",
				Title:     "Sparse Attention for Long Documents",
				Authors:   []string{"Alice Chen", "Bob Park"},
				Link:      "https://arxiv.org/abs/2608.01234v1",
				Abstract:  "We study sparse attention patterns.",
				Submitted: time.Date(2026, 8, 23, 18, 30, 0, 0, time.UTC),
			},
			Text:         "full text",
			UsedFullText: true,
			Summary:      "## 背景・課題\n- 注意機構の計算量。",
		},
		{
			PaperRecord: types.PaperRecord{
				ID:        "2608.05678v1",
				Title:     "Diffusion Models Revisited",
				Authors:   []string{"Carol Diaz"},
				Link:      "https://arxiv.org/abs/2608.05678v1",
				Abstract:  "A second look at diffusion.",
				Submitted: time.Date(2026, 8, 23, 9, 0, 0, 0, time.UTC),
			},
			Text:    "A second look at diffusion.",
			Summary: "（Geminiによる解説はスキップされました）",
		},
	}
}

func TestBuild(t *testing.T) {
	body, err := Build([]string{"attention", "diffusion"}, testPapers())
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	if !strings.Contains(body, "2件 見つかりました") {
		t.Errorf("body missing match count header:\n%s", body)
	}

	// One block per paper, in filter order.
	if got := strings.Count(body, "=================================================="); got != 4 {
		t.Errorf("delimiter count = %d, want 4 (two per paper)", got)
	}
	first := strings.Index(body, "論文 1: Sparse Attention for Long Documents")
	second := strings.Index(body, "論文 2: Diffusion Models Revisited")
	if first < 0 || second < 0 || second < first {
		t.Errorf("paper blocks missing or out of order (first=%d, second=%d)", first, second)
	}

	for _, want := range []string{
		"著者: Alice Chen、Bob Park",
		"投稿日: 2026-08-23 18:30:00 UTC",
		"リンク: https://arxiv.org/abs/2608.01234v1",
		"--- Geminiによる解説 ---",
		"--- Original Abstract ---",
		"We study sparse attention patterns.",
		"（Geminiによる解説はスキップされました）",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("body missing %q", want)
		}
	}

	// Title index lists every paper before the blocks.
	if !strings.Contains(body, "1. Sparse Attention for Long Documents") {
		t.Errorf("body missing title index entry:\n%s", body)
	}
}

func TestBuildKeywordCounts(t *testing.T) {
	body, err := Build([]string{"attention", "diffusion", "quantum"}, testPapers())
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	for _, want := range []string{
		"- attention: 1件",
		"- diffusion: 1件",
		"- quantum: 0件",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("body missing keyword count %q", want)
		}
	}
}

func TestCountKeywords(t *testing.T) {
	papers := testPapers()

	tests := []struct {
		keyword string
		want    int
	}{
		{"attention", 1},
		{"ATTENTION", 1}, // case-insensitive
		{"diffusion", 1},
		{"a", 2}, // substring match across both
		{"quantum", 0},
	}
	for _, tt := range tests {
		counts := CountKeywords([]string{tt.keyword}, papers)
		if len(counts) != 1 {
			t.Fatalf("CountKeywords returned %d rows", len(counts))
		}
		if counts[0].Count != tt.want {
			t.Errorf("CountKeywords(%q) = %d, want %d", tt.keyword, counts[0].Count, tt.want)
		}
	}
}

func TestBuildNoPapers(t *testing.T) {
	// The pipeline never sends an empty digest, but Build must not choke.
	body, err := Build([]string{"attention"}, nil)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if !strings.Contains(body, "0件") {
		t.Errorf("body = %q", body)
	}
}
