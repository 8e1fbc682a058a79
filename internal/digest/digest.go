// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package digest renders the notification email body: a header with the
// match count, per-keyword hit counts, a title index, and one block per
// paper in filter order.
package digest

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/pdiddy/arxiv-alerter/pkg/types"
)

// submittedFmt matches the timestamp format readers saw in earlier digests.
const submittedFmt = "2006-01-02 15:04:05 UTC"

var tmplFuncs = template.FuncMap{
	"join": strings.Join,
	"add1": func(i int) int { return i + 1 },
	"submitted": func(p types.EnrichedPaper) string {
		return p.Submitted.UTC().Format(submittedFmt)
	},
}

// bodyTmpl renders the whole digest. The digest is sent as plain text, so
// this is text/template rather than html/template.
var bodyTmpl = template.Must(template.New("digest").Funcs(tmplFuncs).Parse(`キーワード「{{join .Keywords "、"}}」に関する新しい論文が {{len .Papers}}件 見つかりました。

【キーワード別対象件数】
{{- range .Counts}}
- {{.Keyword}}: {{.Count}}件
{{- end}}

【対象論文タイトル一覧】
{{- range $i, $p := .Papers}}
{{add1 $i}}. {{$p.Title}}
{{- end}}

{{range $i, $p := .Papers}}==================================================
論文 {{add1 $i}}: {{$p.Title}}
==================================================

著者: {{join $p.Authors "、"}}
投稿日: {{submitted $p}}
リンク: {{$p.Link}}

--- Geminiによる解説 ---
{{$p.Summary}}
--------------------------

--- Original Abstract ---
{{$p.Abstract}}
--------------------------

{{end}}`))

// KeywordCount is one row of the per-keyword hit-count section.
type KeywordCount struct {
	Keyword string
	Count   int
}

// Build renders the digest body for the given papers, in order. Keywords
// drive the header and the hit-count section.
func Build(keywords []string, papers []types.EnrichedPaper) (string, error) {
	data := struct {
		Keywords []string
		Counts   []KeywordCount
		Papers   []types.EnrichedPaper
	}{
		Keywords: keywords,
		Counts:   CountKeywords(keywords, papers),
		Papers:   papers,
	}

	var buf bytes.Buffer
	if err := bodyTmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("rendering digest: %w", err)
	}
	return buf.String(), nil
}

// CountKeywords counts, for each keyword, the papers whose title or
// abstract contains it (case-insensitive).
func CountKeywords(keywords []string, papers []types.EnrichedPaper) []KeywordCount {
	texts := make([]string, len(papers))
	for i, p := range papers {
		texts[i] = strings.ToLower(p.Title + "\n" + p.Abstract)
	}

	counts := make([]KeywordCount, 0, len(keywords))
	for _, kw := range keywords {
		needle := strings.ToLower(kw)
		n := 0
		for _, text := range texts {
			if strings.Contains(text, needle) {
				n++
			}
		}
		counts = append(counts, KeywordCount{Keyword: kw, Count: n})
	}
	return counts
}
