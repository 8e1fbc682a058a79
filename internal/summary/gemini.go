// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package summary

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"text/template"

	"github.com/pdiddy/arxiv-alerter/pkg/types"
)

// summaryPromptTmpl is the prompt sent to the Gemini API for each paper. It
// asks for a structured explanation in Japanese, grounded in the supplied
// text rather than the model's own knowledge.
var summaryPromptTmpl = template.Must(template.New("summary").Parse(`以下のarXiv論文について、同分野の研究者が短時間で要点を把握できるように解説してください。

# 論文情報
- **タイトル:** {{.Title}}
- **著者:** {{.Authors}}

# 論文本文（またはアブストラクト）
{{.Text}}

# 出力フォーマット（必ずこの順番・見出しで出力）
## 背景・課題
- ...

## 手法
- ...

## 主結果
- ...

## 新規性（先行研究との差分）
- ...

## 限界・今後の課題
- ...

要件:
- 各セクションは2〜4個の箇条書きで簡潔に書くこと。
- 数式の厳密な導出は省略してよいが、専門用語は適切に用いること。
- 推測ではなく、与えられた本文（またはアブストラクト）に根拠がある内容を優先すること。
- 日本語で出力すること。
`))

// geminiAPIBase is the Gemini generateContent endpoint base. Package-level
// var for test substitution.
var geminiAPIBase = "https://generativelanguage.googleapis.com/v1beta/models"

// Gemini calls the generative-language API once per paper.
type Gemini struct {
	APIKey        string
	Model         string
	MaxInputChars int
	Client        *http.Client
}

// Gemini generateContent request and response structures.
type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiResponse struct {
	Candidates []geminiCandidate `json:"candidates"`
}

type geminiCandidate struct {
	Content geminiContent `json:"content"`
}

// Summarize renders the prompt and calls the generateContent endpoint. Any
// transport error, non-200 status, or empty response is returned as an
// error; the caller downgrades it to SkipPlaceholder.
func (g *Gemini) Summarize(ctx context.Context, paper types.PaperRecord, text string) (string, error) {
	prompt, err := renderPrompt(paper, truncateRunes(text, g.MaxInputChars))
	if err != nil {
		return "", fmt.Errorf("rendering prompt: %w", err)
	}

	reqBody := geminiRequest{
		Contents: []geminiContent{
			{Parts: []geminiPart{{Text: prompt}}},
		},
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	url := fmt.Sprintf("%s/%s:generateContent", geminiAPIBase, g.Model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", g.APIKey)

	client := g.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling Gemini API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("Gemini API returned %d: %s", resp.StatusCode, string(body))
	}

	var gResp geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&gResp); err != nil {
		return "", fmt.Errorf("decoding Gemini response: %w", err)
	}

	for _, cand := range gResp.Candidates {
		var parts []string
		for _, part := range cand.Content.Parts {
			if part.Text != "" {
				parts = append(parts, part.Text)
			}
		}
		if len(parts) > 0 {
			return strings.TrimSpace(strings.Join(parts, "")), nil
		}
	}

	return "", fmt.Errorf("Gemini API returned empty content")
}

// renderPrompt executes the summary prompt template for one paper.
func renderPrompt(paper types.PaperRecord, text string) (string, error) {
	var buf bytes.Buffer
	data := struct {
		Title   string
		Authors string
		Text    string
	}{
		Title:   paper.Title,
		Authors: strings.Join(paper.Authors, ", "),
		Text:    text,
	}
	if err := summaryPromptTmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// truncateRunes caps s at max runes. Counting runes rather than bytes keeps
// multi-byte text from being cut mid-character.
func truncateRunes(s string, max int) string {
	if max <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
