// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "arxiv-alerter/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// SearchConfig holds settings for the search stage.
type SearchConfig struct {
	HTTPConfig `yaml:",inline"`

	// Keywords are the search terms, matched against title and abstract.
	// At least one keyword is required.
	Keywords []string `json:"keywords" yaml:"keywords"`

	// Categories restricts results to the given arXiv categories
	// (e.g. "cs.LG"). Empty means all categories.
	Categories []string `json:"categories,omitempty" yaml:"categories,omitempty"`

	// MaxResults is the maximum number of results requested from the API
	// (default 25).
	MaxResults int `json:"max_results" yaml:"max_results"`

	// Window is the trailing submission window; papers older than this at
	// run time are dropped (default 24h).
	Window time.Duration `json:"window" yaml:"window"`
}

// FetchConfig holds settings for per-paper full-text retrieval.
type FetchConfig struct {
	HTTPConfig `yaml:",inline"`

	// Delay is the pause between consecutive papers, as a courtesy to the
	// upstream servers (default 60s). Applied between papers, not before
	// the first.
	Delay time.Duration `json:"delay" yaml:"delay"`
}

// SummaryConfig holds settings for the generated-explanation stage.
type SummaryConfig struct {
	// APIKey is the Gemini API key. When empty the stage is skipped and the
	// digest carries the skip placeholder instead of an explanation.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// Model is the Gemini model identifier (default "gemini-2.0-flash").
	Model string `json:"model" yaml:"model"`

	// MaxInputChars caps the paper text included in the prompt
	// (default 100000).
	MaxInputChars int `json:"max_input_chars" yaml:"max_input_chars"`

	// Timeout is the API request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`
}

// MailConfig holds SMTP connection and message settings.
type MailConfig struct {
	// Host and Port locate the SMTP server. STARTTLS is required.
	Host string `json:"host" yaml:"host"`
	Port int    `json:"port" yaml:"port"`

	// Username and Password authenticate via PLAIN after STARTTLS.
	Username string `json:"username" yaml:"username"`
	Password string `json:"password,omitempty" yaml:"password,omitempty"`

	// From is the envelope and header sender address.
	From string `json:"from" yaml:"from"`

	// To lists the recipient addresses.
	To []string `json:"to" yaml:"to"`

	// Subject is the digest subject line.
	Subject string `json:"subject" yaml:"subject"`
}

// RunConfig groups all stage configurations for one run. It is loaded once
// at process start and read-only afterwards.
type RunConfig struct {
	Search  SearchConfig  `json:"search" yaml:"search"`
	Fetch   FetchConfig   `json:"fetch" yaml:"fetch"`
	Summary SummaryConfig `json:"summary" yaml:"summary"`
	Mail    MailConfig    `json:"mail" yaml:"mail"`
}
