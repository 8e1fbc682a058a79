// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package config assembles the per-run configuration from viper. Settings
// come from the environment or an env-file; every required key is validated
// here, before any network call is made.
package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/pdiddy/arxiv-alerter/pkg/types"
)

// Defaults for optional settings.
const (
	DefaultMaxResults    = 25
	DefaultWindow        = 24 * time.Hour
	DefaultFetchDelay    = 60 * time.Second
	DefaultHTTPTimeout   = 30 * time.Second
	DefaultGeminiModel   = "gemini-2.0-flash"
	DefaultMaxInputChars = 100000
	DefaultUserAgent     = "arxiv-alerter/0.1"
)

// requiredKeys must be present and non-blank for a run to start.
var requiredKeys = []string{
	"SEARCH_KEYWORDS",
	"SEARCH_CATEGORY",
	"SMTP_SERVER",
	"SMTP_PORT",
	"SMTP_USER",
	"SMTP_PASSWORD",
	"MAIL_FROM",
	"MAIL_TO",
	"MAIL_SUBJECT",
}

// Load builds a RunConfig from v. secretValues holds entries from the
// optional secrets directory; it fills SMTP_PASSWORD and GEMINI_API_KEY
// only when the environment left them empty.
func Load(v *viper.Viper, secretValues map[string]string) (types.RunConfig, error) {
	setDefaults(v)

	if strings.TrimSpace(v.GetString("SMTP_PASSWORD")) == "" {
		if s, ok := secretValues["smtp-password"]; ok {
			v.Set("SMTP_PASSWORD", s)
		}
	}
	if strings.TrimSpace(v.GetString("GEMINI_API_KEY")) == "" {
		if s, ok := secretValues["gemini-api-key"]; ok {
			v.Set("GEMINI_API_KEY", s)
		}
	}

	for _, key := range requiredKeys {
		if strings.TrimSpace(v.GetString(key)) == "" {
			return types.RunConfig{}, fmt.Errorf("required setting %s is not set", key)
		}
	}

	port, err := strconv.Atoi(strings.TrimSpace(v.GetString("SMTP_PORT")))
	if err != nil {
		return types.RunConfig{}, fmt.Errorf("SMTP_PORT %q is not a number", v.GetString("SMTP_PORT"))
	}

	http := types.HTTPConfig{
		Timeout:   v.GetDuration("HTTP_TIMEOUT"),
		UserAgent: v.GetString("HTTP_USER_AGENT"),
	}

	cfg := types.RunConfig{
		Search: types.SearchConfig{
			HTTPConfig: http,
			Keywords:   SplitCSV(v.GetString("SEARCH_KEYWORDS")),
			Categories: SplitCSV(v.GetString("SEARCH_CATEGORY")),
			MaxResults: v.GetInt("SEARCH_MAX_RESULTS"),
			Window:     v.GetDuration("SEARCH_WINDOW"),
		},
		Fetch: types.FetchConfig{
			HTTPConfig: http,
			Delay:      v.GetDuration("FETCH_DELAY"),
		},
		Summary: types.SummaryConfig{
			APIKey:        strings.TrimSpace(v.GetString("GEMINI_API_KEY")),
			Model:         v.GetString("GEMINI_MODEL"),
			MaxInputChars: v.GetInt("GEMINI_MAX_INPUT_CHARS"),
			Timeout:       v.GetDuration("HTTP_TIMEOUT"),
		},
		Mail: types.MailConfig{
			Host:     strings.TrimSpace(v.GetString("SMTP_SERVER")),
			Port:     port,
			Username: strings.TrimSpace(v.GetString("SMTP_USER")),
			Password: v.GetString("SMTP_PASSWORD"),
			From:     strings.TrimSpace(v.GetString("MAIL_FROM")),
			To:       SplitCSV(v.GetString("MAIL_TO")),
			Subject:  strings.TrimSpace(v.GetString("MAIL_SUBJECT")),
		},
	}

	if len(cfg.Mail.To) == 0 {
		return types.RunConfig{}, fmt.Errorf("MAIL_TO contains no addresses")
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("SEARCH_MAX_RESULTS", DefaultMaxResults)
	v.SetDefault("SEARCH_WINDOW", DefaultWindow)
	v.SetDefault("FETCH_DELAY", DefaultFetchDelay)
	v.SetDefault("HTTP_TIMEOUT", DefaultHTTPTimeout)
	v.SetDefault("HTTP_USER_AGENT", DefaultUserAgent)
	v.SetDefault("GEMINI_MODEL", DefaultGeminiModel)
	v.SetDefault("GEMINI_MAX_INPUT_CHARS", DefaultMaxInputChars)
}

// SplitCSV converts a comma-separated string into a slice of trimmed,
// non-empty items.
func SplitCSV(s string) []string {
	var items []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
