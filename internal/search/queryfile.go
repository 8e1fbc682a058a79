// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"
)

// QueryFile is the on-disk representation of a saved search. When given via
// --query-file it replaces the keywords and categories from the environment,
// so a set of alerts can be version-controlled next to the config.
type QueryFile struct {
	Keywords   []string `yaml:"keywords"`
	Categories []string `yaml:"categories,omitempty"`
}

// ReadQueryFile loads a saved search definition and normalizes it into a
// Query. A missing file, malformed YAML, or an empty keyword list is a
// configuration error.
func ReadQueryFile(path string) (Query, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Query{}, fmt.Errorf("reading query file: %w", err)
	}

	var qf QueryFile
	if err := yaml.Unmarshal(data, &qf); err != nil {
		return Query{}, fmt.Errorf("parsing query file %s: %w", path, err)
	}

	q, err := NewQuery(qf.Keywords, qf.Categories)
	if err != nil {
		return Query{}, fmt.Errorf("query file %s: %w", path, err)
	}
	return q, nil
}
