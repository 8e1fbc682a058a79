// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"time"

	"github.com/pdiddy/arxiv-alerter/pkg/types"
)

// FilterWindow returns the records submitted within window of now, in their
// original order. The boundary is inclusive: a record exactly window old is
// kept (now.Sub(submitted) <= window). Records with a zero submission time
// are dropped; future-dated ones are kept, since clock skew can place a
// just-announced paper slightly ahead of local time.
func FilterWindow(records []types.PaperRecord, now time.Time, window time.Duration) []types.PaperRecord {
	var fresh []types.PaperRecord
	for _, r := range records {
		if r.Submitted.IsZero() || now.Sub(r.Submitted) > window {
			continue
		}
		fresh = append(fresh, r)
	}
	return fresh
}
