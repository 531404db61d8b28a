// Copyright 2026 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package analytics

import (
	"strings"
	"time"

	"github.com/poiesic/pulse/core"
)

// Timeline selects the lookback window for the dashboard view.
const (
	TimelineToday = "today"
	Timeline7d    = "7d"
	Timeline30d   = "30d"
	TimelineAll   = "all"
)

// Filters narrows the record snapshot before aggregation. Zero values
// mean "no constraint"; Timeline defaults to TimelineAll.
type Filters struct {
	Query           string
	Source          string
	FeedbackKind    string
	Urgency         string
	AudienceType    string
	ProductCategory string
	Region          string
	Timeline        string
}

// lookbackDays maps a timeline to its cutoff in days. The bool result is
// false for TimelineAll, which has no cutoff.
func lookbackDays(timeline string) (int, bool) {
	switch timeline {
	case TimelineToday:
		return 0, true
	case Timeline7d:
		return 7, true
	case Timeline30d:
		return 30, true
	default:
		return 0, false
	}
}

// Filter returns the records matching every set filter field. The result
// preserves input order. Filtering is idempotent: applying the same
// filters twice yields the same set.
func Filter(records []*core.FeedbackRecord, f Filters, now time.Time) []*core.FeedbackRecord {
	query := strings.ToLower(strings.TrimSpace(f.Query))

	var cutoff time.Time
	days, bounded := lookbackDays(f.Timeline)
	if bounded {
		cutoff = now.Add(-time.Duration(days) * 24 * time.Hour)
	}

	out := make([]*core.FeedbackRecord, 0, len(records))
	for _, rec := range records {
		if bounded && rec.ReceivedAt.Before(cutoff) {
			continue
		}
		if f.Source != "" && rec.Source != f.Source {
			continue
		}
		if f.FeedbackKind != "" && rec.FeedbackKind != f.FeedbackKind {
			continue
		}
		if f.Urgency != "" && rec.Urgency != f.Urgency {
			continue
		}
		if f.AudienceType != "" && rec.AudienceType != f.AudienceType {
			continue
		}
		if f.ProductCategory != "" && rec.ProductCategory != f.ProductCategory {
			continue
		}
		if f.Region != "" && rec.Region != f.Region {
			continue
		}
		if query != "" && !matchesQuery(rec, query) {
			continue
		}
		out = append(out, rec)
	}
	return out
}

// matchesQuery does a case-insensitive substring match over the original
// text, the summary, and the submitter id.
func matchesQuery(rec *core.FeedbackRecord, loweredQuery string) bool {
	return strings.Contains(strings.ToLower(rec.OriginalText), loweredQuery) ||
		strings.Contains(strings.ToLower(rec.Summary), loweredQuery) ||
		strings.Contains(strings.ToLower(rec.SubmitterID), loweredQuery)
}
