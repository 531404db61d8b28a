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


// Package vector defines the semantic index abstraction for pulse.
//
// The index holds embedding vectors keyed by feedback record id, along
// with a small metadata payload for inspection. The authoritative record
// content always lives in the feedback repository; the index only ranks.
package vector

import "context"

// metadataTextRunes caps the text excerpt stored alongside a vector.
const metadataTextRunes = 100

// Metadata is the payload stored with each indexed vector.
type Metadata struct {
	Text            string `json:"text"`
	Source          string `json:"source"`
	ProductCategory string `json:"product_category"`
	Urgency         string `json:"urgency_level"`
}

// Entry is a vector plus its identity and metadata.
type Entry struct {
	ID       string
	Vector   []float32
	Metadata Metadata
}

// Match is a scored index hit. Score is cosine similarity, higher is better.
type Match struct {
	ID    string
	Score float64
}

// Index ranks stored vectors by similarity to a query vector.
// Implementations must be safe for concurrent use.
type Index interface {
	// Upsert inserts or replaces the entry for entry.ID.
	Upsert(ctx context.Context, entry Entry) error

	// Query returns up to topK matches ordered by score descending.
	// An empty index yields an empty slice, not an error.
	Query(ctx context.Context, vector []float32, topK int) ([]Match, error)
}

// TruncateText trims an excerpt to the metadata size cap.
func TruncateText(text string) string {
	runes := []rune(text)
	if len(runes) <= metadataTextRunes {
		return text
	}
	return string(runes[:metadataTextRunes])
}
