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


package core

import (
	"fmt"
	"strings"
)

// ValidateSubmission validates the caller-supplied fields of an ingest
// request.
//
// Validation rules:
//   - text must not be empty or whitespace
//   - source must not be empty or whitespace
//
// NOT validated (defaulted during normalization):
//   - region, submitter id, timestamp, urgency override
func ValidateSubmission(text, source string) error {
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidInput, ErrEmptyText)
	}
	if strings.TrimSpace(source) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidInput, ErrEmptySource)
	}
	return nil
}

// ValidateQuery validates a semantic search query.
func ValidateQuery(query string) error {
	if strings.TrimSpace(query) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidInput, ErrEmptyQuery)
	}
	return nil
}
