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

import "errors"

var (
	// ErrInvalidInput indicates a caller-supplied value failed validation.
	// Surfaced to HTTP clients as a 400.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUpstreamFailure indicates an AI collaborator was unreachable or
	// returned an error on the critical path.
	ErrUpstreamFailure = errors.New("upstream service failure")

	// ErrEmptyText indicates the feedback text is missing or empty.
	ErrEmptyText = errors.New("text is required")

	// ErrEmptySource indicates the feedback source is missing or empty.
	ErrEmptySource = errors.New("source is required")

	// ErrEmptyQuery indicates a search query is missing or empty.
	ErrEmptyQuery = errors.New("query is required")
)
