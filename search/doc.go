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


// Package search provides semantic search over stored feedback.
//
// The Searcher embeds the query text, asks the vector index for the
// nearest neighbors, and hydrates the matches from the feedback
// repository. Index entries whose record has disappeared from the store
// are dropped silently; the repository remains the source of truth for
// record content.
package search
