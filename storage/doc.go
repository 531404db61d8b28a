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


// Package storage provides the storage abstraction layer for pulse.
//
// It defines the repository interfaces that decouple persistence from
// business logic, along with the binary serialization used for stored
// records. Public constructors in backend packages return interfaces
// from this package:
//
//	repo, backend, err := badger.NewFeedbackRepository("/path/to/db")
//
// so consumers never couple to a particular backend. Use the in-memory
// variant in tests:
//
//	repo, backend, err := badger.NewMemoryRepository()
//
// All repository implementations must be safe for concurrent use, and
// all methods accept a context.Context for cancellation.
package storage
