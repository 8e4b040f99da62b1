// Copyright 2025 Vendisearch Labs
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


// Package storage provides the persistence abstraction layer.
//
// This package defines the contracts that decouple storage
// implementation from the index and search logic:
//
//   - RecordSource: read-only access to the record corpus
//   - RecordRepository: writable record store
//   - SnapshotStore: whole-snapshot persistence for the vector index
//
// # Constructor Return Type Pattern
//
// Public constructors in implementation packages return these
// interfaces to enforce abstraction:
//
//	repo, err := badger.NewRecordRepository(backend) // returns storage.RecordRepository
//
// This keeps consumers decoupled from BadgerDB specifics and lets tests
// substitute in-memory implementations without modification.
//
// # Implementations
//
//   - storage/badger: BadgerDB-backed repository and snapshot store,
//     with in-memory mode for tests
//   - storage/csvsource: read-only RecordSource over a CSV file
//
// # Snapshot Atomicity
//
// SnapshotStore.Save writes the complete snapshot in one transaction.
// A crash mid-save leaves the previous snapshot intact; a snapshot that
// exists but fails to decode is surfaced as ErrCorruptSnapshot and
// treated by callers as absent.
//
// # Thread Safety
//
// All implementations must be thread-safe and support concurrent
// access from multiple goroutines.
package storage
