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


// Package index builds and owns the vector index.
//
// The index is a single immutable Snapshot: every record of the corpus
// embedded under one fingerprint. Rebuilds are all-or-nothing — the
// Builder embeds composed texts in concurrent batches on a bounded
// worker pool, retries transient provider failures with exponential
// backoff, and aborts the whole build on any batch failure, so a
// partial index is never persisted or observable.
//
// The Index swaps snapshot generations with a copy-on-write pointer:
// queries read the current snapshot without holding locks during the
// scan, and a concurrent Refresh replaces the pointer only after the
// new snapshot has been persisted.
//
// Staleness is decided by corpus fingerprint (schema weights + record
// count + per-record content hashes), so any record edit or weight
// change triggers a rebuild on the next Refresh.
package index
