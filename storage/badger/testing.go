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


package badger

import "github.com/vendisearch/vendisearch/storage"

// NewMemoryStores creates an in-memory record repository and snapshot
// store for testing. Returns records, snapshots, backend, and error.
// Caller must close the repository and backend when done.
func NewMemoryStores() (storage.RecordRepository, storage.SnapshotStore, *Backend, error) {
	backend, err := OpenBackend("", true)
	if err != nil {
		return nil, nil, nil, err
	}

	records, err := NewRecordRepository(backend)
	if err != nil {
		backend.Close()
		return nil, nil, nil, err
	}

	snapshots := NewSnapshotStore(backend)

	return records, snapshots, backend, nil
}
