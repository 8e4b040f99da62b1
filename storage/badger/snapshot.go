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

import (
	"context"
	"fmt"

	"github.com/dgraph-io/badger/v4"

	"github.com/vendisearch/vendisearch/core"
	"github.com/vendisearch/vendisearch/storage"
)

// SnapshotStore implements storage.SnapshotStore for BadgerDB.
// The whole snapshot lives under a single key and is replaced in one
// transaction, so a reader can never observe a partial index.
type SnapshotStore struct {
	backend *Backend
}

var _ storage.SnapshotStore = (*SnapshotStore)(nil)

// NewSnapshotStore creates a new SnapshotStore.
//
// Returns storage.SnapshotStore interface to enforce abstraction.
func NewSnapshotStore(backend *Backend) storage.SnapshotStore {
	return &SnapshotStore{backend: backend}
}

// Load retrieves the persisted snapshot.
// Returns (nil, nil) if no snapshot exists. A blob that exists but
// fails to decode is reported as ErrCorruptSnapshot.
func (s *SnapshotStore) Load(ctx context.Context) (*core.Snapshot, error) {
	var snap *core.Snapshot
	err := s.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeSnapshotKey())
		if err != nil {
			if err == badger.ErrKeyNotFound {
				return nil
			}
			return err
		}

		return item.Value(func(val []byte) error {
			var unmarshalErr error
			snap, unmarshalErr = storage.UnmarshalSnapshot(val)
			if unmarshalErr != nil {
				return fmt.Errorf("%w: %w", storage.ErrCorruptSnapshot, unmarshalErr)
			}
			return nil
		})
	}, false)
	if err != nil {
		return nil, err
	}
	return snap, nil
}

// Save atomically replaces the persisted snapshot.
func (s *SnapshotStore) Save(ctx context.Context, snap *core.Snapshot) error {
	return s.backend.WithTx(func(tx *badger.Txn) error {
		if err := tx.Set(makeSnapshotKey(), storage.MarshalSnapshot(snap)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// Delete removes the persisted snapshot, if any.
func (s *SnapshotStore) Delete(ctx context.Context) error {
	return s.backend.WithTx(func(tx *badger.Txn) error {
		if err := tx.Delete(makeSnapshotKey()); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// Close is a no-op; the snapshot store holds no resources beyond the
// shared backend, which the owner closes.
func (s *SnapshotStore) Close() error {
	return nil
}
