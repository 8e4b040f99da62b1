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


package index

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/vendisearch/vendisearch/core"
	"github.com/vendisearch/vendisearch/storage"
)

// Index owns the current snapshot. Reads take the snapshot pointer
// under a read lock and then work lock-free on the immutable snapshot;
// a refresh builds the replacement off to the side and swaps the
// pointer, so in-flight queries finish against the generation they
// started with.
type Index struct {
	mu      sync.RWMutex
	current *core.Snapshot
	loaded  bool

	store   storage.SnapshotStore
	builder *Builder
	source  storage.RecordSource
	schema  *core.Schema
	logger  *slog.Logger
}

// New creates an Index. Nothing is loaded until Load, Ensure or
// Refresh is called.
func New(store storage.SnapshotStore, builder *Builder, source storage.RecordSource, schema *core.Schema) (*Index, error) {
	if store == nil {
		return nil, ErrStoreRequired
	}
	if builder == nil {
		return nil, fmt.Errorf("index: builder is required")
	}
	if source == nil {
		return nil, ErrSourceRequired
	}
	if err := core.ValidateSchema(schema); err != nil {
		return nil, err
	}
	return &Index{
		store:   store,
		builder: builder,
		source:  source,
		schema:  schema,
		logger:  slog.Default().With("component", "index"),
	}, nil
}

// Snapshot returns the current snapshot, or nil when none is loaded.
// The returned snapshot is immutable and safe to read without locking.
func (ix *Index) Snapshot() *core.Snapshot {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return ix.current
}

// Load installs the persisted snapshot, if one exists and decodes
// cleanly. A corrupt or invalid snapshot is logged and treated as
// absent, never returned as an error: the caller rebuilds instead.
func (ix *Index) Load(ctx context.Context) error {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	if ix.loaded {
		return nil
	}

	snap, err := ix.store.Load(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrCorruptSnapshot) {
			ix.logger.Warn("persisted snapshot is corrupt, will rebuild", "err", err)
			ix.loaded = true
			return nil
		}
		return fmt.Errorf("loading snapshot: %w", err)
	}
	if snap != nil {
		if err := snap.Validate(); err != nil {
			ix.logger.Warn("persisted snapshot is invalid, will rebuild", "err", err)
			snap = nil
		}
	}

	ix.current = snap
	ix.loaded = true
	if snap != nil {
		ix.logger.Info("snapshot loaded", "records", len(snap.Entries), "builtAt", snap.BuiltAt)
	}
	return nil
}

// Stale reports whether the current snapshot's fingerprint differs from
// the live corpus. An absent snapshot is stale.
func (ix *Index) Stale(ctx context.Context) (bool, error) {
	current := ix.Snapshot()
	if current == nil {
		return true, nil
	}
	records, err := ix.source.Records(ctx)
	if err != nil {
		return false, fmt.Errorf("reading records: %w", err)
	}
	return core.Fingerprint(ix.schema, records) != current.Fingerprint, nil
}

// Refresh rebuilds the snapshot from the live corpus. When force is
// false and the corpus fingerprint matches the current snapshot, the
// rebuild is skipped. The new snapshot is persisted before the
// in-memory pointer is swapped; a build or persist failure leaves both
// the previous snapshot and its persisted copy untouched.
func (ix *Index) Refresh(ctx context.Context, force bool) error {
	records, err := ix.source.Records(ctx)
	if err != nil {
		return fmt.Errorf("reading records: %w", err)
	}

	fingerprint := core.Fingerprint(ix.schema, records)
	if current := ix.Snapshot(); !force && current != nil && current.Fingerprint == fingerprint {
		ix.logger.Debug("snapshot is fresh, skipping rebuild", "fingerprint", uint64(fingerprint))
		return nil
	}

	snap, err := ix.builder.Build(ctx, records)
	if err != nil {
		return err
	}
	if err := ix.store.Save(ctx, snap); err != nil {
		return fmt.Errorf("persisting snapshot: %w", err)
	}

	ix.mu.Lock()
	ix.current = snap
	ix.loaded = true
	ix.mu.Unlock()

	ix.logger.Info("snapshot refreshed", "records", len(snap.Entries), "forced", force)
	return nil
}

// Ensure makes a usable snapshot available: load the persisted one if
// not yet loaded, then rebuild when absent or stale. First search goes
// through here so a cold start embeds the corpus exactly once.
func (ix *Index) Ensure(ctx context.Context) error {
	if err := ix.Load(ctx); err != nil {
		return err
	}
	return ix.Refresh(ctx, false)
}

// Invalidate drops both the persisted and in-memory snapshots.
func (ix *Index) Invalidate(ctx context.Context) error {
	if err := ix.store.Delete(ctx); err != nil {
		return fmt.Errorf("deleting snapshot: %w", err)
	}
	ix.mu.Lock()
	ix.current = nil
	ix.mu.Unlock()
	return nil
}
