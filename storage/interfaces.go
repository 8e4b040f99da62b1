package storage

import (
	"context"

	"github.com/vendisearch/vendisearch/core"
)

// RecordSource provides the corpus of flat records to embed and search.
// Implementations must return records in a stable order so corpus
// fingerprints stay deterministic.
type RecordSource interface {
	// Records returns every record in the corpus, ordered by ID.
	Records(ctx context.Context) ([]core.Record, error)
}

// RecordRepository is a writable record store.
// Implementations must be thread-safe and support concurrent access.
type RecordRepository interface {
	RecordSource

	// PutRecords stores one or more records. For records with ID=0,
	// generates new IDs from a sequence. Existing IDs are overwritten.
	// Returns the records with generated IDs populated.
	PutRecords(ctx context.Context, records ...core.Record) ([]core.Record, error)

	// DeleteRecords removes records by their IDs.
	// Returns ErrNotFound if any record doesn't exist.
	DeleteRecords(ctx context.Context, ids ...core.ID) error

	// Count returns the number of stored records.
	Count(ctx context.Context) (int, error)

	// Close closes the storage backend and releases resources.
	Close() error
}

// SnapshotStore persists one complete index snapshot.
// Save replaces the previous snapshot wholesale in a single
// transaction; there is never a partially written snapshot on disk.
type SnapshotStore interface {
	// Load returns the persisted snapshot, or (nil, nil) when none
	// exists. A snapshot that exists but cannot be decoded is reported
	// as ErrCorruptSnapshot.
	Load(ctx context.Context) (*core.Snapshot, error)

	// Save atomically replaces the persisted snapshot.
	Save(ctx context.Context, snap *core.Snapshot) error

	// Delete removes the persisted snapshot, if any.
	Delete(ctx context.Context) error

	// Close closes the storage backend and releases resources.
	Close() error
}
