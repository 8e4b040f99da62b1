package badger

import (
	"context"
	"testing"
	"time"

	badgerdb "github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vendisearch/vendisearch/core"
	"github.com/vendisearch/vendisearch/storage"
)

func testSnapshot() *core.Snapshot {
	return &core.Snapshot{
		Fingerprint: core.IDFromContent("fp"),
		BuiltAt:     time.Now().UTC().Truncate(time.Microsecond),
		Entries: []core.IndexedRecord{
			{Id: 1, Vector: []float32{0.6, 0.8}, Record: core.Record{Id: 1, Fields: []string{"Sharma Transport", "Mumbai"}}},
			{Id: 2, Vector: []float32{1, 0}, Record: core.Record{Id: 2, Fields: []string{"Gujarat Cargo", "Surat"}}},
		},
	}
}

func TestSnapshotStore_LoadAbsent(t *testing.T) {
	backend, err := OpenBackend("", true)
	require.NoError(t, err)
	defer backend.Close()

	store := NewSnapshotStore(backend)

	snap, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Nil(t, snap)
}

func TestSnapshotStore_SaveLoadRoundTrip(t *testing.T) {
	backend, err := OpenBackend("", true)
	require.NoError(t, err)
	defer backend.Close()

	store := NewSnapshotStore(backend)
	ctx := context.Background()
	snap := testSnapshot()

	require.NoError(t, store.Save(ctx, snap))

	got, err := store.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, snap.Fingerprint, got.Fingerprint)
	assert.True(t, got.BuiltAt.Equal(snap.BuiltAt))
	require.Len(t, got.Entries, 2)
	assert.Equal(t, "Mumbai", got.Entries[0].Record.Fields[1])
}

func TestSnapshotStore_SaveReplacesWholesale(t *testing.T) {
	backend, err := OpenBackend("", true)
	require.NoError(t, err)
	defer backend.Close()

	store := NewSnapshotStore(backend)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, testSnapshot()))

	replacement := &core.Snapshot{
		Fingerprint: core.IDFromContent("fp2"),
		BuiltAt:     time.Now().UTC(),
		Entries: []core.IndexedRecord{
			{Id: 7, Vector: []float32{0, 1}, Record: core.Record{Id: 7, Fields: []string{"Solo Vendor"}}},
		},
	}
	require.NoError(t, store.Save(ctx, replacement))

	got, err := store.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, replacement.Fingerprint, got.Fingerprint)
	require.Len(t, got.Entries, 1)
	assert.Equal(t, core.ID(7), got.Entries[0].Id)
}

func TestSnapshotStore_Delete(t *testing.T) {
	backend, err := OpenBackend("", true)
	require.NoError(t, err)
	defer backend.Close()

	store := NewSnapshotStore(backend)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, testSnapshot()))
	require.NoError(t, store.Delete(ctx))

	snap, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, snap)
}

func TestSnapshotStore_CorruptBlob(t *testing.T) {
	backend, err := OpenBackend("", true)
	require.NoError(t, err)
	defer backend.Close()

	// Write garbage under the snapshot key directly.
	err = backend.WithTx(func(tx *badgerdb.Txn) error {
		if err := tx.Set(makeSnapshotKey(), []byte{0xff, 0x01, 0x02}); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
	require.NoError(t, err)

	store := NewSnapshotStore(backend)

	_, err = store.Load(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, storage.ErrCorruptSnapshot)
}
