package core

import (
	"testing"
	"time"
)

func TestSnapshotMUS_RoundTrip(t *testing.T) {
	snap := Snapshot{
		Fingerprint: IDFromContent("corpus-v1"),
		BuiltAt:     time.Date(2026, 3, 14, 9, 26, 53, 589000, time.UTC),
		Entries: []IndexedRecord{
			{
				Id:     1,
				Vector: []float32{0.6, 0.8},
				Record: Record{Id: 1, Fields: []string{"Sharma Transport", "Mumbai", "electronics specialist"}},
			},
			{
				Id:     2,
				Vector: []float32{1, 0},
				Record: Record{Id: 2, Fields: []string{"Gujarat Cargo", "Surat", ""}},
			},
		},
	}

	buf := make([]byte, SnapshotMUS.Size(snap))
	n := SnapshotMUS.Marshal(snap, buf)
	if n != len(buf) {
		t.Fatalf("Marshal wrote %d bytes, Size said %d", n, len(buf))
	}

	got, n, err := SnapshotMUS.Unmarshal(buf)
	if err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if n != len(buf) {
		t.Errorf("Unmarshal consumed %d bytes, want %d", n, len(buf))
	}
	if got.Fingerprint != snap.Fingerprint {
		t.Errorf("Fingerprint = %d, want %d", got.Fingerprint, snap.Fingerprint)
	}
	if !got.BuiltAt.Equal(snap.BuiltAt.Truncate(time.Microsecond)) {
		t.Errorf("BuiltAt = %v, want %v", got.BuiltAt, snap.BuiltAt)
	}
	if len(got.Entries) != 2 {
		t.Fatalf("Entries = %d, want 2", len(got.Entries))
	}
	if got.Entries[0].Record.Fields[2] != "electronics specialist" {
		t.Errorf("field round trip failed: %q", got.Entries[0].Record.Fields[2])
	}
	if got.Entries[1].Vector[0] != 1 {
		t.Errorf("vector round trip failed: %v", got.Entries[1].Vector)
	}
}

func TestSnapshotMUS_TruncatedData(t *testing.T) {
	snap := Snapshot{
		Fingerprint: 42,
		BuiltAt:     time.Now(),
		Entries: []IndexedRecord{
			{Id: 1, Vector: []float32{0.1, 0.2}, Record: Record{Id: 1, Fields: []string{"x"}}},
		},
	}
	buf := make([]byte, SnapshotMUS.Size(snap))
	SnapshotMUS.Marshal(snap, buf)

	if _, _, err := SnapshotMUS.Unmarshal(buf[:len(buf)/2]); err == nil {
		t.Error("Unmarshal() of truncated data succeeded, want error")
	}
}

func TestRecordMUS_RoundTrip(t *testing.T) {
	rec := Record{Id: 77, Fields: []string{"a", "", "with spaces", "ü"}}

	buf := make([]byte, RecordMUS.Size(rec))
	RecordMUS.Marshal(rec, buf)

	got, _, err := RecordMUS.Unmarshal(buf)
	if err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if got.Id != rec.Id || len(got.Fields) != len(rec.Fields) {
		t.Fatalf("round trip mismatch: %+v", got)
	}
	for i := range rec.Fields {
		if got.Fields[i] != rec.Fields[i] {
			t.Errorf("Fields[%d] = %q, want %q", i, got.Fields[i], rec.Fields[i])
		}
	}
}
