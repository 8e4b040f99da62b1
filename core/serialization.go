package core

import (
	"time"

	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/raw"
	"github.com/mus-format/mus-go/varint"
)

// Hand-written MUS serializers for the types that go through badger.
// Only three small types cross the wire (Record, IndexedRecord,
// Snapshot), so there is no code generation step; the serializers
// follow the struct-serializer layout mus-go documents.

var (
	stringSliceMUS  = ord.NewSliceSer[string](ord.String)
	float32SliceMUS = ord.NewSliceSer[float32](raw.Float32)
)

// IDMUS serializes IDs as varint-encoded uint64.
var IDMUS = idMUS{}

type idMUS struct{}

func (idMUS) Marshal(v ID, bs []byte) (n int) {
	return varint.Uint64.Marshal(uint64(v), bs)
}

func (idMUS) Unmarshal(bs []byte) (v ID, n int, err error) {
	u, n, err := varint.Uint64.Unmarshal(bs)
	return ID(u), n, err
}

func (idMUS) Size(v ID) (size int) {
	return varint.Uint64.Size(uint64(v))
}

func (idMUS) Skip(bs []byte) (n int, err error) {
	return varint.Uint64.Skip(bs)
}

// RecordMUS serializes Records.
var RecordMUS = recordMUS{}

type recordMUS struct{}

func (recordMUS) Marshal(v Record, bs []byte) (n int) {
	n = IDMUS.Marshal(v.Id, bs)
	n += stringSliceMUS.Marshal(v.Fields, bs[n:])
	return
}

func (recordMUS) Unmarshal(bs []byte) (v Record, n int, err error) {
	v.Id, n, err = IDMUS.Unmarshal(bs)
	if err != nil {
		return
	}
	var n1 int
	v.Fields, n1, err = stringSliceMUS.Unmarshal(bs[n:])
	n += n1
	return
}

func (recordMUS) Size(v Record) (size int) {
	size = IDMUS.Size(v.Id)
	return size + stringSliceMUS.Size(v.Fields)
}

func (recordMUS) Skip(bs []byte) (n int, err error) {
	n, err = IDMUS.Skip(bs)
	if err != nil {
		return
	}
	var n1 int
	n1, err = stringSliceMUS.Skip(bs[n:])
	n += n1
	return
}

// IndexedRecordMUS serializes IndexedRecords.
var IndexedRecordMUS = indexedRecordMUS{}

type indexedRecordMUS struct{}

func (indexedRecordMUS) Marshal(v IndexedRecord, bs []byte) (n int) {
	n = IDMUS.Marshal(v.Id, bs)
	n += float32SliceMUS.Marshal(v.Vector, bs[n:])
	n += RecordMUS.Marshal(v.Record, bs[n:])
	return
}

func (indexedRecordMUS) Unmarshal(bs []byte) (v IndexedRecord, n int, err error) {
	v.Id, n, err = IDMUS.Unmarshal(bs)
	if err != nil {
		return
	}
	var n1 int
	v.Vector, n1, err = float32SliceMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Record, n1, err = RecordMUS.Unmarshal(bs[n:])
	n += n1
	return
}

func (indexedRecordMUS) Size(v IndexedRecord) (size int) {
	size = IDMUS.Size(v.Id)
	size += float32SliceMUS.Size(v.Vector)
	return size + RecordMUS.Size(v.Record)
}

func (indexedRecordMUS) Skip(bs []byte) (n int, err error) {
	n, err = IDMUS.Skip(bs)
	if err != nil {
		return
	}
	var n1 int
	n1, err = float32SliceMUS.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = RecordMUS.Skip(bs[n:])
	n += n1
	return
}

var indexedRecordSliceMUS = ord.NewSliceSer[IndexedRecord](IndexedRecordMUS)

// SnapshotMUS serializes Snapshots. BuiltAt travels as microseconds
// since the Unix epoch.
var SnapshotMUS = snapshotMUS{}

type snapshotMUS struct{}

func (snapshotMUS) Marshal(v Snapshot, bs []byte) (n int) {
	n = IDMUS.Marshal(v.Fingerprint, bs)
	n += varint.Uint64.Marshal(uint64(v.BuiltAt.UnixMicro()), bs[n:])
	n += indexedRecordSliceMUS.Marshal(v.Entries, bs[n:])
	return
}

func (snapshotMUS) Unmarshal(bs []byte) (v Snapshot, n int, err error) {
	v.Fingerprint, n, err = IDMUS.Unmarshal(bs)
	if err != nil {
		return
	}
	var n1 int
	var micros uint64
	micros, n1, err = varint.Uint64.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.BuiltAt = time.UnixMicro(int64(micros)).UTC()
	v.Entries, n1, err = indexedRecordSliceMUS.Unmarshal(bs[n:])
	n += n1
	return
}

func (snapshotMUS) Size(v Snapshot) (size int) {
	size = IDMUS.Size(v.Fingerprint)
	size += varint.Uint64.Size(uint64(v.BuiltAt.UnixMicro()))
	return size + indexedRecordSliceMUS.Size(v.Entries)
}

func (snapshotMUS) Skip(bs []byte) (n int, err error) {
	n, err = IDMUS.Skip(bs)
	if err != nil {
		return
	}
	var n1 int
	n1, err = varint.Uint64.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = indexedRecordSliceMUS.Skip(bs[n:])
	n += n1
	return
}
