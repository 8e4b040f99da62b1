package badger

import (
	"encoding/binary"

	"github.com/vendisearch/vendisearch/core"
)

// Key prefixes for different data types
const (
	recordPrefix = "vndrec"
	recordIDSeq  = "vndrecseq"
	snapshotKey  = "vndsnap"
)

// makeRecordKey generates a key for a record by ID. The ID is encoded
// BigEndian so a prefix scan visits records in ID order.
func makeRecordKey(id core.ID) []byte {
	prefix := recordPrefix + ":"
	buf := make([]byte, len(prefix)+8)
	offset := copy(buf, prefix)
	binary.BigEndian.PutUint64(buf[offset:], uint64(id))
	return buf
}

// recordKeyPrefix returns the prefix shared by all record keys.
func recordKeyPrefix() []byte {
	return []byte(recordPrefix + ":")
}

// makeSnapshotKey generates the key the index snapshot blob lives under.
func makeSnapshotKey() []byte {
	return []byte(snapshotKey + ":index")
}
