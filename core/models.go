package core

import (
	"encoding/binary"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for domain entities.
// It is generated using content-based hashing or database sequences.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// FieldType identifies the value domain of a schema field.
type FieldType int

const (
	// FieldTypeText holds free-form text.
	FieldTypeText FieldType = iota + 1
	// FieldTypeNumber holds numeric values kept as strings on the record.
	FieldTypeNumber
	// FieldTypeBoolean holds yes/no style values kept as strings on the record.
	FieldTypeBoolean
)

// FieldDefinition describes a single column of the flat record layout
// and how it participates in search.
type FieldDefinition struct {
	Index      int       // position of the value in Record.Fields
	Name       string    // machine name, unique within a schema
	Label      string    // human label used in composed embedding text
	Type       FieldType
	Searchable bool // contributes to composed text and the corpus fingerprint
	Weight     int  // repetition count for the composed fragment
	InCard     bool // shown when rendering a result card
	Filterable bool // usable as an exact-match query filter
}

// Schema is an ordered set of field definitions plus a version tag.
// The version participates in fingerprints so that schema changes
// invalidate cached vectors.
type Schema struct {
	Version string
	Fields  []FieldDefinition
}

// Field resolves a field definition by name.
func (s *Schema) Field(name string) (FieldDefinition, error) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, nil
		}
	}
	return FieldDefinition{}, ErrUnknownField
}

// Searchable returns the searchable fields ordered by Index.
func (s *Schema) Searchable() []FieldDefinition {
	out := make([]FieldDefinition, 0, len(s.Fields))
	for _, f := range s.Fields {
		if f.Searchable {
			out = append(out, f)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Index < out[j].Index })
	return out
}

// WeightSignature returns a stable string describing the schema version
// and the weight configuration of every searchable field. Any change to
// it must invalidate previously computed vectors.
func (s *Schema) WeightSignature() string {
	var b strings.Builder
	b.WriteString(s.Version)
	for _, f := range s.Searchable() {
		b.WriteByte('|')
		b.WriteString(f.Name)
		b.WriteByte(':')
		b.WriteString(strconv.Itoa(f.Weight))
	}
	return b.String()
}

// Record is a single flat record: an identifier plus a dense slice of
// string values indexed by FieldDefinition.Index.
type Record struct {
	Id     ID
	Fields []string
}

// Value returns the field value at idx, or "" when idx is out of range.
func (r *Record) Value(idx int) string {
	if idx < 0 || idx >= len(r.Fields) {
		return ""
	}
	return r.Fields[idx]
}

// ContentHash generates a deterministic ID over the record identity and
// all field values. Identical content hashes to the same value.
func (r *Record) ContentHash() ID {
	h, _ := blake2b.New(8, nil)
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(r.Id))
	h.Write(buf[:])
	for _, v := range r.Fields {
		h.Write([]byte{0})
		h.Write([]byte(v))
	}
	return ID(binary.LittleEndian.Uint64(h.Sum(nil)))
}

// KeywordSet maps a trigger term to the phrase variants appended to
// composed text when the trigger appears in a record or query.
type KeywordSet map[string][]string

// Topics returns the trigger terms in sorted order. Iteration over a
// KeywordSet must always go through Topics so output stays deterministic.
func (k KeywordSet) Topics() []string {
	topics := make([]string, 0, len(k))
	for t := range k {
		topics = append(topics, t)
	}
	sort.Strings(topics)
	return topics
}

// IndexedRecord pairs a record with its embedding vector inside a snapshot.
type IndexedRecord struct {
	Id     ID
	Vector []float32
	Record Record
}

// Snapshot is one complete, immutable generation of the vector index:
// every record embedded under a single fingerprint. Snapshots are
// replaced wholesale, never patched.
type Snapshot struct {
	Fingerprint ID
	BuiltAt     time.Time
	Entries     []IndexedRecord
}

// Validate checks snapshot integrity: every entry must carry a vector,
// and all vectors must share one dimension. A snapshot that fails this
// is treated the same as a corrupt one.
func (s *Snapshot) Validate() error {
	if s == nil {
		return fmt.Errorf("%w: snapshot is nil", ErrInvalidSnapshot)
	}
	dim := 0
	for i := range s.Entries {
		n := len(s.Entries[i].Vector)
		if n == 0 {
			return fmt.Errorf("%w: entry %d has no vector", ErrInvalidSnapshot, s.Entries[i].Id)
		}
		if dim == 0 {
			dim = n
		} else if n != dim {
			return fmt.Errorf("%w: entry %d has dimension %d, want %d", ErrInvalidSnapshot, s.Entries[i].Id, n, dim)
		}
	}
	return nil
}

// Fingerprint computes the corpus fingerprint: a hash over the schema
// weight signature, the record count, and every record content hash.
// Any record edit, addition, removal or weight change yields a new value.
func Fingerprint(schema *Schema, records []Record) ID {
	h, _ := blake2b.New(8, nil)
	h.Write([]byte(schema.WeightSignature()))
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(len(records)))
	h.Write(buf[:])
	for i := range records {
		binary.LittleEndian.PutUint64(buf[:], uint64(records[i].ContentHash()))
		h.Write(buf[:])
	}
	return ID(binary.LittleEndian.Uint64(h.Sum(nil)))
}

// SearchResult is a ranked record with its raw cosine similarity and the
// boosted score the ordering and threshold were applied to.
type SearchResult struct {
	Record     *Record
	Similarity float32 // raw cosine, floored at 0
	Score      float32 // Similarity plus keyword boost, clamped to 1
}
