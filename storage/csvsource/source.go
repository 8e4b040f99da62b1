// Package csvsource provides a read-only storage.RecordSource over a
// CSV file. The header row is matched against schema field names
// (case-insensitive); columns that name no schema field are ignored.
package csvsource

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/vendisearch/vendisearch/core"
	"github.com/vendisearch/vendisearch/storage"
)

// Source reads records from a CSV file on every call, so edits to the
// file show up as a changed corpus fingerprint.
type Source struct {
	path   string
	schema *core.Schema
}

var _ storage.RecordSource = (*Source)(nil)

// New creates a Source for the given file and schema.
func New(path string, schema *core.Schema) (*Source, error) {
	if err := core.ValidateSchema(schema); err != nil {
		return nil, fmt.Errorf("csvsource: %w", err)
	}
	return &Source{path: path, schema: schema}, nil
}

// Records reads the whole file. Row order is preserved; IDs are derived
// from row content so the same file always yields the same IDs.
func (s *Source) Records(ctx context.Context) ([]core.Record, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("csvsource: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1 // tolerate ragged rows

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("csvsource: reading header: %w", err)
	}

	// Map CSV column -> schema value index; -1 means ignored column.
	// Header names match schema field names case-insensitively.
	byName := make(map[string]int, len(s.schema.Fields))
	for _, field := range s.schema.Fields {
		byName[strings.ToLower(field.Name)] = field.Index
	}
	columns := make([]int, len(header))
	width := 0
	for i, name := range header {
		columns[i] = -1
		idx, ok := byName[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			continue
		}
		columns[i] = idx
		if idx+1 > width {
			width = idx + 1
		}
	}

	var records []core.Record
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("csvsource: reading row: %w", err)
		}

		fields := make([]string, width)
		for i, value := range row {
			if i >= len(columns) || columns[i] < 0 {
				continue
			}
			fields[columns[i]] = strings.TrimSpace(value)
		}

		record := core.Record{Fields: fields}
		record.Id = core.IDFromContent(strings.Join(fields, "\x00"))
		if err := core.ValidateRecord(s.schema, &record); err != nil {
			// Rows with no searchable content are skipped, not fatal.
			continue
		}
		records = append(records, record)
	}

	return records, nil
}
