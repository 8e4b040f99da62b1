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


package core

import "fmt"

// ValidateSchema validates a Schema according to domain rules.
//
// Validation rules:
//   - At least one field, at least one of them searchable
//   - Field names unique and non-empty
//   - Field value indices unique and non-negative
//   - Searchable fields carry weight >= 1
//
// Non-searchable fields may carry weight 0; they never contribute to
// composed text.
func ValidateSchema(s *Schema) error {
	if s == nil {
		return fmt.Errorf("%w: schema is nil", ErrInvalidSchema)
	}
	if len(s.Fields) == 0 {
		return fmt.Errorf("%w: no fields", ErrInvalidSchema)
	}

	names := make(map[string]struct{}, len(s.Fields))
	indices := make(map[int]struct{}, len(s.Fields))
	searchable := 0
	for _, f := range s.Fields {
		if f.Name == "" {
			return fmt.Errorf("%w: field at index %d has no name", ErrInvalidSchema, f.Index)
		}
		if _, ok := names[f.Name]; ok {
			return fmt.Errorf("%w: %w: %q", ErrInvalidSchema, ErrDuplicateFieldName, f.Name)
		}
		names[f.Name] = struct{}{}

		if f.Index < 0 {
			return fmt.Errorf("%w: field %q has negative index", ErrInvalidSchema, f.Name)
		}
		if _, ok := indices[f.Index]; ok {
			return fmt.Errorf("%w: %w: %d", ErrInvalidSchema, ErrDuplicateFieldIndex, f.Index)
		}
		indices[f.Index] = struct{}{}

		if f.Searchable {
			searchable++
			if f.Weight < 1 {
				return fmt.Errorf("%w: %w: field %q", ErrInvalidSchema, ErrInvalidFieldWeight, f.Name)
			}
		}
	}
	if searchable == 0 {
		return fmt.Errorf("%w: no searchable fields", ErrInvalidSchema)
	}
	return nil
}

// ValidateRecord validates a Record against a schema.
//
// Validation rules:
//   - Record must not be nil
//   - At least one searchable field must hold a non-empty value
//
// The Fields slice may be shorter than the schema; missing positions
// read as empty values.
func ValidateRecord(s *Schema, record *Record) error {
	if record == nil {
		return fmt.Errorf("%w: record is nil", ErrInvalidRecord)
	}
	for _, f := range s.Searchable() {
		if record.Value(f.Index) != "" {
			return nil
		}
	}
	return fmt.Errorf("%w: record %d has no searchable content", ErrInvalidRecord, record.Id)
}

// ValidateQueryParams checks the fail-fast search parameters.
func ValidateQueryParams(topK int, threshold float32) error {
	if topK < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidLimit, topK)
	}
	if threshold < 0 || threshold > 1 {
		return fmt.Errorf("%w: got %g", ErrInvalidThreshold, threshold)
	}
	return nil
}
