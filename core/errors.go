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

import "errors"

// Domain validation errors
var (
	// ErrInvalidSchema indicates a Schema failed validation.
	ErrInvalidSchema = errors.New("invalid schema")

	// ErrDuplicateFieldName indicates two fields share a name.
	ErrDuplicateFieldName = errors.New("duplicate field name")

	// ErrDuplicateFieldIndex indicates two fields share a value index.
	ErrDuplicateFieldIndex = errors.New("duplicate field index")

	// ErrInvalidFieldWeight indicates a searchable field has weight < 1.
	ErrInvalidFieldWeight = errors.New("searchable field weight must be at least 1")

	// ErrUnknownField indicates a field name not present in the schema.
	ErrUnknownField = errors.New("unknown field")

	// ErrFieldNotFilterable indicates a filter on a non-filterable field.
	ErrFieldNotFilterable = errors.New("field is not filterable")

	// ErrInvalidRecord indicates a Record failed validation.
	ErrInvalidRecord = errors.New("invalid record")

	// ErrInvalidSnapshot indicates an index snapshot failed validation.
	ErrInvalidSnapshot = errors.New("invalid snapshot")

	// ErrEmptyQuery indicates a blank search query.
	ErrEmptyQuery = errors.New("query cannot be empty")

	// ErrInvalidLimit indicates a result limit < 1.
	ErrInvalidLimit = errors.New("limit must be at least 1")

	// ErrInvalidThreshold indicates a similarity threshold outside [0, 1].
	ErrInvalidThreshold = errors.New("threshold must be between 0 and 1")
)
