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


package document

import (
	"fmt"
	"strings"

	"github.com/vendisearch/vendisearch/core"
)

// DefaultRepetition is how many times each keyword variant is appended
// to composed text when its trigger matches.
const DefaultRepetition = 10

// Composer turns flat records into weighted embedding text. Composition
// is pure: the same schema, keyword set and record always produce
// byte-identical output.
type Composer struct {
	schema     *core.Schema
	keywords   core.KeywordSet
	repetition int
}

// NewComposer builds a Composer over a validated schema. A repetition
// count below 1 falls back to DefaultRepetition.
func NewComposer(schema *core.Schema, keywords core.KeywordSet, repetition int) (*Composer, error) {
	if err := core.ValidateSchema(schema); err != nil {
		return nil, fmt.Errorf("composer: %w", err)
	}
	if repetition < 1 {
		repetition = DefaultRepetition
	}
	return &Composer{schema: schema, keywords: keywords, repetition: repetition}, nil
}

// Compose builds the embedding text for a record.
//
// Each searchable field with a non-empty value contributes the fragment
// "{label}: {value}" repeated Weight times. Fragments are ordered by
// field index and joined with ". ". If the record's searchable text
// contains a keyword trigger, every variant of that topic is appended,
// each repeated the configured number of times, topics in sorted order.
func (c *Composer) Compose(record *core.Record) string {
	var fragments []string
	for _, f := range c.schema.Searchable() {
		value := strings.TrimSpace(record.Value(f.Index))
		if value == "" || f.Weight < 1 {
			continue
		}
		fragment := f.Label + ": " + value
		for i := 0; i < f.Weight; i++ {
			fragments = append(fragments, fragment)
		}
	}

	for _, topic := range c.MatchedTopics(c.SearchText(record)) {
		for _, variant := range c.keywords[topic] {
			for i := 0; i < c.repetition; i++ {
				fragments = append(fragments, variant)
			}
		}
	}

	// Collapse runs of whitespace that came in with the field values.
	return strings.Join(strings.Fields(strings.Join(fragments, ". ")), " ")
}

// SearchText returns the lower-cased concatenation of a record's
// searchable values. This is the text keyword triggers are matched
// against.
func (c *Composer) SearchText(record *core.Record) string {
	var b strings.Builder
	for _, f := range c.schema.Searchable() {
		value := strings.TrimSpace(record.Value(f.Index))
		if value == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(strings.ToLower(value))
	}
	return b.String()
}

// MatchedTopics returns the keyword triggers contained in text, in
// sorted order. Matching is case-insensitive substring containment, so
// the trigger "electronic" also fires on "electronics".
func (c *Composer) MatchedTopics(text string) []string {
	if text == "" || len(c.keywords) == 0 {
		return nil
	}
	lowered := strings.ToLower(text)
	var matched []string
	for _, topic := range c.keywords.Topics() {
		if strings.Contains(lowered, topic) {
			matched = append(matched, topic)
		}
	}
	return matched
}
