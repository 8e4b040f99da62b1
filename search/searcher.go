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


package search

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/vendisearch/vendisearch/ai"
	"github.com/vendisearch/vendisearch/core"
	"github.com/vendisearch/vendisearch/document"
	"github.com/vendisearch/vendisearch/index"
)

const (
	// DefaultTopK is the result limit used when the caller passes no
	// explicit preference through config.
	DefaultTopK = 5

	// DefaultThreshold is the minimum boosted score a result needs.
	DefaultThreshold float32 = 0.35

	// DefaultEmbedTimeout bounds a single query embedding round trip.
	DefaultEmbedTimeout = 15 * time.Second

	defaultMaxRetries = 2
	defaultRetryDelay = 200 * time.Millisecond
)

// Searcher runs semantic queries against an index: embed the query,
// rank the snapshot, apply exact-match filters, truncate to the limit.
type Searcher struct {
	index        *index.Index
	embedder     ai.Embedder
	schema       *core.Schema
	ranker       *Ranker
	embedTimeout time.Duration
	maxRetries   int
	retryDelay   time.Duration
	logger       *slog.Logger
}

// Option configures a Searcher.
type Option func(*Searcher)

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Searcher) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithEmbedTimeout bounds how long a query embedding may take before
// the search fails with ErrEmbedTimeout.
func WithEmbedTimeout(timeout time.Duration) Option {
	return func(s *Searcher) {
		if timeout > 0 {
			s.embedTimeout = timeout
		}
	}
}

// WithRetry overrides the retry policy for transient embedding failures.
func WithRetry(maxAttempts int, delay time.Duration) Option {
	return func(s *Searcher) {
		if maxAttempts > 0 {
			s.maxRetries = maxAttempts
		}
		if delay > 0 {
			s.retryDelay = delay
		}
	}
}

// NewSearcher creates a Searcher over an index. The composer must be
// the one the index was built with, so topic boosts at query time agree
// with the composed embedding text.
func NewSearcher(ix *index.Index, embedder ai.Embedder, schema *core.Schema, composer *document.Composer, opts ...Option) (*Searcher, error) {
	if ix == nil {
		return nil, ErrIndexRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}
	if err := core.ValidateSchema(schema); err != nil {
		return nil, err
	}
	ranker, err := NewRanker(composer)
	if err != nil {
		return nil, err
	}

	s := &Searcher{
		index:        ix,
		embedder:     embedder,
		schema:       schema,
		ranker:       ranker,
		embedTimeout: DefaultEmbedTimeout,
		maxRetries:   defaultMaxRetries,
		retryDelay:   defaultRetryDelay,
		logger:       slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Search finds records semantically similar to query. Filters map
// filterable field names to values that must match exactly, ignoring
// case and surrounding whitespace. A query matching nothing returns an
// empty slice, not an error.
func (s *Searcher) Search(ctx context.Context, query string, filters map[string]string, topK int, threshold float32) ([]*core.SearchResult, error) {
	return s.SearchWithMonitor(ctx, query, filters, topK, threshold, nil)
}

// SearchWithMonitor is Search with observation hooks. A nil monitor
// falls back to a no-op.
func (s *Searcher) SearchWithMonitor(ctx context.Context, query string, filters map[string]string, topK int, threshold float32, monitor SearchMonitor) ([]*core.SearchResult, error) {
	if monitor == nil {
		monitor = &noopMonitor{}
	}

	query = strings.TrimSpace(query)
	if query == "" {
		return nil, core.ErrEmptyQuery
	}
	// Parameter and filter problems fail before any provider call.
	if err := core.ValidateQueryParams(topK, threshold); err != nil {
		return nil, err
	}
	filterFields, err := s.resolveFilters(filters)
	if err != nil {
		return nil, err
	}

	monitor.Start(query)

	if s.index.Snapshot() == nil {
		if err := s.index.Ensure(ctx); err != nil {
			return nil, fmt.Errorf("preparing index: %w", err)
		}
	}
	snap := s.index.Snapshot()

	embedText := s.embedText(query, filters, filterFields)
	vector, err := s.embedQuery(ctx, embedText)
	if err != nil {
		return nil, err
	}
	monitor.AfterEmbed(vector)

	// Rank past the limit so exact-match filtering still has candidates
	// left to return.
	rankK := topK
	if len(filterFields) > 0 {
		rankK = topK * candidateMultiplier
	}
	results, err := s.ranker.Rank(vector, embedText, snap, rankK, threshold)
	if err != nil {
		return nil, err
	}
	monitor.AfterRank(results)

	if len(filterFields) > 0 {
		results = applyFilters(results, filters, filterFields)
		monitor.AfterFilter(results)
	}

	if len(results) > topK {
		results = results[:topK]
	}

	s.logger.Debug("search complete",
		slog.String("query", query),
		slog.Int("filters", len(filterFields)),
		slog.Int("results", len(results)))
	monitor.Finish(results)
	return results, nil
}

func (s *Searcher) embedQuery(ctx context.Context, text string) ([]float32, error) {
	embedCtx, cancel := context.WithTimeout(ctx, s.embedTimeout)
	defer cancel()

	var vector []float32
	err := index.RetryWithBackoff(embedCtx, func() error {
		var embedErr error
		vector, embedErr = s.embedder.EmbedText(embedCtx, text)
		return embedErr
	}, s.maxRetries, s.retryDelay)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
			return nil, fmt.Errorf("%w: %w", ErrEmbedTimeout, err)
		}
		return nil, fmt.Errorf("embedding query: %w", err)
	}
	return core.NormalizeVector(vector), nil
}

// resolveFilters maps filter names to their schema definitions, in
// sorted name order so the embedding text stays deterministic.
func (s *Searcher) resolveFilters(filters map[string]string) ([]core.FieldDefinition, error) {
	if len(filters) == 0 {
		return nil, nil
	}

	names := make([]string, 0, len(filters))
	for name := range filters {
		names = append(names, name)
	}
	sort.Strings(names)

	fields := make([]core.FieldDefinition, 0, len(names))
	for _, name := range names {
		field, err := s.schema.Field(name)
		if err != nil {
			return nil, fmt.Errorf("filter %q: %w", name, err)
		}
		if !field.Filterable {
			return nil, fmt.Errorf("filter %q: %w", name, core.ErrFieldNotFilterable)
		}
		fields = append(fields, field)
	}
	return fields, nil
}

// embedText merges filter values into the query so the embedding also
// leans toward them, not only the exact-match pass.
func (s *Searcher) embedText(query string, filters map[string]string, fields []core.FieldDefinition) string {
	parts := []string{query}
	for _, field := range fields {
		if value := strings.TrimSpace(filters[field.Name]); value != "" {
			parts = append(parts, value)
		}
	}
	return strings.Join(parts, " ")
}

func applyFilters(results []*core.SearchResult, filters map[string]string, fields []core.FieldDefinition) []*core.SearchResult {
	filtered := make([]*core.SearchResult, 0, len(results))
	for _, result := range results {
		if matchesFilters(result.Record, filters, fields) {
			filtered = append(filtered, result)
		}
	}
	return filtered
}

func matchesFilters(record *core.Record, filters map[string]string, fields []core.FieldDefinition) bool {
	for _, field := range fields {
		want := strings.TrimSpace(filters[field.Name])
		got := strings.TrimSpace(record.Value(field.Index))
		if !strings.EqualFold(want, got) {
			return false
		}
	}
	return true
}
