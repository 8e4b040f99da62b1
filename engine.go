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


package vendisearch

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/vendisearch/vendisearch/ai"
	"github.com/vendisearch/vendisearch/ai/openai"
	"github.com/vendisearch/vendisearch/config"
	"github.com/vendisearch/vendisearch/core"
	"github.com/vendisearch/vendisearch/document"
	"github.com/vendisearch/vendisearch/index"
	"github.com/vendisearch/vendisearch/search"
	"github.com/vendisearch/vendisearch/storage"
	"github.com/vendisearch/vendisearch/storage/badger"
)

// Engine wires storage, the embedding provider, the index and the
// searcher into one handle. It is the entry point for both the CLI and
// library callers.
type Engine struct {
	backend   *badger.Backend
	records   storage.RecordRepository
	snapshots storage.SnapshotStore
	embedder  ai.Embedder
	index     *index.Index
	searcher  *search.Searcher
	schema    *core.Schema
	cfg       *config.Config
	logger    *slog.Logger
}

// EngineOption configures an Engine.
type EngineOption func(*engineOptions)

type engineOptions struct {
	embedder ai.Embedder
	logger   *slog.Logger
}

// WithEmbedder replaces the default OpenAI-compatible embedder.
func WithEmbedder(embedder ai.Embedder) EngineOption {
	return func(o *engineOptions) {
		o.embedder = embedder
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) EngineOption {
	return func(o *engineOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// Stats summarizes the stored corpus.
type Stats struct {
	TotalRecords int
	// FieldValues counts distinct values per filterable field, e.g.
	// FieldValues["vendor_state"]["Maharashtra"] = 42.
	FieldValues map[string]map[string]int
}

// Open creates an Engine over a badger directory. An empty filePath
// opens an in-memory store, which is what tests use. A nil cfg means
// config.Default().
func Open(filePath string, cfg *config.Config, opts ...EngineOption) (*Engine, error) {
	if cfg == nil {
		cfg = config.Default()
	}

	options := &engineOptions{logger: slog.Default()}
	for _, opt := range opts {
		opt(options)
	}

	schema, err := cfg.CoreSchema()
	if err != nil {
		return nil, err
	}

	embedder := options.embedder
	if embedder == nil {
		embedder, err = openai.NewEmbedder(ai.NewConfig(
			ai.WithHost(cfg.Embedder.Host),
			ai.WithModel(cfg.Embedder.Model),
		))
		if err != nil {
			return nil, err
		}
	}

	backend, err := badger.OpenBackend(filePath, filePath == "")
	if err != nil {
		return nil, err
	}

	records, err := badger.NewRecordRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}
	snapshots := badger.NewSnapshotStore(backend)

	composer, err := document.NewComposer(schema, cfg.KeywordSet(), cfg.Search.Repetition)
	if err != nil {
		records.Close()
		backend.Close()
		return nil, err
	}

	builder, err := index.NewBuilder(composer, embedder, schema, index.BuilderConfig{
		BatchSize:     cfg.Search.BatchSize,
		MaxConcurrent: cfg.Search.MaxConcurrent,
	})
	if err != nil {
		records.Close()
		backend.Close()
		return nil, err
	}

	ix, err := index.New(snapshots, builder, records, schema)
	if err != nil {
		records.Close()
		backend.Close()
		return nil, err
	}

	searcher, err := search.NewSearcher(ix, embedder, schema, composer,
		search.WithEmbedTimeout(time.Duration(cfg.Search.EmbedTimeoutSecs)*time.Second),
		search.WithLogger(options.logger))
	if err != nil {
		records.Close()
		backend.Close()
		return nil, err
	}

	return &Engine{
		backend:   backend,
		records:   records,
		snapshots: snapshots,
		embedder:  embedder,
		index:     ix,
		searcher:  searcher,
		schema:    schema,
		cfg:       cfg,
		logger:    options.logger,
	}, nil
}

// Search runs a semantic query. A topK of exactly 0 falls back to the
// configured default; negative topK and out-of-range thresholds are
// caller bugs and fail fast like everywhere else. Callers wanting the
// configured threshold can read it from SearchDefaults.
func (e *Engine) Search(ctx context.Context, query string, filters map[string]string, topK int, threshold float32) ([]*core.SearchResult, error) {
	if topK == 0 {
		topK = e.cfg.Search.TopK
	}
	return e.searcher.Search(ctx, query, filters, topK, threshold)
}

// SearchDefaults returns the configured topK and threshold.
func (e *Engine) SearchDefaults() (topK int, threshold float32) {
	return e.cfg.Search.TopK, e.cfg.Search.Threshold
}

// RefreshIndex rebuilds the index when the corpus changed, or
// unconditionally when force is set.
func (e *Engine) RefreshIndex(ctx context.Context, force bool) error {
	if err := e.index.Load(ctx); err != nil {
		return err
	}
	return e.index.Refresh(ctx, force)
}

// ImportRecords copies every record from source into the repository and
// returns how many were written. The index is left to go stale; the
// next refresh or cold search picks the new corpus up.
func (e *Engine) ImportRecords(ctx context.Context, source storage.RecordSource) (int, error) {
	records, err := source.Records(ctx)
	if err != nil {
		return 0, fmt.Errorf("reading import source: %w", err)
	}
	if len(records) == 0 {
		return 0, nil
	}
	stored, err := e.records.PutRecords(ctx, records...)
	if err != nil {
		return 0, err
	}
	e.logger.Info("records imported", "count", len(stored))
	return len(stored), nil
}

// Records exposes the record repository for direct reads and writes.
func (e *Engine) Records() storage.RecordRepository {
	return e.records
}

// Index exposes the index for explicit staleness checks.
func (e *Engine) Index() *index.Index {
	return e.index
}

// FieldDefinitions returns the schema fields in value-index order.
func (e *Engine) FieldDefinitions() []core.FieldDefinition {
	fields := make([]core.FieldDefinition, len(e.schema.Fields))
	copy(fields, e.schema.Fields)
	return fields
}

// Stats counts stored records and, per filterable field, how many
// records carry each distinct value.
func (e *Engine) Stats(ctx context.Context) (*Stats, error) {
	records, err := e.records.Records(ctx)
	if err != nil {
		return nil, err
	}

	stats := &Stats{
		TotalRecords: len(records),
		FieldValues:  make(map[string]map[string]int),
	}
	for _, field := range e.schema.Fields {
		if !field.Filterable {
			continue
		}
		counts := make(map[string]int)
		for i := range records {
			if value := records[i].Value(field.Index); value != "" {
				counts[value]++
			}
		}
		stats.FieldValues[field.Name] = counts
	}
	return stats, nil
}

// Close releases the storage backend.
func (e *Engine) Close() error {
	if err := e.records.Close(); err != nil {
		e.logger.Error("error closing record repository", "err", err)
		return err
	}
	if err := e.backend.Close(); err != nil {
		e.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}
