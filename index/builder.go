package index

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/vendisearch/vendisearch/ai"
	"github.com/vendisearch/vendisearch/core"
	"github.com/vendisearch/vendisearch/document"
)

// BuilderConfig tunes how a rebuild batches and retries embedding calls.
type BuilderConfig struct {
	// BatchSize is how many composed texts go into one embedding call.
	BatchSize int
	// MaxConcurrent is how many embedding calls may be in flight at once.
	MaxConcurrent int
	// MaxRetries is the attempt budget per batch for transient failures.
	MaxRetries int
	// RetryDelay is the base delay for exponential backoff between retries.
	RetryDelay time.Duration
}

// DefaultBuilderConfig returns the rebuild defaults.
func DefaultBuilderConfig() BuilderConfig {
	return BuilderConfig{
		BatchSize:     32,
		MaxConcurrent: 4,
		MaxRetries:    3,
		RetryDelay:    500 * time.Millisecond,
	}
}

func (c *BuilderConfig) normalize() {
	d := DefaultBuilderConfig()
	if c.BatchSize < 1 {
		c.BatchSize = d.BatchSize
	}
	if c.MaxConcurrent < 1 {
		c.MaxConcurrent = d.MaxConcurrent
	}
	if c.MaxRetries < 1 {
		c.MaxRetries = d.MaxRetries
	}
	if c.RetryDelay <= 0 {
		c.RetryDelay = d.RetryDelay
	}
}

// Builder turns a record corpus into a complete snapshot: compose every
// record, embed in concurrent batches, normalize, fingerprint. A build
// either produces the whole snapshot or fails; there is no partial
// result.
type Builder struct {
	composer *document.Composer
	embedder ai.Embedder
	schema   *core.Schema
	config   BuilderConfig
	progress io.Writer
	logger   *slog.Logger
}

// BuilderOption is a functional option for configuring a Builder.
type BuilderOption func(*Builder)

// WithProgress makes the builder report embedding progress to w.
func WithProgress(w io.Writer) BuilderOption {
	return func(b *Builder) {
		b.progress = w
	}
}

// NewBuilder creates a Builder.
func NewBuilder(composer *document.Composer, embedder ai.Embedder, schema *core.Schema, config BuilderConfig, opts ...BuilderOption) (*Builder, error) {
	if composer == nil {
		return nil, ErrComposerRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}
	if err := core.ValidateSchema(schema); err != nil {
		return nil, err
	}
	config.normalize()

	b := &Builder{
		composer: composer,
		embedder: embedder,
		schema:   schema,
		config:   config,
		logger:   slog.Default().With("component", "index-builder"),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b, nil
}

// Build embeds every record and assembles a snapshot. Any batch failure
// aborts the whole build: the error is returned and no snapshot exists.
func (b *Builder) Build(ctx context.Context, records []core.Record) (*core.Snapshot, error) {
	fingerprint := core.Fingerprint(b.schema, records)
	snap := &core.Snapshot{
		Fingerprint: fingerprint,
		BuiltAt:     time.Now().UTC(),
	}
	if len(records) == 0 {
		return snap, nil
	}

	texts := make([]string, len(records))
	for i := range records {
		texts[i] = b.composer.Compose(&records[i])
	}

	b.logger.Info("building index snapshot", "records", len(records), "batchSize", b.config.BatchSize)

	var tracker *ProgressTracker
	if b.progress != nil {
		tracker = NewProgressTracker(b.progress, len(records), b.config.BatchSize)
		tracker.Start()
	}

	vectors := make([][]float32, len(records))

	pool, err := ants.NewPool(b.config.MaxConcurrent)
	if err != nil {
		return nil, fmt.Errorf("creating worker pool: %w", err)
	}
	defer pool.Release()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)
	fail := func(err error) {
		mu.Lock()
		if firstErr == nil {
			firstErr = err
			cancel() // abort remaining batches
		}
		mu.Unlock()
	}

	for start := 0; start < len(texts); start += b.config.BatchSize {
		end := start + b.config.BatchSize
		if end > len(texts) {
			end = len(texts)
		}
		start, end := start, end

		wg.Add(1)
		submitErr := pool.Submit(func() {
			defer wg.Done()
			if ctx.Err() != nil {
				return
			}

			batch := texts[start:end]
			var embedded [][]float32
			err := RetryWithBackoff(ctx, func() error {
				var embedErr error
				embedded, embedErr = b.embedder.EmbedTexts(ctx, batch)
				return embedErr
			}, b.config.MaxRetries, b.config.RetryDelay)
			if err != nil {
				fail(fmt.Errorf("embedding batch [%d:%d]: %w", start, end, err))
				return
			}
			if len(embedded) != len(batch) {
				fail(fmt.Errorf("embedding count mismatch: expected %d, got %d", len(batch), len(embedded)))
				return
			}

			for i, v := range embedded {
				vectors[start+i] = core.NormalizeVector(v)
			}
			if tracker != nil {
				tracker.Increment(end - start)
			}
		})
		if submitErr != nil {
			wg.Done()
			fail(fmt.Errorf("submitting batch: %w", submitErr))
			break
		}
	}

	wg.Wait()
	if firstErr != nil {
		return nil, fmt.Errorf("index build failed: %w", firstErr)
	}
	if tracker != nil {
		tracker.Finish()
	}

	snap.Entries = make([]core.IndexedRecord, len(records))
	for i := range records {
		snap.Entries[i] = core.IndexedRecord{
			Id:     records[i].Id,
			Vector: vectors[i],
			Record: records[i],
		}
	}
	if err := snap.Validate(); err != nil {
		return nil, fmt.Errorf("index build produced invalid snapshot: %w", err)
	}

	b.logger.Info("snapshot built", "records", len(snap.Entries), "fingerprint", uint64(snap.Fingerprint))
	return snap, nil
}
