package search

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vendisearch/vendisearch/ai"
	"github.com/vendisearch/vendisearch/ai/mock"
	"github.com/vendisearch/vendisearch/core"
	"github.com/vendisearch/vendisearch/document"
	"github.com/vendisearch/vendisearch/index"
	"github.com/vendisearch/vendisearch/storage"
	"github.com/vendisearch/vendisearch/storage/badger"
)

func searchSchema() *core.Schema {
	return &core.Schema{
		Version: "1",
		Fields: []core.FieldDefinition{
			{Index: 0, Name: "name", Label: "Business Name", Searchable: true, Weight: 6, InCard: true},
			{Index: 1, Name: "city", Label: "City", Searchable: true, Weight: 12, InCard: true, Filterable: true},
			{Index: 2, Name: "state", Label: "State", Searchable: true, Weight: 12, InCard: true, Filterable: true},
			{Index: 3, Name: "notes", Label: "Notes", Searchable: true, Weight: 20},
		},
	}
}

func searchKeywords() core.KeywordSet {
	return core.KeywordSet{
		"electronic": {"electronics transport"},
	}
}

func searchCorpus() []core.Record {
	return []core.Record{
		{Id: 1, Fields: []string{"Sharma Transport", "Mumbai", "Maharashtra", "electronics specialist"}},
		{Id: 2, Fields: []string{"Gujarat Freight", "Surat", "Gujarat", "textile loads"}},
		{Id: 3, Fields: []string{"Patel Movers", "Pune", "Maharashtra", "general cargo"}},
	}
}

// corpusVector assigns each record a basis vector so query similarity
// is fully controlled by the per-test query vector.
func corpusVector(text string) []float32 {
	switch {
	case strings.Contains(text, "Sharma Transport"):
		return []float32{1, 0, 0}
	case strings.Contains(text, "Gujarat Freight"):
		return []float32{0, 1, 0}
	case strings.Contains(text, "Patel Movers"):
		return []float32{0, 0, 1}
	default:
		return []float32{0.577, 0.577, 0.577}
	}
}

type searchFixture struct {
	embedder *mock.MockEmbedder
	searcher *Searcher
	records  storage.RecordRepository
}

func newSearchFixture(t *testing.T, opts ...Option) *searchFixture {
	t.Helper()

	records, snapshots, backend, err := badger.NewMemoryStores()
	require.NoError(t, err)
	t.Cleanup(func() {
		records.Close()
		backend.Close()
	})

	_, err = records.PutRecords(context.Background(), searchCorpus()...)
	require.NoError(t, err)

	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		vectors := make([][]float32, len(texts))
		for i, text := range texts {
			vectors[i] = corpusVector(text)
		}
		return vectors, nil
	}

	composer, err := document.NewComposer(searchSchema(), searchKeywords(), 2)
	require.NoError(t, err)
	builder, err := index.NewBuilder(composer, embedder, searchSchema(), index.BuilderConfig{
		BatchSize: 2, MaxConcurrent: 2, MaxRetries: 1, RetryDelay: time.Millisecond,
	})
	require.NoError(t, err)
	ix, err := index.New(snapshots, builder, records, searchSchema())
	require.NoError(t, err)

	opts = append([]Option{WithRetry(1, time.Millisecond)}, opts...)
	searcher, err := NewSearcher(ix, embedder, searchSchema(), composer, opts...)
	require.NoError(t, err)

	return &searchFixture{embedder: embedder, searcher: searcher, records: records}
}

func (f *searchFixture) queryVector(vector []float32) {
	f.embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		return vector, nil
	}
}

func TestNewSearcher_Validation(t *testing.T) {
	composer, err := document.NewComposer(searchSchema(), nil, 1)
	require.NoError(t, err)
	embedder := mock.NewMockEmbedder()

	_, err = NewSearcher(nil, embedder, searchSchema(), composer)
	assert.ErrorIs(t, err, ErrIndexRequired)

	records, snapshots, backend, err := badger.NewMemoryStores()
	require.NoError(t, err)
	defer func() {
		records.Close()
		backend.Close()
	}()
	builder, err := index.NewBuilder(composer, embedder, searchSchema(), index.BuilderConfig{})
	require.NoError(t, err)
	ix, err := index.New(snapshots, builder, records, searchSchema())
	require.NoError(t, err)

	_, err = NewSearcher(ix, nil, searchSchema(), composer)
	assert.ErrorIs(t, err, ErrEmbedderRequired)

	_, err = NewSearcher(ix, embedder, searchSchema(), nil)
	assert.ErrorIs(t, err, ErrComposerRequired)

	_, err = NewSearcher(ix, embedder, nil, composer)
	assert.ErrorIs(t, err, core.ErrInvalidSchema)
}

func TestSearcher_Search_OrdersBySimilarity(t *testing.T) {
	f := newSearchFixture(t)
	f.queryVector([]float32{0.8, 0.5, 0.33})

	results, err := f.searcher.Search(context.Background(), "freight services", nil, 3, 0.1)
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, "Sharma Transport", results[0].Record.Value(0))
	assert.Equal(t, "Gujarat Freight", results[1].Record.Value(0))
	assert.Equal(t, "Patel Movers", results[2].Record.Value(0))
	assert.Greater(t, results[0].Score, results[1].Score)
}

func TestSearcher_Search_TruncatesToTopK(t *testing.T) {
	f := newSearchFixture(t)
	f.queryVector([]float32{0.8, 0.5, 0.33})

	results, err := f.searcher.Search(context.Background(), "freight services", nil, 1, 0.1)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Sharma Transport", results[0].Record.Value(0))
}

func TestSearcher_Search_EmptyQuery(t *testing.T) {
	f := newSearchFixture(t)

	_, err := f.searcher.Search(context.Background(), "", nil, 3, 0.1)
	assert.ErrorIs(t, err, core.ErrEmptyQuery)

	_, err = f.searcher.Search(context.Background(), "   \t", nil, 3, 0.1)
	assert.ErrorIs(t, err, core.ErrEmptyQuery)

	assert.Zero(t, f.embedder.CallCount(), "rejected queries must not hit the provider")
}

func TestSearcher_Search_InvalidParamsFailFast(t *testing.T) {
	f := newSearchFixture(t)

	_, err := f.searcher.Search(context.Background(), "query", nil, 0, 0.1)
	assert.ErrorIs(t, err, core.ErrInvalidLimit)

	_, err = f.searcher.Search(context.Background(), "query", nil, 3, -0.1)
	assert.ErrorIs(t, err, core.ErrInvalidThreshold)

	assert.Zero(t, f.embedder.CallCount())
}

func TestSearcher_Search_FilterValidation(t *testing.T) {
	f := newSearchFixture(t)

	_, err := f.searcher.Search(context.Background(), "query", map[string]string{"region": "west"}, 3, 0.1)
	assert.ErrorIs(t, err, core.ErrUnknownField)

	_, err = f.searcher.Search(context.Background(), "query", map[string]string{"notes": "cargo"}, 3, 0.1)
	assert.ErrorIs(t, err, core.ErrFieldNotFilterable)

	assert.Zero(t, f.embedder.CallCount())
}

func TestSearcher_Search_ExactMatchFilter(t *testing.T) {
	f := newSearchFixture(t)
	f.queryVector([]float32{0.577, 0.577, 0.577})

	results, err := f.searcher.Search(context.Background(), "transport", map[string]string{"state": " maharashtra "}, 5, 0.1)
	require.NoError(t, err)
	require.Len(t, results, 2, "filtering is exact match, case and whitespace insensitive")
	for _, result := range results {
		assert.Equal(t, "Maharashtra", result.Record.Value(2))
	}
}

func TestSearcher_Search_FilterValueJoinsEmbedText(t *testing.T) {
	f := newSearchFixture(t)

	var embedded string
	f.embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		embedded = text
		return []float32{1, 0, 0}, nil
	}

	_, err := f.searcher.Search(context.Background(), "fragile goods", map[string]string{"state": "Maharashtra"}, 3, 0.1)
	require.NoError(t, err)
	assert.Equal(t, "fragile goods Maharashtra", embedded)
}

func TestSearcher_Search_HighThresholdReturnsEmpty(t *testing.T) {
	f := newSearchFixture(t)
	f.queryVector([]float32{0.8, 0.5, 0.33})

	results, err := f.searcher.Search(context.Background(), "freight services", nil, 3, 0.99)
	require.NoError(t, err, "no matches is not an error")
	assert.Empty(t, results)
}

func TestSearcher_Search_EmbedTimeout(t *testing.T) {
	f := newSearchFixture(t, WithEmbedTimeout(20*time.Millisecond))
	f.embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	}

	_, err := f.searcher.Search(context.Background(), "slow query", nil, 3, 0.1)
	assert.ErrorIs(t, err, ErrEmbedTimeout)
}

func TestSearcher_Search_ProviderFailureIsAnError(t *testing.T) {
	f := newSearchFixture(t)
	f.embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		return nil, ai.Permanent("embed text", errors.New("invalid api key"))
	}

	results, err := f.searcher.Search(context.Background(), "query", nil, 3, 0.1)
	require.Error(t, err, "provider failure must be distinguishable from no matches")
	assert.Contains(t, err.Error(), "embedding query")
	assert.Nil(t, results)
}

func TestSearcher_Search_ColdStartBuildsOnce(t *testing.T) {
	f := newSearchFixture(t)
	f.queryVector([]float32{1, 0, 0})

	_, err := f.searcher.Search(context.Background(), "first", nil, 3, 0.1)
	require.NoError(t, err)
	afterFirst := f.embedder.CallCount()

	_, err = f.searcher.Search(context.Background(), "second", nil, 3, 0.1)
	require.NoError(t, err)

	assert.Equal(t, afterFirst+1, f.embedder.CallCount(), "warm searches embed only the query")
}

type recordingMonitor struct {
	stages []string
}

func (m *recordingMonitor) Start(_ string)                     { m.stages = append(m.stages, "start") }
func (m *recordingMonitor) AfterEmbed(_ []float32)             { m.stages = append(m.stages, "embed") }
func (m *recordingMonitor) AfterRank(_ []*core.SearchResult)   { m.stages = append(m.stages, "rank") }
func (m *recordingMonitor) AfterFilter(_ []*core.SearchResult) { m.stages = append(m.stages, "filter") }
func (m *recordingMonitor) Finish(_ []*core.SearchResult)      { m.stages = append(m.stages, "finish") }

func TestSearcher_SearchWithMonitor_Stages(t *testing.T) {
	f := newSearchFixture(t)
	f.queryVector([]float32{0.577, 0.577, 0.577})
	monitor := &recordingMonitor{}

	_, err := f.searcher.SearchWithMonitor(context.Background(), "transport", map[string]string{"state": "Gujarat"}, 3, 0.1, monitor)
	require.NoError(t, err)
	assert.Equal(t, []string{"start", "embed", "rank", "filter", "finish"}, monitor.stages)

	monitor.stages = nil
	_, err = f.searcher.SearchWithMonitor(context.Background(), "transport", nil, 3, 0.1, monitor)
	require.NoError(t, err)
	assert.Equal(t, []string{"start", "embed", "rank", "finish"}, monitor.stages, "no filter stage without filters")
}
