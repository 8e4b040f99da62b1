package document

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vendisearch/vendisearch/core"
)

func testSchema() *core.Schema {
	return &core.Schema{
		Version: "1",
		Fields: []core.FieldDefinition{
			{Index: 0, Name: "name", Label: "Business Name", Type: core.FieldTypeText, Searchable: true, Weight: 6, InCard: true},
			{Index: 1, Name: "city", Label: "City", Type: core.FieldTypeText, Searchable: true, Weight: 12, InCard: true, Filterable: true},
			{Index: 2, Name: "notes", Label: "Notes", Type: core.FieldTypeText, Searchable: true, Weight: 3},
			{Index: 3, Name: "phone", Label: "Phone", Type: core.FieldTypeText, InCard: true},
		},
	}
}

func testKeywords() core.KeywordSet {
	return core.KeywordSet{
		"electronic": {"electronics transport", "electronics delivery"},
		"textile":    {"textile transport"},
	}
}

func newTestComposer(t *testing.T, repetition int) *Composer {
	t.Helper()
	c, err := NewComposer(testSchema(), testKeywords(), repetition)
	require.NoError(t, err)
	return c
}

func TestNewComposer_InvalidSchema(t *testing.T) {
	_, err := NewComposer(&core.Schema{}, nil, 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrInvalidSchema)
}

func TestCompose_WeightedRepetition(t *testing.T) {
	c := newTestComposer(t, 2)
	record := &core.Record{Id: 1, Fields: []string{"Sharma Transport", "Mumbai", "", "98200"}}

	text := c.Compose(record)

	assert.Equal(t, 6, strings.Count(text, "Business Name: Sharma Transport"))
	assert.Equal(t, 12, strings.Count(text, "City: Mumbai"))
	// Non-searchable phone never appears.
	assert.NotContains(t, text, "98200")
	// Empty notes contribute nothing.
	assert.NotContains(t, text, "Notes:")
}

func TestCompose_Deterministic(t *testing.T) {
	c := newTestComposer(t, 2)
	record := &core.Record{Id: 1, Fields: []string{"Sharma Transport", "Mumbai", "electronics and textile loads", ""}}

	first := c.Compose(record)
	for i := 0; i < 5; i++ {
		require.Equal(t, first, c.Compose(record))
	}
}

func TestCompose_KeywordVariants(t *testing.T) {
	c := newTestComposer(t, 3)
	record := &core.Record{Id: 1, Fields: []string{"Patel Movers", "Surat", "electronics specialist", ""}}

	text := c.Compose(record)

	assert.Equal(t, 3, strings.Count(text, "electronics delivery"))
	// "electronics transport" appears once per repetition; the substring
	// is not produced by any field fragment in this record.
	assert.Equal(t, 3, strings.Count(text, "electronics transport"))
	assert.NotContains(t, text, "textile transport")
}

func TestCompose_TopicsInSortedOrder(t *testing.T) {
	c := newTestComposer(t, 1)
	record := &core.Record{Id: 1, Fields: []string{"Patel Movers", "Surat", "textile and electronic goods", ""}}

	text := c.Compose(record)

	// "electronic" sorts before "textile"; variants must follow that order.
	e := strings.Index(text, "electronics transport")
	x := strings.Index(text, "textile transport")
	require.GreaterOrEqual(t, e, 0)
	require.GreaterOrEqual(t, x, 0)
	assert.Less(t, e, x)
}

func TestCompose_WhitespaceCollapsed(t *testing.T) {
	c := newTestComposer(t, 1)
	record := &core.Record{Id: 1, Fields: []string{"  Sharma   Transport ", "Mumbai", "", ""}}

	text := c.Compose(record)

	assert.NotContains(t, text, "  ")
	assert.Contains(t, text, "Business Name: Sharma Transport")
}

func TestMatchedTopics(t *testing.T) {
	c := newTestComposer(t, 1)

	tests := []struct {
		name string
		text string
		want []string
	}{
		{name: "substring match", text: "need electronics transport urgently", want: []string{"electronic"}},
		{name: "case insensitive", text: "ELECTRONIC goods", want: []string{"electronic"}},
		{name: "multiple sorted", text: "textile and electronic", want: []string{"electronic", "textile"}},
		{name: "no match", text: "general cargo", want: nil},
		{name: "empty text", text: "", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.MatchedTopics(tt.text))
		})
	}
}

func TestSearchText(t *testing.T) {
	c := newTestComposer(t, 1)
	record := &core.Record{Id: 1, Fields: []string{"Sharma Transport", "Mumbai", "", "98200"}}

	got := c.SearchText(record)

	assert.Equal(t, "sharma transport mumbai", got)
}
