package search

import "github.com/vendisearch/vendisearch/core"

// SearchMonitor provides hooks to observe the search process.
// Implement this interface to track intermediate steps and results during search.
type SearchMonitor interface {
	Start(query string)
	AfterEmbed(vector []float32)
	AfterRank(results []*core.SearchResult)
	AfterFilter(results []*core.SearchResult)
	Finish(results []*core.SearchResult)
}

// noopMonitor is a no-op implementation of SearchMonitor
type noopMonitor struct{}

var _ SearchMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string)                     {}
func (n *noopMonitor) AfterEmbed(_ []float32)             {}
func (n *noopMonitor) AfterRank(_ []*core.SearchResult)   {}
func (n *noopMonitor) AfterFilter(_ []*core.SearchResult) {}
func (n *noopMonitor) Finish(_ []*core.SearchResult)      {}
