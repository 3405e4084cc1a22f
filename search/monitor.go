package search

import (
	"github.com/poiesic/recall/ai"
	"github.com/poiesic/recall/core"
)

// SearchMonitor provides hooks to observe the search pipeline.
// Implement this interface to track intermediate steps and results.
type SearchMonitor interface {
	Start(query string)
	AfterEmbedding(vector []float32)
	AfterRanking(results []*core.SearchResult)
	AfterRouting(routing ai.Routing)
	AfterFiltering(notes []*core.Note)
	AfterSynthesis(answer string)
	Finish(result *core.QueryResult)
}

// noopMonitor is a no-op implementation of SearchMonitor
type noopMonitor struct{}

var _ SearchMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string)                      {}
func (n *noopMonitor) AfterEmbedding(_ []float32)          {}
func (n *noopMonitor) AfterRanking(_ []*core.SearchResult) {}
func (n *noopMonitor) AfterRouting(_ ai.Routing)           {}
func (n *noopMonitor) AfterFiltering(_ []*core.Note)       {}
func (n *noopMonitor) AfterSynthesis(_ string)             {}
func (n *noopMonitor) Finish(_ *core.QueryResult)          {}
