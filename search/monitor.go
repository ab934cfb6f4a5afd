package search

import "github.com/poiesic/checkdex/core"

// SearchMonitor provides hooks to observe the search pipeline.
// Implement this interface to track intermediate steps and results
// during a scored search.
type SearchMonitor interface {
	Start(query string)
	DomainResolved(domain string, detected bool)
	RowsLoaded(count int)
	IndexBuilt(terms int, avgDocLen float64)
	Scored(ranked []DocScore)
	Finish(report *core.Report)
}

// noopMonitor is a no-op implementation of SearchMonitor
type noopMonitor struct{}

var _ SearchMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string)                  {}
func (n *noopMonitor) DomainResolved(_ string, _ bool) {}
func (n *noopMonitor) RowsLoaded(_ int)                {}
func (n *noopMonitor) IndexBuilt(_ int, _ float64)     {}
func (n *noopMonitor) Scored(_ []DocScore)             {}
func (n *noopMonitor) Finish(_ *core.Report)           {}
