// Package stats provides a unified interface for collecting solver
// metrics.
package stats

// Metric names used throughout the solver.
const (
	MetricExpanded   = "freecell_nodes_expanded_total"
	MetricIntake     = "freecell_nodes_received_total"
	MetricDuplicates = "freecell_duplicates_dropped_total"
	MetricPruned     = "freecell_pruned_dropped_total"
	MetricEvictions  = "freecell_evictions_total"
	MetricSolutions  = "freecell_solutions_found_total"
	MetricLevelSize  = "freecell_level_size"
	MetricUpperbound = "freecell_upperbound"
)

// Collector defines the interface for collecting metrics.
type Collector interface {
	// IncCounter increments a counter metric by delta.
	IncCounter(name string, delta int64)

	// SetGauge sets a gauge metric to value.
	SetGauge(name string, value int64)
}

// Noop is a collector that discards everything.
type Noop struct{}

var _ Collector = Noop{}

func (Noop) IncCounter(string, int64) {}
func (Noop) SetGauge(string, int64)   {}
