package engine

import "github.com/prometheus/client_golang/prometheus"

// The two counters spec §6 names explicitly: "seq num splits" and "seq
// num reductions". They are exposed as prometheus counters the way the
// teacher's pkg/metrics package registers its package-level counters, so
// a host embedding the engine in a long-lived process can scrape them.
var (
	numSplitsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "seq_num_splits",
		Help: "Number of case splits introduced by the sequence theory branching engine.",
	})
	numReductionsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "seq_num_reductions",
		Help: "Number of equations discharged by simplification or unit solving.",
	})
)

func init() {
	prometheus.MustRegister(numSplitsTotal, numReductionsTotal)
}

// Statistics is a point-in-time snapshot, returned by
// Theory.CollectStatistics (spec §6, collect_statistics(&st)).
type Statistics struct {
	NumSplits     uint64
	NumReductions uint64
}

// stats is the per-Theory counter state mirrored into the package-level
// prometheus counters on every increment.
type stats struct {
	numSplits     uint64
	numReductions uint64
}

func (s *stats) split() {
	s.numSplits++
	numSplitsTotal.Inc()
}

func (s *stats) reduction() {
	s.numReductions++
	numReductionsTotal.Inc()
}

func (s *stats) snapshot() Statistics {
	return Statistics{NumSplits: s.numSplits, NumReductions: s.numReductions}
}
