package evaluate

import "sync"

// trial is the outcome of one independent evaluation run.
type trial struct {
	total   float64 // total reward the policy accumulated
	optimal float64 // best achievable expected total for the run's bandit
}

// results collects per-run trials from concurrent workers. Slots are
// pre-allocated so each run writes its own index and ordering never depends
// on scheduling.
type results struct {
	trials []trial
	mu     sync.Mutex
}

func newResults(runs int) *results {
	return &results{
		trials: make([]trial, runs),
	}
}

func (r *results) set(run int, t trial) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.trials[run] = t
}

// totals returns a copy of the per-run total rewards, in run order.
func (r *results) totals() []float64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	totals := make([]float64, len(r.trials))
	for i, t := range r.trials {
		totals[i] = t.total
	}
	return totals
}

// regrets returns a copy of the per-run expected regrets, in run order.
func (r *results) regrets() []float64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	regrets := make([]float64, len(r.trials))
	for i, t := range r.trials {
		regrets[i] = t.optimal - t.total
	}
	return regrets
}
