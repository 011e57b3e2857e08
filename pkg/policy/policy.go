// Package policy implements action-selection strategies that balance
// exploration and exploitation against a bandit.
package policy

// Policy selects actions and learns from the rewards they produce. A policy
// instance is paired with exactly one bandit for its entire lifetime.
type Policy interface {
	// SelectAction returns the index of the next action to take.
	SelectAction() int
	// Observe records the reward obtained by taking action and updates the
	// policy's internal estimates.
	Observe(action int, reward float64)
	// TotalReward returns the cumulative reward observed so far.
	TotalReward() float64
}
