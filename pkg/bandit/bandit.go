// Package bandit implements the multi-armed bandit environment: a fixed
// collection of reward-generating arms that a policy pulls from.
package bandit

import (
	"fmt"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/banditlab/banditlab/pkg/core"
	"github.com/banditlab/banditlab/pkg/dist"
)

// Arm is one selectable action's reward source. Sample draws one independent
// reward; Mean exposes the true expected reward, which only offline analysis
// may look at — policies must learn it from samples.
type Arm interface {
	Sample() float64
	Mean() float64
}

// Bandit is an immutable ordered collection of arms. Action indices are
// stable integers 0..K-1 for the bandit's lifetime.
type Bandit struct {
	arms    []Arm
	optimal float64
}

// New creates a bandit from the given arms. At least one arm is required.
func New(arms []Arm) (*Bandit, error) {
	if len(arms) < 1 {
		return nil, fmt.Errorf("%w: bandit needs at least one arm", core.ErrInvalidArgument)
	}
	b := &Bandit{
		arms:    make([]Arm, len(arms)),
		optimal: arms[0].Mean(),
	}
	copy(b.arms, arms)
	for _, arm := range arms[1:] {
		if m := arm.Mean(); m > b.optimal {
			b.optimal = m
		}
	}
	return b, nil
}

// NewGaussian builds a k-armed bandit whose arm means are themselves drawn
// from a standard normal distribution and whose spread is 1. Drawing the
// means from a reference distribution is what randomizes bandit instances
// across evaluation runs.
func NewGaussian(k int, src rand.Source) (*Bandit, error) {
	if k < 1 {
		return nil, fmt.Errorf("%w: arm count %d must be >= 1", core.ErrInvalidArgument, k)
	}
	ref := distuv.Normal{Mu: 0, Sigma: 1, Src: src}
	arms := make([]Arm, k)
	for i := range arms {
		arm, err := dist.NewGaussian(ref.Rand(), 1.0, src)
		if err != nil {
			return nil, fmt.Errorf("failed to create arm %d: %w", i, err)
		}
		arms[i] = arm
	}
	return New(arms)
}

// Actions returns the valid action indices 0..K-1, in order. The returned
// slice is a fresh copy.
func (b *Bandit) Actions() []int {
	actions := make([]int, len(b.arms))
	for i := range actions {
		actions[i] = i
	}
	return actions
}

// NumArms returns the number of arms K.
func (b *Bandit) NumArms() int {
	return len(b.arms)
}

// Pull draws one independent reward sample from the chosen arm. Two pulls of
// the same action are independent draws, never memoized.
func (b *Bandit) Pull(action int) (float64, error) {
	if action < 0 || action >= len(b.arms) {
		return 0, fmt.Errorf("%w: action %d not in [0,%d)", core.ErrIndexOutOfRange, action, len(b.arms))
	}
	return b.arms[action].Sample(), nil
}

// OptimalExpectedValue returns the maximum true mean across all arms. It is
// exact, not sampled, and exists for offline regret analysis only.
func (b *Bandit) OptimalExpectedValue() float64 {
	return b.optimal
}
