package policy

import (
	"fmt"

	"golang.org/x/exp/rand"

	"github.com/banditlab/banditlab/pkg/bandit"
	"github.com/banditlab/banditlab/pkg/core"
)

// EpsilonGreedy explores a uniformly random action with probability epsilon
// and otherwise exploits the action with the highest current reward
// estimate. Estimates use the sample-average update with step size 1/n, so
// they converge to the true arm means as visits grow.
type EpsilonGreedy struct {
	epsilon     float64
	decayN0     float64 // 0 disables the decay schedule
	bandit      *bandit.Bandit
	rng         *rand.Rand
	estimates   []float64
	visits      []int
	steps       int
	totalReward float64
}

var _ Policy = (*EpsilonGreedy)(nil)

// Option configures an EpsilonGreedy policy.
type Option func(*EpsilonGreedy)

// WithEpsilonDecay replaces the constant exploration rate with the schedule
// n0/(n0 + steps), so exploration fades as the policy gathers experience.
func WithEpsilonDecay(n0 float64) Option {
	return func(p *EpsilonGreedy) {
		p.decayN0 = n0
	}
}

// NewEpsilonGreedy creates an epsilon-greedy policy bound to b. epsilon must
// be in [0,1]. All estimates and visit counts start at zero.
func NewEpsilonGreedy(b *bandit.Bandit, epsilon float64, src rand.Source, opts ...Option) (*EpsilonGreedy, error) {
	if epsilon < 0 || epsilon > 1 {
		return nil, fmt.Errorf("%w: exploration rate %v not in [0,1]", core.ErrInvalidArgument, epsilon)
	}
	p := &EpsilonGreedy{
		epsilon:   epsilon,
		bandit:    b,
		rng:       rand.New(src),
		estimates: make([]float64, b.NumArms()),
		visits:    make([]int, b.NumArms()),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// exploration returns the probability of exploring on the next step.
func (p *EpsilonGreedy) exploration() float64 {
	if p.decayN0 > 0 {
		return p.decayN0 / (p.decayN0 + float64(p.steps))
	}
	return p.epsilon
}

// SelectAction picks the next action: a uniformly random one with
// probability epsilon, otherwise the action with the highest estimate.
// Ties on the maximum estimate resolve to the lowest action index (the
// argmax is a linear scan keeping the first maximum), so a fresh policy
// with exploration disabled deterministically starts at action 0.
func (p *EpsilonGreedy) SelectAction() int {
	if p.rng.Float64() < p.exploration() {
		return p.rng.Intn(len(p.estimates))
	}
	best := 0
	for a := 1; a < len(p.estimates); a++ {
		if p.estimates[a] > p.estimates[best] {
			best = a
		}
	}
	return best
}

// Observe folds one reward into the estimate for action using the
// sample-average step size 1/n.
func (p *EpsilonGreedy) Observe(action int, reward float64) {
	p.visits[action]++
	alpha := 1 / float64(p.visits[action])
	p.estimates[action] += alpha * (reward - p.estimates[action])
	p.totalReward += reward
	p.steps++
}

// Step performs one select-pull-update cycle against the bound bandit.
func (p *EpsilonGreedy) Step() error {
	action := p.SelectAction()
	reward, err := p.bandit.Pull(action)
	if err != nil {
		return err
	}
	p.Observe(action, reward)
	return nil
}

// Run performs attempts sequential steps and returns the final cumulative
// reward. attempts must be non-negative.
func (p *EpsilonGreedy) Run(attempts int) (float64, error) {
	if attempts < 0 {
		return 0, fmt.Errorf("%w: attempts %d must be >= 0", core.ErrInvalidArgument, attempts)
	}
	for i := 0; i < attempts; i++ {
		if err := p.Step(); err != nil {
			return 0, fmt.Errorf("step %d failed: %w", i, err)
		}
	}
	return p.totalReward, nil
}

// TotalReward returns the cumulative reward observed so far.
func (p *EpsilonGreedy) TotalReward() float64 {
	return p.totalReward
}

// Estimates returns a copy of the current per-action reward estimates.
func (p *EpsilonGreedy) Estimates() []float64 {
	estimates := make([]float64, len(p.estimates))
	copy(estimates, p.estimates)
	return estimates
}

// Visits returns a copy of the current per-action visit counts.
func (p *EpsilonGreedy) Visits() []int {
	visits := make([]int, len(p.visits))
	copy(visits, p.visits)
	return visits
}
