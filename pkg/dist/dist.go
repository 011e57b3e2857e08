// Package dist provides the reward distributions that bandit arms draw
// samples from.
package dist

import (
	"fmt"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/banditlab/banditlab/pkg/core"
)

// Gaussian is a normal reward distribution parameterized by mean and spread.
// It is immutable after construction; Sample only consumes entropy from the
// injected source.
type Gaussian struct {
	norm distuv.Normal
}

// NewGaussian creates a Gaussian reward distribution. spread must be
// strictly positive.
func NewGaussian(mean, spread float64, src rand.Source) (Gaussian, error) {
	if spread <= 0 {
		return Gaussian{}, fmt.Errorf("%w: spread %v must be > 0", core.ErrInvalidArgument, spread)
	}
	return Gaussian{
		norm: distuv.Normal{
			Mu:    mean,
			Sigma: spread,
			Src:   src,
		},
	}, nil
}

// Sample draws one independent value from the distribution.
func (g Gaussian) Sample() float64 {
	return g.norm.Rand()
}

// Mean returns the configured mean.
func (g Gaussian) Mean() float64 {
	return g.norm.Mu
}

// Spread returns the configured spread.
func (g Gaussian) Spread() float64 {
	return g.norm.Sigma
}
