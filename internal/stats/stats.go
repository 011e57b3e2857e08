// Package stats computes the summary statistics reported by the evaluator.
package stats

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/banditlab/banditlab/pkg/core"
)

// MeanHalfWidth returns the sample mean of samples together with the
// half-width of the two-sided confidence interval at the given confidence
// level (e.g. 0.95), using Student's t-distribution with len(samples)-1
// degrees of freedom and the standard error of the mean. At least two
// samples are required for the interval to be defined.
func MeanHalfWidth(samples []float64, confidence float64) (mean, halfWidth float64, err error) {
	n := len(samples)
	if n < 2 {
		return 0, 0, fmt.Errorf("%w: need at least 2 samples for a t-interval, got %d", core.ErrInvalidArgument, n)
	}
	if confidence <= 0 || confidence >= 1 {
		return 0, 0, fmt.Errorf("%w: confidence %v not in (0,1)", core.ErrInvalidArgument, confidence)
	}
	mean = stat.Mean(samples, nil)
	sem := stat.StdDev(samples, nil) / math.Sqrt(float64(n))
	t := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(n - 1)}
	halfWidth = t.Quantile(0.5+confidence/2) * sem
	return mean, halfWidth, nil
}

// Mean returns the arithmetic mean of samples.
func Mean(samples []float64) float64 {
	return stat.Mean(samples, nil)
}
