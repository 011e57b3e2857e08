// Package evaluate estimates the expected cumulative reward of a policy by
// running it against many independently generated bandits.
package evaluate

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"golang.org/x/exp/rand"
	"golang.org/x/sync/errgroup"

	"github.com/banditlab/banditlab/internal/stats"
	"github.com/banditlab/banditlab/pkg/bandit"
	"github.com/banditlab/banditlab/pkg/config"
	"github.com/banditlab/banditlab/pkg/core"
	"github.com/banditlab/banditlab/pkg/policy"
	"github.com/banditlab/banditlab/pkg/progress"
)

// confidence level for the reported interval
const confidenceLevel = 0.95

// Result summarizes one evaluation of an exploration rate.
type Result struct {
	ID                  string  // evaluation ID, shared by all runs
	Epsilon             float64 // exploration rate evaluated
	Runs                int     // number of independent runs aggregated
	MeanTotalReward     float64 // sample mean of per-run total rewards
	ConfidenceHalfWidth float64 // 95% Student-t half-width around the mean
	MeanRegret          float64 // mean expected regret against each run's best arm
}

// Evaluator runs repeated independent trials of an epsilon-greedy policy
// against freshly generated Gaussian bandits.
type Evaluator struct {
	cfg       config.Config
	publisher progress.Publisher
}

// EvaluatorOption configures an Evaluator.
type EvaluatorOption func(*Evaluator)

// WithPublisher makes the evaluator publish a progress event after each
// completed run. Publish failures are logged, never fatal.
func WithPublisher(p progress.Publisher) EvaluatorOption {
	return func(e *Evaluator) {
		e.publisher = p
	}
}

// NewEvaluator creates an evaluator for the given configuration.
func NewEvaluator(cfg config.Config, opts ...EvaluatorOption) (*Evaluator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid evaluator config: %w", err)
	}
	e := &Evaluator{cfg: cfg}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Evaluate runs NumRuns independent trials at the given exploration rate
// and aggregates the per-run total rewards into a mean with a 95%
// confidence half-width. Every run gets a fresh bandit, a fresh policy, and
// its own random stream derived from the base seed and the run index, so
// results are reproducible for a fixed seed regardless of the worker count.
// Cancelling ctx aborts runs that have not started and returns the context
// error; no partial statistics are reported.
func (e *Evaluator) Evaluate(ctx context.Context, epsilon float64) (Result, error) {
	if epsilon < 0 || epsilon > 1 {
		return Result{}, fmt.Errorf("%w: exploration rate %v not in [0,1]", core.ErrInvalidArgument, epsilon)
	}

	id := uuid.New().String()
	collected := newResults(e.cfg.NumRuns)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.cfg.Workers)
	for run := 0; run < e.cfg.NumRuns; run++ {
		run := run
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			t, err := e.runTrial(epsilon, runSeed(e.cfg.Seed, run))
			if err != nil {
				return fmt.Errorf("run %d failed: %w", run, err)
			}
			collected.set(run, t)
			e.publish(id, epsilon, run, t)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	mean, halfWidth, err := stats.MeanHalfWidth(collected.totals(), confidenceLevel)
	if err != nil {
		return Result{}, err
	}
	return Result{
		ID:                  id,
		Epsilon:             epsilon,
		Runs:                e.cfg.NumRuns,
		MeanTotalReward:     mean,
		ConfidenceHalfWidth: halfWidth,
		MeanRegret:          stats.Mean(collected.regrets()),
	}, nil
}

// Sweep evaluates each exploration rate in turn and returns one Result per
// rate, in input order.
func (e *Evaluator) Sweep(ctx context.Context, epsilons []float64) ([]Result, error) {
	if len(epsilons) == 0 {
		return nil, fmt.Errorf("%w: sweep needs at least one exploration rate", core.ErrInvalidArgument)
	}
	results := make([]Result, 0, len(epsilons))
	for _, epsilon := range epsilons {
		res, err := e.Evaluate(ctx, epsilon)
		if err != nil {
			return nil, fmt.Errorf("failed to evaluate epsilon %v: %w", epsilon, err)
		}
		log.Printf("epsilon %.3f: mean total reward %.2f ± %.2f over %d runs",
			res.Epsilon, res.MeanTotalReward, res.ConfidenceHalfWidth, res.Runs)
		results = append(results, res)
	}
	return results, nil
}

// runTrial plays one fresh policy against one fresh bandit and reports the
// totals. The bandit's optimal expected value is read here, offline — the
// policy only ever sees sampled rewards.
func (e *Evaluator) runTrial(epsilon float64, seed uint64) (trial, error) {
	src := rand.NewSource(seed)
	b, err := bandit.NewGaussian(e.cfg.ArmCount, src)
	if err != nil {
		return trial{}, err
	}
	p, err := policy.NewEpsilonGreedy(b, epsilon, src)
	if err != nil {
		return trial{}, err
	}
	total, err := p.Run(e.cfg.AttemptsPerRun)
	if err != nil {
		return trial{}, err
	}
	return trial{
		total:   total,
		optimal: float64(e.cfg.AttemptsPerRun) * b.OptimalExpectedValue(),
	}, nil
}

func (e *Evaluator) publish(id string, epsilon float64, run int, t trial) {
	if e.publisher == nil {
		return
	}
	err := e.publisher.Publish(progress.Event{
		EvaluationID: id,
		Epsilon:      epsilon,
		Run:          run,
		TotalReward:  t.total,
		Timestamp:    time.Now(),
	})
	if err != nil {
		log.Printf("Failed to publish progress event: %v", err)
	}
}

// runSeed derives a per-run seed from the base seed and the run index using
// a splitmix64 round, keeping the streams of different runs apart even for
// small consecutive seeds.
func runSeed(base uint64, run int) uint64 {
	z := base + uint64(run+1)*0x9e3779b97f4a7c15
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}
