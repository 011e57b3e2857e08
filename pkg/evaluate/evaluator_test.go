package evaluate

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banditlab/banditlab/pkg/config"
	"github.com/banditlab/banditlab/pkg/core"
	"github.com/banditlab/banditlab/pkg/progress"
)

func testConfig() config.Config {
	cfg := config.Default()
	cfg.ArmCount = 5
	cfg.AttemptsPerRun = 100
	cfg.NumRuns = 200
	cfg.Seed = 42
	return cfg
}

func TestNewEvaluator(t *testing.T) {
	t.Run("rejects fewer than two runs", func(t *testing.T) {
		cfg := testConfig()
		cfg.NumRuns = 1
		_, err := NewEvaluator(cfg)
		require.Error(t, err)
		assert.True(t, errors.Is(err, core.ErrInvalidArgument))
	})
}

func TestEvaluate(t *testing.T) {
	t.Run("rejects exploration rate outside [0,1]", func(t *testing.T) {
		e, err := NewEvaluator(testConfig())
		require.NoError(t, err)
		for _, epsilon := range []float64{-0.1, 1.5} {
			_, err := e.Evaluate(context.Background(), epsilon)
			require.Error(t, err)
			assert.True(t, errors.Is(err, core.ErrInvalidArgument))
		}
	})

	t.Run("full exploration averages out near zero", func(t *testing.T) {
		// Arm means are standard-normal draws, so a uniformly random policy
		// has expected total reward 0. Per-run totals have stddev around
		// attempts/sqrt(arms) ≈ 45, so over 200 runs the mean lands well
		// within ±15 and the interval stays non-degenerate.
		e, err := NewEvaluator(testConfig())
		require.NoError(t, err)
		res, err := e.Evaluate(context.Background(), 1)
		require.NoError(t, err)

		assert.InDelta(t, 0, res.MeanTotalReward, 15)
		assert.Greater(t, res.ConfidenceHalfWidth, 0.0)
		assert.Equal(t, 200, res.Runs)
		assert.NotEmpty(t, res.ID)
	})

	t.Run("half-width shrinks as runs grow", func(t *testing.T) {
		small := testConfig()
		small.NumRuns = 50
		small.AttemptsPerRun = 50
		large := small
		large.NumRuns = 800

		eSmall, err := NewEvaluator(small)
		require.NoError(t, err)
		eLarge, err := NewEvaluator(large)
		require.NoError(t, err)

		resSmall, err := eSmall.Evaluate(context.Background(), 1)
		require.NoError(t, err)
		resLarge, err := eLarge.Evaluate(context.Background(), 1)
		require.NoError(t, err)

		assert.Less(t, resLarge.ConfidenceHalfWidth, resSmall.ConfidenceHalfWidth)
	})

	t.Run("zero attempts yields a degenerate but valid result", func(t *testing.T) {
		cfg := testConfig()
		cfg.AttemptsPerRun = 0
		cfg.NumRuns = 10
		e, err := NewEvaluator(cfg)
		require.NoError(t, err)
		res, err := e.Evaluate(context.Background(), 0.1)
		require.NoError(t, err)
		assert.Equal(t, 0.0, res.MeanTotalReward)
		assert.Equal(t, 0.0, res.ConfidenceHalfWidth)
	})

	t.Run("regret is non-negative in expectation", func(t *testing.T) {
		e, err := NewEvaluator(testConfig())
		require.NoError(t, err)
		res, err := e.Evaluate(context.Background(), 1)
		require.NoError(t, err)
		// A random policy cannot beat always pulling the best arm.
		assert.Greater(t, res.MeanRegret, 0.0)
	})
}

func TestEvaluateParallel(t *testing.T) {
	t.Run("results are identical for any worker count", func(t *testing.T) {
		cfg := testConfig()
		cfg.NumRuns = 50
		cfg.AttemptsPerRun = 50

		sequential := cfg
		sequential.Workers = 1
		parallel := cfg
		parallel.Workers = 4

		eSeq, err := NewEvaluator(sequential)
		require.NoError(t, err)
		ePar, err := NewEvaluator(parallel)
		require.NoError(t, err)

		resSeq, err := eSeq.Evaluate(context.Background(), 0.1)
		require.NoError(t, err)
		resPar, err := ePar.Evaluate(context.Background(), 0.1)
		require.NoError(t, err)

		assert.Equal(t, resSeq.MeanTotalReward, resPar.MeanTotalReward)
		assert.Equal(t, resSeq.ConfidenceHalfWidth, resPar.ConfidenceHalfWidth)
		assert.Equal(t, resSeq.MeanRegret, resPar.MeanRegret)
	})

	t.Run("cancellation aborts without partial statistics", func(t *testing.T) {
		e, err := NewEvaluator(testConfig())
		require.NoError(t, err)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err = e.Evaluate(ctx, 0.1)
		require.Error(t, err)
		assert.True(t, errors.Is(err, context.Canceled))
	})
}

func TestEvaluatePublishesProgress(t *testing.T) {
	cfg := testConfig()
	cfg.NumRuns = 10
	cfg.AttemptsPerRun = 10

	broker := progress.NewBroker()
	t.Cleanup(broker.Reset)
	events := make(chan progress.Event, cfg.NumRuns)
	require.NoError(t, broker.Subscribe("test", events))

	e, err := NewEvaluator(cfg, WithPublisher(broker))
	require.NoError(t, err)
	res, err := e.Evaluate(context.Background(), 0.1)
	require.NoError(t, err)

	require.Len(t, events, cfg.NumRuns)
	seen := make(map[int]bool)
	for i := 0; i < cfg.NumRuns; i++ {
		event := <-events
		assert.Equal(t, res.ID, event.EvaluationID)
		assert.Equal(t, 0.1, event.Epsilon)
		seen[event.Run] = true
	}
	assert.Len(t, seen, cfg.NumRuns)
}

func TestSweep(t *testing.T) {
	t.Run("rejects an empty rate list", func(t *testing.T) {
		e, err := NewEvaluator(testConfig())
		require.NoError(t, err)
		_, err = e.Sweep(context.Background(), nil)
		require.Error(t, err)
		assert.True(t, errors.Is(err, core.ErrInvalidArgument))
	})

	t.Run("returns one result per rate in input order", func(t *testing.T) {
		cfg := testConfig()
		cfg.NumRuns = 20
		cfg.AttemptsPerRun = 20
		e, err := NewEvaluator(cfg)
		require.NoError(t, err)

		epsilons := []float64{0, 0.5, 1}
		results, err := e.Sweep(context.Background(), epsilons)
		require.NoError(t, err)
		require.Len(t, results, len(epsilons))
		for i, res := range results {
			assert.Equal(t, epsilons[i], res.Epsilon)
		}
	})
}
