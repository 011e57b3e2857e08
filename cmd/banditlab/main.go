package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/banditlab/banditlab/pkg/config"
	"github.com/banditlab/banditlab/pkg/evaluate"
	"github.com/banditlab/banditlab/pkg/progress"
	"github.com/banditlab/banditlab/pkg/report"
)

var (
	flagEpsilon  float64
	flagEpsilons []float64
	flagArms     int
	flagAttempts int
	flagRuns     int
	flagWorkers  int
	flagSeed     uint64
	flagCSV      string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "banditlab",
		Short: "banditlab simulates multi-armed bandit problems to compare action-selection strategies under uncertainty.",
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Evaluate a single exploration rate over many independent runs",
		RunE:  runEvaluation,
	}
	runCmd.Flags().Float64Var(&flagEpsilon, "epsilon", 0.1, "exploration rate in [0,1]")

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "Evaluate a list of exploration rates and report mean reward with confidence bounds for each",
		RunE:  runSweep,
	}
	sweepCmd.Flags().Float64SliceVar(&flagEpsilons, "epsilons", []float64{0, 0.01, 0.1}, "exploration rates to sweep")
	sweepCmd.Flags().StringVar(&flagCSV, "csv", "", "write sweep results to this CSV file (defaults to a timestamped name)")

	for _, cmd := range []*cobra.Command{runCmd, sweepCmd} {
		cmd.Flags().IntVar(&flagArms, "arms", 0, "arms per generated bandit")
		cmd.Flags().IntVar(&flagAttempts, "attempts", 0, "steps per run")
		cmd.Flags().IntVar(&flagRuns, "runs", 0, "independent runs per evaluation")
		cmd.Flags().IntVar(&flagWorkers, "workers", 0, "concurrent runs")
		cmd.Flags().Uint64Var(&flagSeed, "seed", 0, "base random seed (omit for a time-based seed)")
	}

	for _, envFile := range []string{
		".env",
		"../../.env",
		"../../../.env",
	} {
		if err := godotenv.Load(envFile); err == nil {
			break
		}
	}

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(sweepCmd)
	rootCmd.Execute()
}

// loadConfig builds the effective configuration: defaults, then BANDITLAB_*
// environment variables, then any flags the user set.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg := config.Default()
	if err := config.ApplyEnv(&cfg); err != nil {
		return config.Config{}, err
	}
	if cmd.Flags().Changed("arms") {
		cfg.ArmCount = flagArms
	}
	if cmd.Flags().Changed("attempts") {
		cfg.AttemptsPerRun = flagAttempts
	}
	if cmd.Flags().Changed("runs") {
		cfg.NumRuns = flagRuns
	}
	if cmd.Flags().Changed("workers") {
		cfg.Workers = flagWorkers
	}
	if cmd.Flags().Changed("seed") {
		cfg.Seed = flagSeed
	} else if os.Getenv("BANDITLAB_SEED") == "" {
		cfg.Seed = uint64(time.Now().UnixNano())
	}
	return cfg, cfg.Validate()
}

// evaluationContext cancels on interrupt so in-flight runs stop promptly.
func evaluationContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt)
	go func() {
		<-sigChan
		cancel()
	}()

	return ctx, cancel
}

// watchProgress logs a line every interval completed runs.
func watchProgress(ctx context.Context, broker *progress.Broker, interval int) error {
	events := make(chan progress.Event, 100)
	if err := broker.Subscribe("cli", events); err != nil {
		return err
	}
	go func() {
		defer broker.Unsubscribe("cli")
		completed := 0
		for {
			select {
			case e := <-events:
				completed++
				if completed%interval == 0 {
					log.Printf("epsilon %.3f: completed %d runs", e.Epsilon, completed)
				}
			case <-ctx.Done():
				return
			}
		}
	}()
	return nil
}

func runEvaluation(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	ctx, cancel := evaluationContext()
	defer cancel()

	broker := progress.NewBroker()
	defer broker.Reset()
	if err := watchProgress(ctx, broker, 100); err != nil {
		return err
	}

	evaluator, err := evaluate.NewEvaluator(cfg, evaluate.WithPublisher(broker))
	if err != nil {
		return err
	}

	log.Printf("Evaluating epsilon %.3f: %d runs of %d attempts on %d-armed bandits (seed %d)",
		flagEpsilon, cfg.NumRuns, cfg.AttemptsPerRun, cfg.ArmCount, cfg.Seed)
	res, err := evaluator.Evaluate(ctx, flagEpsilon)
	if err != nil {
		return fmt.Errorf("evaluation failed: %v", err)
	}

	fmt.Printf("epsilon=%.3f mean_total_reward=%.3f ± %.3f (95%% CI, %d runs) mean_regret=%.3f\n",
		res.Epsilon, res.MeanTotalReward, res.ConfidenceHalfWidth, res.Runs, res.MeanRegret)
	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	ctx, cancel := evaluationContext()
	defer cancel()

	evaluator, err := evaluate.NewEvaluator(cfg)
	if err != nil {
		return err
	}

	log.Printf("Sweeping %d exploration rates: %d runs of %d attempts each (seed %d)",
		len(flagEpsilons), cfg.NumRuns, cfg.AttemptsPerRun, cfg.Seed)
	results, err := evaluator.Sweep(ctx, flagEpsilons)
	if err != nil {
		return fmt.Errorf("sweep failed: %v", err)
	}

	fmt.Printf("%-10s %-20s %-15s %s\n", "epsilon", "mean_total_reward", "half_width", "mean_regret")
	for _, res := range results {
		fmt.Printf("%-10.3f %-20.3f %-15.3f %.3f\n",
			res.Epsilon, res.MeanTotalReward, res.ConfidenceHalfWidth, res.MeanRegret)
	}

	path := flagCSV
	if path == "" {
		path = report.DefaultPath()
	}
	if err := report.WriteSweepCSV(path, results); err != nil {
		return fmt.Errorf("failed to write CSV: %v", err)
	}
	log.Printf("Wrote sweep results to %s", path)
	return nil
}
