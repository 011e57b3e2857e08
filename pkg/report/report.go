// Package report writes evaluation results to artifact files.
package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/banditlab/banditlab/pkg/evaluate"
)

// DefaultPath returns a timestamped CSV filename for a sweep artifact.
func DefaultPath() string {
	return fmt.Sprintf("sweep_stats_%s.csv", time.Now().Format("2006-01-02_15-04-05"))
}

// WriteSweepCSV writes one row per evaluated exploration rate, preserving
// sweep order.
func WriteSweepCSV(path string, results []evaluate.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create sweep file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := []string{"Epsilon", "Runs", "MeanTotalReward", "ConfidenceHalfWidth", "MeanRegret"}
	if err := w.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, res := range results {
		row := []string{
			strconv.FormatFloat(res.Epsilon, 'g', -1, 64),
			strconv.Itoa(res.Runs),
			strconv.FormatFloat(res.MeanTotalReward, 'g', -1, 64),
			strconv.FormatFloat(res.ConfidenceHalfWidth, 'g', -1, 64),
			strconv.FormatFloat(res.MeanRegret, 'g', -1, 64),
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}
	w.Flush()
	return w.Error()
}
