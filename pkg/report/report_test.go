package report

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banditlab/banditlab/pkg/evaluate"
)

func TestWriteSweepCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sweep.csv")
	results := []evaluate.Result{
		{Epsilon: 0, Runs: 100, MeanTotalReward: 512.5, ConfidenceHalfWidth: 10.25, MeanRegret: 90.0},
		{Epsilon: 0.1, Runs: 100, MeanTotalReward: 1201.0, ConfidenceHalfWidth: 8.5, MeanRegret: 40.5},
	}
	require.NoError(t, WriteSweepCSV(path, results))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Epsilon", "Runs", "MeanTotalReward", "ConfidenceHalfWidth", "MeanRegret"}, rows[0])
	assert.Equal(t, []string{"0", "100", "512.5", "10.25", "90"}, rows[1])
	assert.Equal(t, []string{"0.1", "100", "1201", "8.5", "40.5"}, rows[2])
}
