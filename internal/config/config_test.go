package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stringEvolution/internal/ga"
	"stringEvolution/internal/sa"
)

func TestDefault_IsValid(t *testing.T) {
	assert.NoError(t, Default().Validate())
}

func TestDecode_OverlaysDefaults(t *testing.T) {
	const doc = `
target: "Hello Go!"
seed: 7
ga:
  population: 250
  mutation_rate: 0.02
  max_generations: 10000
sa:
  neighborhood: swap
bench:
  targets: ["AB", "xyz"]
  runs: 5
  per_run_timeout: 30s
log:
  level: debug
  format: json
`
	f, err := Decode(strings.NewReader(doc))
	require.NoError(t, err)

	assert.Equal(t, "Hello Go!", f.Target)
	assert.Equal(t, int64(7), f.Seed)
	assert.Equal(t, 250, f.GA.PopulationSize)
	assert.Equal(t, 0.02, f.GA.MutationRate)
	assert.Equal(t, ga.DefaultConfig().CrossoverRate, f.GA.CrossoverRate)
	assert.Equal(t, 10000, f.GA.MaxGenerations)
	assert.Equal(t, sa.NeighborhoodSwap, f.SA.Neighborhood)
	assert.Equal(t, sa.DefaultConfig().Alpha, f.SA.Alpha)
	assert.Equal(t, []string{"AB", "xyz"}, f.Bench.Targets)
	assert.Equal(t, 5, f.Bench.Runs)
	assert.Equal(t, 30*time.Second, f.Bench.PerRunTimeout)
	assert.Equal(t, []string{"GA", "SA"}, f.Bench.Algos)
	assert.Equal(t, "debug", f.Log.Level)
	assert.Equal(t, "json", f.Log.Format)
}

func TestDecode_Empty(t *testing.T) {
	f, err := Decode(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, Default(), f)
}

func TestDecode_Errors(t *testing.T) {
	tests := map[string]string{
		"unknown key":      "ga:\n  elite: 4\n",
		"invalid rate":     "ga:\n  crossover_rate: 1.5\n",
		"zero population":  "ga:\n  population: 0\n",
		"bad neighborhood": "sa:\n  neighborhood: insert\n",
		"zero runs":        "bench:\n  runs: 0\n",
		"bad log level":    "log:\n  level: loud\n",
		"malformed":        "ga: [1, 2\n",
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(doc))
			assert.Error(t, err)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "evolve.yaml")
	require.NoError(t, os.WriteFile(path, []byte("target: AB\nga:\n  population: 64\n"), 0o644))

	f, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "AB", f.Target)
	assert.Equal(t, 64, f.GA.PopulationSize)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
