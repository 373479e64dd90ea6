package main

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"io"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stringEvolution/internal/ga"
	"stringEvolution/internal/logging"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRun_PrintsGenerationsUntilMatch(t *testing.T) {
	out, err := execute(t, "run", "--target", "AB", "--seed", "3", "--pop", "60", "--mut", "0.05", "--max-gen", "50000", "--log-level", "error")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.NotEmpty(t, lines)
	assert.True(t, strings.HasPrefix(lines[0], "Generation 0, size: 60\tFittest: "), lines[0])
	assert.True(t, strings.HasSuffix(lines[len(lines)-1], "Fittest: AB (0)"), lines[len(lines)-1])
}

func TestRun_Quiet(t *testing.T) {
	out, err := execute(t, "run", "--target", "Go", "--seed", "5", "--pop", "60", "--mut", "0.05", "--max-gen", "50000", "--quiet", "--log-level", "error")
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(out, "\n"))
	assert.Contains(t, out, "Fittest: Go (0)")
}

func TestRun_ConfigErrors(t *testing.T) {
	_, err := execute(t, "run", "--target", "AB", "--pop", "0")
	var cfgErr configError
	require.True(t, errors.As(err, &cfgErr), "%v", err)
	assert.ErrorIs(t, err, ga.ErrInvalidConfig)

	_, err = execute(t, "run", "--target", "AB", "--log-level", "loud")
	assert.True(t, errors.As(err, &cfgErr))

	_, err = execute(t, "run", "--config", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.True(t, errors.As(err, &cfgErr))
}

func TestRun_NotConverged(t *testing.T) {
	_, err := execute(t, "run", "--target", "unreachable target", "--pop", "4", "--cx", "0", "--mut", "0", "--max-gen", "3", "--quiet", "--log-level", "error")
	assert.ErrorIs(t, err, ga.ErrNotConverged)
}

func TestRun_FromConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "evolve.yaml")
	doc := "target: OK\nseed: 9\nga:\n  population: 60\n  mutation_rate: 0.05\n  max_generations: 50000\nlog:\n  level: error\n"
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	out, err := execute(t, "run", "--config", path, "--quiet")
	require.NoError(t, err)
	assert.Contains(t, out, "Fittest: OK (0)")
}

func TestBench_WritesCSV(t *testing.T) {
	csvPath := filepath.Join(t.TempDir(), "out", "results.csv")
	out, err := execute(t, "bench",
		"--targets", "AB,Go",
		"--algos", "GA,SA",
		"--runs", "2",
		"--parallel", "2",
		"--ga_pop", "60",
		"--ga_mut", "0.05",
		"--ga_max_gen", "50000",
		"--sa_iter", "500",
		"--out", csvPath,
		"--log-level", "error",
	)
	require.NoError(t, err)
	assert.Contains(t, out, "Saved: "+csvPath)

	f, err := os.Open(csvPath)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)

	require.Len(t, rows, 5)
	assert.Equal(t, []string{"GA", "AB"}, rows[1][1:3])
	assert.Equal(t, []string{"SA", "AB"}, rows[2][1:3])
	assert.Equal(t, []string{"GA", "Go"}, rows[3][1:3])
	assert.Equal(t, "2", rows[1][4], "GA converges on every run")
	// один идентификатор на весь запуск
	assert.Equal(t, rows[1][0], rows[4][0])
}

func TestBench_UnknownAlgorithm(t *testing.T) {
	_, err := execute(t, "bench", "--algos", "PSO", "--targets", "AB", "--out", filepath.Join(t.TempDir(), "r.csv"))
	var cfgErr configError
	assert.True(t, errors.As(err, &cfgErr))
}

func TestSplitCSV(t *testing.T) {
	assert.Equal(t, []string{"AB", "Hello World!"}, splitCSV(" AB , Hello World!,,"))
	assert.Nil(t, splitCSV(""))
}

func TestServeMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(prometheus.NewCounter(prometheus.CounterOpts{Name: "evolution_test_total", Help: "test"}))

	srv, addr, err := serveMetrics("127.0.0.1:0", reg, logging.Discard())
	require.NoError(t, err)
	defer srv.Close()

	resp, err := http.Get("http://" + addr + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "evolution_test_total")
}

func TestServeMetrics_AddressInUse(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	srv, _, err := serveMetrics(ln.Addr().String(), prometheus.NewRegistry(), logging.Discard())
	assert.Error(t, err)
	assert.Nil(t, srv)

	_, err = execute(t, "run", "--target", "AB", "--metrics-addr", ln.Addr().String(), "--log-level", "error", "--quiet")
	assert.ErrorContains(t, err, "metrics listener")
}
