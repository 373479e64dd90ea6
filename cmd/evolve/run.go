package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"stringEvolution/internal/ga"
	"stringEvolution/internal/logging"
	"stringEvolution/internal/metrics"
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Эволюционировать популяцию до совпадения с целевой строкой",
		RunE:  runEvolve,
	}
	f := cmd.Flags()
	f.String("target", "", "целевая строка")
	f.Int64("seed", 0, "сид генератора случайных чисел")
	f.Int("pop", 0, "размер популяции")
	f.Int("len", 0, "длина хромосомы (0 — длина цели)")
	f.Float64("cx", 0, "вероятность обмена гена при кроссовере")
	f.Float64("mut", 0, "вероятность мутации гена")
	f.Int("max-gen", 0, "предел поколений (0 — без ограничения)")
	f.Bool("quiet", false, "не печатать каждое поколение")
	f.String("metrics-addr", "", "адрес HTTP для /metrics, например :9090")
	return cmd
}

func runEvolve(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	f := cmd.Flags()
	if f.Changed("target") {
		cfg.Target, _ = f.GetString("target")
	}
	if f.Changed("seed") {
		cfg.Seed, _ = f.GetInt64("seed")
	}
	if f.Changed("pop") {
		cfg.GA.PopulationSize, _ = f.GetInt("pop")
	}
	if f.Changed("len") {
		cfg.GA.ChromosomeLength, _ = f.GetInt("len")
	}
	if f.Changed("cx") {
		cfg.GA.CrossoverRate, _ = f.GetFloat64("cx")
	}
	if f.Changed("mut") {
		cfg.GA.MutationRate, _ = f.GetFloat64("mut")
	}
	if f.Changed("max-gen") {
		cfg.GA.MaxGenerations, _ = f.GetInt("max-gen")
	}
	if cfg.Target == "" {
		return configError{errors.New("целевая строка не задана")}
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		return configError{err}
	}

	solver, err := ga.New(cfg.GA, rand.New(rand.NewSource(cfg.Seed)))
	if err != nil {
		return configError{err}
	}
	solver.Logger = logger

	reg := prometheus.NewRegistry()
	rec, err := metrics.NewRecorder(reg)
	if err != nil {
		return err
	}

	quiet, _ := f.GetBool("quiet")
	out := cmd.OutOrStdout()
	solver.Observer = func(s ga.Snapshot) {
		rec.Observe(s)
		if !quiet {
			printSnapshot(out, s)
		}
	}

	if addr, _ := f.GetString("metrics-addr"); addr != "" {
		srv, bound, err := serveMetrics(addr, reg, logger)
		if err != nil {
			return fmt.Errorf("metrics listener %s: %w", addr, err)
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
		logger.Info("serving metrics", "addr", bound)
	}

	res, err := solver.Solve(cmd.Context(), cfg.Target)
	rec.ObserveResult(res, err)
	if err != nil {
		return err
	}

	if quiet {
		fmt.Fprintf(out, "Generation %d\tFittest: %s (%d)\n", res.Iterations, res.Best, res.Fitness)
	}
	return nil
}

func printSnapshot(w io.Writer, s ga.Snapshot) {
	fmt.Fprintf(w, "Generation %d, size: %d\tFittest: %s\n", s.Generation, s.Size, s.Best)
}

// serveMetrics занимает addr синхронно, чтобы ошибка привязки вернулась вызывающему,
// и обслуживает /metrics в фоне. Возвращает фактический адрес.
func serveMetrics(addr string, reg *prometheus.Registry, logger *slog.Logger) (*http.Server, string, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, "", err
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server stopped", "addr", ln.Addr().String(), "error", err)
		}
	}()
	return srv, ln.Addr().String(), nil
}
