package main

import (
	"fmt"
	"math/rand"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"stringEvolution/internal/bench"
	"stringEvolution/internal/ga"
	"stringEvolution/internal/logging"
	"stringEvolution/internal/opt"
	"stringEvolution/internal/sa"
)

// Фабрики

func newGAFactory(cfg ga.Config) func(seed int64) opt.Optimizer {
	return func(seed int64) opt.Optimizer {
		solver, _ := ga.New(cfg, rand.New(rand.NewSource(seed)))
		return solver
	}
}

func newSAFactory(cfg sa.Config) func(seed int64) opt.Optimizer {
	return func(seed int64) opt.Optimizer {
		solver, _ := sa.New(cfg, rand.New(rand.NewSource(seed)))
		return solver
	}
}

func newBenchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Сравнить GA и SA на наборе целевых строк",
		RunE:  runBench,
	}
	f := cmd.Flags()
	f.String("out", "", "путь к выходному CSV-файлу")
	f.String("targets", "", "целевые строки (через запятую)")
	f.String("algos", "", "список алгоритмов: GA, SA (через запятую)")
	f.Int("runs", 0, "количество запусков каждого алгоритма (с разными сидами)")
	f.Int64("seed", 0, "базовый сид для запусков алгоритмов")
	f.Int("parallel", 0, "число одновременных запусков")
	f.Duration("per_run_timeout", 0, "таймаут одного запуска; 0 — без ограничения")

	// --- Генетический алгоритм ---
	f.Int("ga_pop", 0, "размер популяции")
	f.Float64("ga_cx", 0, "вероятность обмена гена при кроссовере")
	f.Float64("ga_mut", 0, "вероятность мутации гена")
	f.Int("ga_max_gen", 0, "предел поколений (0 — без ограничения)")

	// --- Алгоритм имитации отжига ---
	f.Int("sa_iter", 0, "общее количество итераций (0 => sa_iter_per_gene × длина цели)")
	f.Int("sa_iter_per_gene", 0, "количество итераций на один ген")
	f.Float64("sa_t0", 0, "начальная температура")
	f.Float64("sa_tmin", 0, "конечная температура")
	f.Float64("sa_alpha", 0, "коэффициент охлаждения (alpha)")
	f.String("sa_neigh", "", "тип окрестности: replace | swap")
	return cmd
}

func runBench(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	f := cmd.Flags()
	b := &cfg.Bench
	if f.Changed("out") {
		b.Out, _ = f.GetString("out")
	}
	if f.Changed("targets") {
		s, _ := f.GetString("targets")
		b.Targets = splitCSV(s)
	}
	if f.Changed("algos") {
		s, _ := f.GetString("algos")
		b.Algos = splitCSV(s)
	}
	if f.Changed("runs") {
		b.Runs, _ = f.GetInt("runs")
	}
	if f.Changed("seed") {
		b.BaseSeed, _ = f.GetInt64("seed")
	}
	if f.Changed("parallel") {
		b.Parallelism, _ = f.GetInt("parallel")
	}
	if f.Changed("per_run_timeout") {
		b.PerRunTimeout, _ = f.GetDuration("per_run_timeout")
	}
	if f.Changed("ga_pop") {
		cfg.GA.PopulationSize, _ = f.GetInt("ga_pop")
	}
	if f.Changed("ga_cx") {
		cfg.GA.CrossoverRate, _ = f.GetFloat64("ga_cx")
	}
	if f.Changed("ga_mut") {
		cfg.GA.MutationRate, _ = f.GetFloat64("ga_mut")
	}
	if f.Changed("ga_max_gen") {
		cfg.GA.MaxGenerations, _ = f.GetInt("ga_max_gen")
	}
	if f.Changed("sa_iter") {
		cfg.SA.Iterations, _ = f.GetInt("sa_iter")
	}
	if f.Changed("sa_iter_per_gene") {
		cfg.SA.IterationsPerGene, _ = f.GetInt("sa_iter_per_gene")
	}
	if f.Changed("sa_t0") {
		cfg.SA.InitialTemp, _ = f.GetFloat64("sa_t0")
	}
	if f.Changed("sa_tmin") {
		cfg.SA.FinalTemp, _ = f.GetFloat64("sa_tmin")
	}
	if f.Changed("sa_alpha") {
		cfg.SA.Alpha, _ = f.GetFloat64("sa_alpha")
	}
	if f.Changed("sa_neigh") {
		s, _ := f.GetString("sa_neigh")
		cfg.SA.Neighborhood = sa.Neighborhood(s)
	}
	if err := cfg.Validate(); err != nil {
		return configError{err}
	}
	if len(b.Targets) == 0 {
		return configError{fmt.Errorf("не задано ни одной целевой строки")}
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		return configError{err}
	}

	available := map[string]bench.Algorithm{
		"GA": {Name: "GA", Factory: newGAFactory(cfg.GA)},
		"SA": {Name: "SA", Factory: newSAFactory(cfg.SA)},
	}

	var selected []bench.Algorithm
	for _, a := range b.Algos {
		al, ok := available[strings.ToUpper(a)]
		if !ok {
			return configError{fmt.Errorf("алгоритм %q не предоставлен в программе; доступные: %v", a, keys(available))}
		}
		selected = append(selected, al)
	}

	runner := bench.Runner{
		Runs:          b.Runs,
		BaseSeed:      b.BaseSeed,
		PerRunTimeout: b.PerRunTimeout,
		Parallelism:   b.Parallelism,
		RunID:         uuid.NewString(),
		Logger:        logger,
	}

	out := cmd.OutOrStdout()
	var records []bench.Record
	for _, target := range b.Targets {
		for _, a := range selected {
			fmt.Fprintf(out, "Запущен алгоритм %s; цель %q (общее кол-во запусков=%d)...\n", a.Name, target, runner.Runs)

			rec, err := runner.RunCase(cmd.Context(), bench.Case{Target: target}, a)
			if err != nil {
				return err
			}
			records = append(records, rec)

			fmt.Fprintf(out, "  Сошлось: %d/%d | Итерации: лучшее=%d среднее=%.2f ст. откл.=%.2f | Время: среднее=%.2fms ст. откл.=%.2fms\n",
				rec.Converged, rec.Runs,
				rec.IterationsBest, rec.IterationsMean, rec.IterationsStd,
				rec.TimeMeanMs, rec.TimeStdMs,
			)
		}
	}

	if err := bench.WriteCSV(b.Out, records); err != nil {
		return fmt.Errorf("ошибка при записи в CSV: %w", err)
	}
	fmt.Fprintln(out, "Saved:", b.Out)
	return nil
}

// helpers

func splitCSV(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func keys(m map[string]bench.Algorithm) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
