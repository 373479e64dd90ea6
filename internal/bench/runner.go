package bench

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"stringEvolution/internal/logging"
	"stringEvolution/internal/opt"
)

type Algorithm struct {
	Name    string
	Factory func(seed int64) opt.Optimizer
}

type Case struct {
	Target string
}

type Record struct {
	RunID  string
	Algo   string
	Target string
	Runs   int

	Converged int

	TimeBestMs float64
	TimeMeanMs float64
	TimeStdMs  float64

	IterationsBest int
	IterationsMean float64
	IterationsStd  float64

	FitnessBest int
	FitnessMean float64
	FitnessStd  float64
}

type Runner struct {
	Runs          int
	BaseSeed      int64
	PerRunTimeout time.Duration // 0 = no timeout

	// Parallelism ограничивает число одновременных запусков; <=0 — последовательно.
	Parallelism int
	RunID       string
	Logger      *slog.Logger
}

type runOutcome struct {
	res opt.Result
	dur time.Duration
}

// RunCase запускает алгоритм Runs раз с сидами BaseSeed+i и агрегирует результаты.
// Каждый запуск владеет собственным генератором и состоянием.
func (r Runner) RunCase(ctx context.Context, c Case, algo Algorithm) (Record, error) {
	if r.Runs <= 0 {
		return Record{}, fmt.Errorf("runs must be > 0 (got %d)", r.Runs)
	}
	logger := r.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	runID := r.RunID
	if runID == "" {
		runID = uuid.NewString()
	}

	outcomes := make([]runOutcome, r.Runs)

	g, gctx := errgroup.WithContext(ctx)
	limit := r.Parallelism
	if limit <= 0 {
		limit = 1
	}
	g.SetLimit(limit)

	for i := 0; i < r.Runs; i++ {
		g.Go(func() error {
			runSeed := r.BaseSeed + int64(i)
			op := algo.Factory(runSeed)

			runCtx := gctx
			cancel := func() {}
			if r.PerRunTimeout > 0 {
				runCtx, cancel = context.WithTimeout(gctx, r.PerRunTimeout)
			}
			start := time.Now()
			res, err := op.Solve(runCtx, c.Target)
			dur := time.Since(start)
			cancel()

			// Несошедшийся запуск — допустимый исход замера
			if errors.Is(err, opt.ErrNotConverged) {
				err = nil
			}
			if err != nil && runCtx.Err() != nil {
				return fmt.Errorf("run %d: cancelled/timeout: %w", i, err)
			}
			if err != nil {
				return fmt.Errorf("run %d: solve error: %w", i, err)
			}

			logger.Debug("bench run finished",
				"run_id", runID,
				"algo", algo.Name,
				"run", i,
				"seed", runSeed,
				"converged", res.Converged,
				"iterations", res.Iterations,
				"fitness", res.Fitness,
			)
			outcomes[i] = runOutcome{res: res, dur: dur}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Record{}, err
	}

	converged := 0
	iterations := make([]int, 0, r.Runs)
	fitness := make([]int, 0, r.Runs)
	timesMs := make([]float64, 0, r.Runs)
	for _, o := range outcomes {
		if o.res.Converged {
			converged++
		}
		iterations = append(iterations, o.res.Iterations)
		fitness = append(fitness, o.res.Fitness)
		timesMs = append(timesMs, float64(o.dur.Microseconds())/1000.0)
	}

	itStats := CalcIntStats(iterations)
	fitStats := CalcIntStats(fitness)
	tStats := CalcFloatStats(timesMs)

	return Record{
		RunID:  runID,
		Algo:   algo.Name,
		Target: c.Target,
		Runs:   r.Runs,

		Converged: converged,

		TimeBestMs: tStats.Best,
		TimeMeanMs: tStats.Mean,
		TimeStdMs:  tStats.Std,

		IterationsBest: itStats.Best,
		IterationsMean: itStats.Mean,
		IterationsStd:  itStats.Std,

		FitnessBest: fitStats.Best,
		FitnessMean: fitStats.Mean,
		FitnessStd:  fitStats.Std,
	}, nil
}

func WriteCSV(path string, records []Record) error {
	if dir := dirOf(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return EncodeCSV(f, records)
}

func EncodeCSV(out io.Writer, records []Record) error {
	w := csv.NewWriter(out)

	header := []string{
		"run_id", "algo", "target", "runs", "converged",
		"time_best_ms", "time_mean_ms", "time_std_ms",
		"iterations_best", "iterations_mean", "iterations_std",
		"fitness_best", "fitness_mean", "fitness_std",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, r := range records {
		row := []string{
			r.RunID,
			r.Algo,
			r.Target,
			itoa(r.Runs),
			itoa(r.Converged),

			ftoa(r.TimeBestMs),
			ftoa(r.TimeMeanMs),
			ftoa(r.TimeStdMs),

			itoa(r.IterationsBest),
			ftoa(r.IterationsMean),
			ftoa(r.IterationsStd),

			itoa(r.FitnessBest),
			ftoa(r.FitnessMean),
			ftoa(r.FitnessStd),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}
