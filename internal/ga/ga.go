package ga

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"stringEvolution/internal/levenshtein"
	"stringEvolution/internal/logging"
	"stringEvolution/internal/opt"
)

// Snapshot — наблюдаемое состояние популяции после оценки поколения.
type Snapshot struct {
	Generation int
	Size       int
	Best       Individual
}

// Observer получает снимок после каждого оценённого поколения.
type Observer func(Snapshot)

// Solver — генетический поиск строки, совпадающей с целевой.
type Solver struct {
	Cfg      Config
	Rng      *rand.Rand
	Observer Observer
	Logger   *slog.Logger
}

// New возвращает новый GA-солвер с валидацией конфигурации, с использованием инициализированного генератора случайных чисел.
// Используется в фабриках.
func New(cfg Config, rng *rand.Rand) (*Solver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		return nil, fmt.Errorf("генератор случайных чисел не инициализирован (nil)")
	}
	return &Solver{Cfg: cfg, Rng: rng}, nil
}

// Solve эволюционирует популяцию, пока лучшая особь не совпадёт с target.
//
// Без MaxGenerations и при вырожденных параметрах (например, нулевая мутация)
// цикл может не завершиться; отмена возможна через ctx.
func (s *Solver) Solve(ctx context.Context, target string) (opt.Result, error) {
	start := time.Now()

	if err := s.Cfg.Validate(); err != nil {
		return opt.Result{}, err
	}
	if s.Rng == nil {
		return opt.Result{}, fmt.Errorf("генератор случайных чисел не инициализирован (nil)")
	}
	logger := s.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	length := s.Cfg.ChromosomeLength
	if length == 0 {
		length = len([]rune(target))
	}

	fitness := func(chromosome string) int {
		return levenshtein.Distance(target, chromosome)
	}

	pop, err := NewPopulation(
		s.Cfg.PopulationSize,
		length,
		s.Cfg.CrossoverRate,
		s.Cfg.MutationRate,
		fitness,
		s.Rng,
	)
	if err != nil {
		return opt.Result{}, err
	}

	logger.Debug("evolution started",
		"target", target,
		"population", s.Cfg.PopulationSize,
		"chromosome_length", length,
		"crossover_rate", s.Cfg.CrossoverRate,
		"mutation_rate", s.Cfg.MutationRate,
		"max_generations", s.Cfg.MaxGenerations,
	)

	pop.ComputeFitness()
	s.observe(pop)

	for pop.Fittest().Chromosome != target {
		// Для поддержки отмены через context
		if err := ctx.Err(); err != nil {
			res := s.result(pop, start, map[string]any{"stopped": "context"})
			logger.Warn("evolution cancelled", "generation", pop.Generation, "best_fitness", res.Fitness)
			return res, err
		}
		if s.Cfg.MaxGenerations > 0 && pop.Generation >= s.Cfg.MaxGenerations {
			res := s.result(pop, start, map[string]any{"stopped": "max_generations"})
			logger.Warn("evolution did not converge", "generation", pop.Generation, "best_fitness", res.Fitness)
			return res, fmt.Errorf("%w: %d поколений, лучшая особь %s", ErrNotConverged, pop.Generation, pop.Fittest())
		}

		pop.Breed()
		s.observe(pop)
	}

	res := s.result(pop, start, map[string]any{
		"population":     s.Cfg.PopulationSize,
		"crossover_rate": s.Cfg.CrossoverRate,
		"mutation_rate":  s.Cfg.MutationRate,
	})
	logger.Info("evolution converged",
		"generations", res.Iterations,
		"evaluations", res.Evaluations,
		"duration", res.Duration,
	)
	return res, nil
}

func (s *Solver) observe(pop *Population) {
	if s.Observer == nil {
		return
	}
	s.Observer(Snapshot{
		Generation: pop.Generation,
		Size:       len(pop.Individuals),
		Best:       pop.Fittest(),
	})
}

func (s *Solver) result(pop *Population, start time.Time, meta map[string]any) opt.Result {
	best := pop.Fittest()
	return opt.Result{
		Best:        best.Chromosome,
		Fitness:     best.Fitness,
		Converged:   best.Fitness == 0,
		Evaluations: pop.Evaluations(),
		Iterations:  pop.Generation,
		Duration:    time.Since(start),
		Meta:        meta,
	}
}
