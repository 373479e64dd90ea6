package sa

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"time"

	"stringEvolution/internal/ga"
	"stringEvolution/internal/levenshtein"
	"stringEvolution/internal/opt"
)

// Solver - структура реализации алгоритма имитации отжига
type Solver struct {
	Cfg Config
	Rng *rand.Rand
}

// New возвращает новый SA-солвер с валидацией конфигурации, с использованием инициализированного генератора случайных чисел.
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

// Solve — отжиг одной строки-кандидата до совпадения с target
// либо до исчерпания итераций или охлаждения.
func (s *Solver) Solve(ctx context.Context, target string) (opt.Result, error) {
	start := time.Now()

	if err := s.Cfg.Validate(); err != nil {
		return opt.Result{}, err
	}
	if s.Rng == nil {
		return opt.Result{}, fmt.Errorf("генератор случайных чисел не инициализирован (nil)")
	}

	n := len([]rune(target))
	if n == 0 {
		return opt.Result{}, fmt.Errorf("целевая строка пуста")
	}

	maxIter := s.Cfg.Iterations
	if maxIter <= 0 {
		maxIter = s.Cfg.IterationsPerGene * n
	}

	cost := func(genes []rune) int {
		return levenshtein.Distance(target, string(genes))
	}

	// Текущее и кандидатное решения
	curr := []rune(ga.RandomChromosome(n, s.Rng))
	cand := make([]rune, n)

	currCost := cost(curr)
	bestCost := currCost
	best := make([]rune, n)
	copy(best, curr)

	evals := 1
	T := s.Cfg.InitialTemp

	iter := 0
	for ; iter < maxIter && T > s.Cfg.FinalTemp && bestCost > 0; iter++ {
		// Для поддержки отмены через context
		if err := ctx.Err(); err != nil {
			return opt.Result{
				Best:        string(best),
				Fitness:     bestCost,
				Evaluations: evals,
				Iterations:  iter,
				Duration:    time.Since(start),
				Meta: map[string]any{
					"stopped": "context",
					"T":       T,
				},
			}, err
		}

		copy(cand, curr)
		switch s.Cfg.Neighborhood {
		case NeighborhoodSwap:
			// Обмен двух позиций
			neighborSwap(cand, s.Rng)
		default:
			// Замена одного гена случайным
			neighborReplace(cand, s.Rng)
		}

		candCost := cost(cand)
		evals++

		delta := candCost - currCost
		accept := false
		if delta <= 0 {
			// Улучшающее решение принимаем всегда
			accept = true
		} else {
			// Критерий Метрополиса:
			// допускает принятие ухудшающих решений
			p := math.Exp(-float64(delta) / T)
			if s.Rng.Float64() < p {
				accept = true
			}
		}

		if accept {
			// Обмен ролей текущего и кандидатного решений
			curr, cand = cand, curr
			currCost = candCost

			// Обновление глобально лучшего решения
			if currCost < bestCost {
				bestCost = currCost
				copy(best, curr)
			}
		}

		// Охлаждение температуры
		T *= s.Cfg.Alpha
	}

	res := opt.Result{
		Best:        string(best),
		Fitness:     bestCost,
		Converged:   bestCost == 0,
		Evaluations: evals,
		Iterations:  iter,
		Duration:    time.Since(start),
		Meta: map[string]any{
			"initial_temp": s.Cfg.InitialTemp,
			"final_temp":   s.Cfg.FinalTemp,
			"alpha":        s.Cfg.Alpha,
			"neighborhood": string(s.Cfg.Neighborhood),
		},
	}
	if !res.Converged {
		return res, fmt.Errorf("%w: %d итераций, T=%g, лучшее %q (%d)", opt.ErrNotConverged, iter, T, res.Best, bestCost)
	}
	return res, nil
}

// Заменяет ген в случайной позиции случайным символом алфавита.
func neighborReplace(p []rune, rng *rand.Rand) {
	p[rng.Intn(len(p))] = ga.RandomGene(rng)
}

// Формирует соседнее решение путём обмена двух случайных позиций.
func neighborSwap(p []rune, rng *rand.Rand) {
	if len(p) < 2 {
		return
	}
	i := rng.Intn(len(p))
	j := rng.Intn(len(p) - 1)
	if j >= i {
		j++
	}
	p[i], p[j] = p[j], p[i]
}
