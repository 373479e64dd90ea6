package opt

import (
	"context"
	"errors"
	"time"
)

// ErrNotConverged — поиск остановлен по лимиту без точного совпадения с целью.
// Result при этом содержит лучшее найденное решение.
var ErrNotConverged = errors.New("поиск не сошёлся")

type Optimizer interface {
	Solve(ctx context.Context, target string) (Result, error)
}

type Result struct {
	Best        string
	Fitness     int
	Converged   bool
	Evaluations int
	Iterations  int
	Duration    time.Duration
	Meta        map[string]any
}
