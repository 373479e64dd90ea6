// Package metrics экспортирует ход эволюции в Prometheus.
package metrics

import (
	"context"
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	"stringEvolution/internal/ga"
	"stringEvolution/internal/opt"
)

const namespace = "evolution"

// Исходы запуска для метки result.
const (
	ResultConverged    = "converged"
	ResultNotConverged = "not_converged"
	ResultCancelled    = "cancelled"
	ResultFailed       = "failed"
)

// Recorder хранит коллекторы одного процесса поиска.
type Recorder struct {
	generations    prometheus.Counter
	bestFitness    prometheus.Gauge
	populationSize prometheus.Gauge
	runs           *prometheus.CounterVec
}

// NewRecorder создаёт коллекторы и регистрирует их в reg.
func NewRecorder(reg prometheus.Registerer) (*Recorder, error) {
	r := &Recorder{
		generations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "generations_total",
			Help:      "Number of bred generations.",
		}),
		bestFitness: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "best_fitness",
			Help:      "Edit distance of the fittest individual in the last evaluated generation.",
		}),
		populationSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "population_size",
			Help:      "Population size of the last evaluated generation.",
		}),
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_total",
			Help:      "Finished searches by result.",
		}, []string{"result"}),
	}

	for _, c := range []prometheus.Collector{r.generations, r.bestFitness, r.populationSize, r.runs} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Observe подходит в качестве ga.Observer.
func (r *Recorder) Observe(s ga.Snapshot) {
	// Поколение 0 — начальная оценка, а не размножение
	if s.Generation > 0 {
		r.generations.Inc()
	}
	r.bestFitness.Set(float64(s.Best.Fitness))
	r.populationSize.Set(float64(s.Size))
}

// ObserveResult учитывает завершение поиска.
func (r *Recorder) ObserveResult(res opt.Result, err error) {
	switch {
	case err == nil && res.Converged:
		r.runs.WithLabelValues(ResultConverged).Inc()
	case errors.Is(err, opt.ErrNotConverged):
		r.runs.WithLabelValues(ResultNotConverged).Inc()
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		r.runs.WithLabelValues(ResultCancelled).Inc()
	default:
		r.runs.WithLabelValues(ResultFailed).Inc()
	}
}
