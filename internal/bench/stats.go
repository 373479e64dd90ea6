package bench

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

type IntStats struct {
	N    int
	Best int
	Mean float64
	Std  float64
}

func CalcIntStats(values []int) IntStats {
	s := IntStats{N: len(values)}
	if s.N == 0 {
		return s
	}

	xs := make([]float64, s.N)
	best := values[0]
	for i, v := range values {
		if v < best {
			best = v
		}
		xs[i] = float64(v)
	}

	f := CalcFloatStats(xs)
	s.Best = best
	s.Mean = f.Mean
	s.Std = f.Std
	return s
}

type FloatStats struct {
	N    int
	Best float64
	Mean float64
	Std  float64
}

// CalcFloatStats считает минимум, среднее и несмещённое стандартное отклонение.
// Для одного значения отклонение равно 0.
func CalcFloatStats(values []float64) FloatStats {
	s := FloatStats{N: len(values)}
	if s.N == 0 {
		return s
	}

	s.Best = values[0]
	for _, v := range values {
		s.Best = math.Min(s.Best, v)
	}
	if s.N < 2 {
		s.Mean = values[0]
		return s
	}
	s.Mean, s.Std = stat.MeanStdDev(values, nil)
	return s
}
