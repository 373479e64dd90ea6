package ga

import (
	"fmt"
	"math/rand"
	"sort"
)

// Доля популяции, переживающая усечённый отбор.
const survivalRate = 0.8

// FitnessFunc оценивает хромосому; меньше — лучше, 0 — точное совпадение.
type FitnessFunc func(chromosome string) int

// Population — набор особей одной длины хромосомы и параметры их размножения.
// Особи принадлежат популяции исключительно.
type Population struct {
	MutationRate  float64
	CrossoverRate float64
	Generation    int
	Individuals   []Individual

	fitness          FitnessFunc
	size             int
	chromosomeLength int
	evaluations      int
	rng              *rand.Rand
}

// NewPopulation создаёт size особей со случайными хромосомами длины chromosomeLength.
// Приспособленность остаётся неоценённой до вызова ComputeFitness.
func NewPopulation(
	size, chromosomeLength int,
	crossoverRate, mutationRate float64,
	fitness FitnessFunc,
	rng *rand.Rand,
) (*Population, error) {
	cfg := Config{
		PopulationSize:   size,
		ChromosomeLength: chromosomeLength,
		CrossoverRate:    crossoverRate,
		MutationRate:     mutationRate,
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if chromosomeLength <= 0 {
		return nil, fmt.Errorf("%w: длина хромосомы должна быть > 0 (получено %d)", ErrInvalidConfig, chromosomeLength)
	}
	if fitness == nil {
		return nil, fmt.Errorf("%w: функция приспособленности не задана (nil)", ErrInvalidConfig)
	}
	if rng == nil {
		return nil, fmt.Errorf("%w: генератор случайных чисел не инициализирован (nil)", ErrInvalidConfig)
	}

	members := make([]Individual, size)
	for i := range members {
		members[i] = NewRandomIndividual(chromosomeLength, rng)
	}
	return &Population{
		MutationRate:     mutationRate,
		CrossoverRate:    crossoverRate,
		Individuals:      members,
		fitness:          fitness,
		size:             size,
		chromosomeLength: chromosomeLength,
		rng:              rng,
	}, nil
}

// Size возвращает сконфигурированный размер популяции.
func (p *Population) Size() int { return p.size }

// ChromosomeLength возвращает общую для всех особей длину хромосомы.
func (p *Population) ChromosomeLength() int { return p.chromosomeLength }

// Evaluations возвращает число вызовов функции приспособленности.
func (p *Population) Evaluations() int { return p.evaluations }

// ComputeFitness оценивает каждую особь и сортирует популяцию по возрастанию
// приспособленности. Сортировка стабильна.
func (p *Population) ComputeFitness() {
	for i := range p.Individuals {
		p.Individuals[i].Fitness = p.fitness(p.Individuals[i].Chromosome)
	}
	p.evaluations += len(p.Individuals)

	sort.SliceStable(p.Individuals, func(i, j int) bool {
		return p.Individuals[i].Fitness < p.Individuals[j].Fitness
	})
}

// Fittest возвращает лучшую особь. Имеет смысл только после ComputeFitness.
func (p *Population) Fittest() Individual {
	return p.Individuals[0]
}

// Crossover порождает двух потомков равномерным кроссовером с вероятностью CrossoverRate.
// Родители не изменяются, приспособленность потомков не оценена.
func (p *Population) Crossover(parentA, parentB Individual) (Individual, Individual) {
	c1, c2 := uniformCrossover([]rune(parentA.Chromosome), []rune(parentB.Chromosome), p.CrossoverRate, p.rng)
	return NewIndividual(string(c1)), NewIndividual(string(c2))
}

// Mutate мутирует особь на месте с вероятностью probability для каждого гена.
func (p *Population) Mutate(ind *Individual, probability float64) {
	ind.Mutate(probability, p.rng)
}

// Breed выполняет одно поколение:
// усечённый отбор, попарный кроссовер, мутация потомков,
// добор случайными особями до исходного размера и повторная оценка.
func (p *Population) Breed() {
	// Усечение до лучших 80% (популяция уже отсортирована)
	survivors := int(float64(p.size) * survivalRate)
	if survivors > len(p.Individuals) {
		survivors = len(p.Individuals)
	}
	parents := make([]Individual, survivors)
	copy(parents, p.Individuals[:survivors])

	next := make([]Individual, 0, p.size)

	// Пары соседних родителей; непарный последний отбрасывается
	for i := 0; i+1 < len(parents); i += 2 {
		childA, childB := p.Crossover(parents[i], parents[i+1])
		next = append(next, childA, childB)
	}

	for i := range next {
		p.Mutate(&next[i], p.MutationRate)
	}

	// Добор новыми случайными особями
	for len(next) < p.size {
		next = append(next, NewRandomIndividual(p.chromosomeLength, p.rng))
	}

	p.Individuals = next
	p.ComputeFitness()
	p.Generation++
}
