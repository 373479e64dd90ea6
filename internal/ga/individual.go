package ga

import (
	"fmt"
	"math/rand"
)

// Individual — особь популяции: хромосома и её приспособленность.
// Меньшее значение Fitness лучше; особи упорядочиваются только по Fitness.
type Individual struct {
	Chromosome string
	Fitness    int
}

// NewIndividual возвращает особь с заданной хромосомой и неоценённой приспособленностью.
func NewIndividual(chromosome string) Individual {
	return Individual{Chromosome: chromosome}
}

// NewRandomIndividual возвращает особь со случайной хромосомой длины length.
func NewRandomIndividual(length int, rng *rand.Rand) Individual {
	return NewIndividual(RandomChromosome(length, rng))
}

// Mutate заменяет каждый ген случайным с вероятностью probability.
// Приспособленность не пересчитывается.
func (ind *Individual) Mutate(probability float64, rng *rand.Rand) {
	genes := []rune(ind.Chromosome)
	mutateGenes(genes, probability, rng)
	ind.Chromosome = string(genes)
}

func (ind Individual) String() string {
	return fmt.Sprintf("%s (%d)", ind.Chromosome, ind.Fitness)
}
