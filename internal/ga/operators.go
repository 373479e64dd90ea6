package ga

import (
	"math/rand"
	"strings"
)

// Алфавит генов: печатные символы ASCII от пробела до '~'.
const (
	GeneMin rune = 0x20
	GeneMax rune = 0x7E
)

// RandomGene возвращает равномерно выбранный символ из алфавита генов.
func RandomGene(rng *rand.Rand) rune {
	return GeneMin + rune(rng.Intn(int(GeneMax-GeneMin)+1))
}

// RandomChromosome генерирует строку из length случайных генов.
func RandomChromosome(length int, rng *rand.Rand) string {
	var b strings.Builder
	b.Grow(length)
	for i := 0; i < length; i++ {
		b.WriteRune(RandomGene(rng))
	}
	return b.String()
}

// uniformCrossover реализует равномерный кроссовер:
// каждая позиция независимо с вероятностью rate меняется местами между потомками.
func uniformCrossover(p1, p2 []rune, rate float64, rng *rand.Rand) (c1, c2 []rune) {
	c1 = make([]rune, len(p1))
	c2 = make([]rune, len(p2))
	for i := range p1 {
		if rng.Float64() < rate {
			c1[i], c2[i] = p2[i], p1[i]
		} else {
			c1[i], c2[i] = p1[i], p2[i]
		}
	}
	return c1, c2
}

// mutateGenes заменяет каждый ген случайным с вероятностью probability.
func mutateGenes(genes []rune, probability float64, rng *rand.Rand) {
	for i := range genes {
		if rng.Float64() < probability {
			genes[i] = RandomGene(rng)
		}
	}
}
