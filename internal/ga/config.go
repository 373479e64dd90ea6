package ga

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"stringEvolution/internal/opt"
)

var (
	// ErrInvalidConfig оборачивает любую ошибку валидации параметров.
	ErrInvalidConfig = errors.New("некорректная конфигурация генетического алгоритма")

	// ErrNotConverged возвращается, когда достигнут предел поколений без точного совпадения.
	ErrNotConverged = opt.ErrNotConverged
)

var validate = validator.New(validator.WithRequiredStructEnabled())

type Config struct {
	PopulationSize   int     `yaml:"population" validate:"gt=0"`
	ChromosomeLength int     `yaml:"chromosome_length" validate:"gte=0"` // 0 — длина целевой строки
	CrossoverRate    float64 `yaml:"crossover_rate" validate:"gte=0,lte=1"`
	MutationRate     float64 `yaml:"mutation_rate" validate:"gte=0,lte=1"`
	MaxGenerations   int     `yaml:"max_generations" validate:"gte=0"` // 0 — без ограничения
}

func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, describe(err))
	}
	return nil
}

func DefaultConfig() Config {
	return Config{
		PopulationSize:   100,
		ChromosomeLength: 0,
		CrossoverRate:    0.5,
		MutationRate:     0.01,
		MaxGenerations:   0,
	}
}

// describe переводит ошибки валидатора в читаемый вид.
func describe(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf(
			"%s должно удовлетворять %s%s (получено %v)",
			fe.Field(), ruleName(fe.Tag()), fe.Param(), fe.Value(),
		))
	}
	return strings.Join(msgs, "; ")
}

func ruleName(tag string) string {
	switch tag {
	case "gt":
		return "> "
	case "gte":
		return ">= "
	case "lt":
		return "< "
	case "lte":
		return "<= "
	default:
		return tag + "="
	}
}
