package sa

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Тип окрестности
type Neighborhood string

const (
	NeighborhoodReplace Neighborhood = "replace"
	NeighborhoodSwap    Neighborhood = "swap"
)

var ErrInvalidConfig = errors.New("некорректная конфигурация алгоритма имитации отжига")

var validate = validator.New()

type Config struct {
	Iterations        int `yaml:"iterations" validate:"gte=0"`
	IterationsPerGene int `yaml:"iterations_per_gene" validate:"gte=0"`

	InitialTemp float64 `yaml:"initial_temp" validate:"gt=0"`
	FinalTemp   float64 `yaml:"final_temp" validate:"gt=0,ltfield=InitialTemp"`
	Alpha       float64 `yaml:"alpha" validate:"gt=0,lt=1"`

	Neighborhood Neighborhood `yaml:"neighborhood" validate:"oneof=replace swap"`
}

func DefaultConfig() Config {
	return Config{
		Iterations:        0,
		IterationsPerGene: 5000,

		InitialTemp: 2.0,
		FinalTemp:   0.001,
		Alpha:       0.9995,

		Neighborhood: NeighborhoodReplace,
	}
}

func (c Config) Validate() error {
	if c.Iterations <= 0 && c.IterationsPerGene <= 0 {
		return fmt.Errorf(
			"%w: должно быть задано Iterations > 0 или IterationsPerGene > 0",
			ErrInvalidConfig,
		)
	}
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf(
				"%w: %s не проходит правило %s %s (получено %v)",
				ErrInvalidConfig, fe.Field(), fe.Tag(), fe.Param(), fe.Value(),
			)
		}
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}
