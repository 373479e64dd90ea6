package ga

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"default", func(*Config) {}, ""},
		{"zero population", func(c *Config) { c.PopulationSize = 0 }, "PopulationSize"},
		{"negative chromosome length", func(c *Config) { c.ChromosomeLength = -1 }, "ChromosomeLength"},
		{"crossover rate above one", func(c *Config) { c.CrossoverRate = 1.01 }, "CrossoverRate"},
		{"negative crossover rate", func(c *Config) { c.CrossoverRate = -0.5 }, "CrossoverRate"},
		{"mutation rate above one", func(c *Config) { c.MutationRate = 2 }, "MutationRate"},
		{"negative max generations", func(c *Config) { c.MaxGenerations = -1 }, "MaxGenerations"},
		{"boundary rates", func(c *Config) { c.CrossoverRate, c.MutationRate = 0, 1 }, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, ErrInvalidConfig)
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}
