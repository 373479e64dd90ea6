// Package config загружает параметры запуска из YAML-файла.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"stringEvolution/internal/ga"
	"stringEvolution/internal/logging"
	"stringEvolution/internal/sa"
)

type Bench struct {
	Targets       []string      `yaml:"targets"`
	Algos         []string      `yaml:"algos"`
	Runs          int           `yaml:"runs"`
	BaseSeed      int64         `yaml:"seed"`
	Parallelism   int           `yaml:"parallelism"`
	PerRunTimeout time.Duration `yaml:"per_run_timeout"`
	Out           string        `yaml:"out"`
}

type File struct {
	Target string         `yaml:"target"`
	Seed   int64          `yaml:"seed"`
	GA     ga.Config      `yaml:"ga"`
	SA     sa.Config      `yaml:"sa"`
	Bench  Bench          `yaml:"bench"`
	Log    logging.Config `yaml:"log"`
}

func Default() File {
	return File{
		Target: "Hello World!",
		Seed:   1,
		GA:     ga.DefaultConfig(),
		SA:     sa.DefaultConfig(),
		Bench: Bench{
			Targets:     []string{"AB", "Hello World!"},
			Algos:       []string{"GA", "SA"},
			Runs:        30,
			BaseSeed:    1000,
			Parallelism: 1,
			Out:         "artifacts/results.csv",
		},
		Log: logging.DefaultConfig(),
	}
}

// Load читает YAML из path поверх значений по умолчанию и проверяет результат.
func Load(path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, err
	}
	f, err := Decode(bytes.NewReader(data))
	if err != nil {
		return File{}, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// Decode разбирает YAML поверх Default; неизвестные ключи — ошибка.
func Decode(r io.Reader) (File, error) {
	f := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return File{}, err
	}
	if err := f.Validate(); err != nil {
		return File{}, err
	}
	return f, nil
}

func (f File) Validate() error {
	if err := f.GA.Validate(); err != nil {
		return err
	}
	if err := f.SA.Validate(); err != nil {
		return err
	}
	if f.Bench.Runs <= 0 {
		return fmt.Errorf("bench.runs должно быть > 0 (получено %d)", f.Bench.Runs)
	}
	if f.Bench.PerRunTimeout < 0 {
		return fmt.Errorf("bench.per_run_timeout не может быть отрицательным (получено %s)", f.Bench.PerRunTimeout)
	}
	if _, err := logging.ParseLevel(f.Log.Level); err != nil {
		return err
	}
	return nil
}
