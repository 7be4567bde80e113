// Package config loads the capacities and quotas for the scenario runs.
//
// Default holds the stock capacities and quotas; a YAML file only needs
// the fields it changes:
//
//	symbols:
//	  stop_quota: 50
//	  blocking: false
package config

import (
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// ErrInvalid is returned when a configuration fails validation.
var ErrInvalid = errors.New("config: invalid configuration")

// Config is the root configuration.
type Config struct {
	Pipeline Pipeline `yaml:"pipeline"`
	Symbols  Symbols  `yaml:"symbols"`
	Counters Counters `yaml:"counters"`
}

// Pipeline configures the producer, bounded buffer, workers and sorted
// collector run.
type Pipeline struct {
	// Items is the number of records produced; the collector is sized to it.
	Items int `yaml:"items" validate:"gt=0"`

	BufferCapacity int `yaml:"buffer_capacity" validate:"gt=0"`
	Workers        int `yaml:"workers" validate:"gt=0"`

	// MinScore filters records before they are collected.
	MinScore int `yaml:"min_score" validate:"gte=0"`

	// Seed drives the synthetic record generator.
	Seed uint64 `yaml:"seed"`
}

// Symbols configures the credit-gate run: one worker per tag.
type Symbols struct {
	Tags        []string `yaml:"tags" validate:"min=1,unique,dive,required"`
	Replenisher string   `yaml:"replenisher" validate:"required"`

	Threshold int `yaml:"threshold" validate:"gt=0"`
	Replenish int `yaml:"replenish" validate:"gt=0"`
	Spend     int `yaml:"spend" validate:"gt=0"`
	StopQuota int `yaml:"stop_quota" validate:"gt=0"`

	// Blocking selects TryAdmit; false polls and yields instead.
	Blocking bool `yaml:"blocking"`
}

// Counters configures the version-barrier run.
type Counters struct {
	Writers int `yaml:"writers" validate:"gt=0"`

	// Readers must cover RequiredReads or writers never advance.
	Readers int `yaml:"readers" validate:"gt=0,gtefield=RequiredReads"`

	WriteQuota    int `yaml:"write_quota" validate:"gt=0"`
	RequiredReads int `yaml:"required_reads" validate:"gt=0"`
	InitialC      int `yaml:"initial_c"`
	InitialD      int `yaml:"initial_d"`
}

// Default returns the stock scenario configuration.
func Default() Config {
	return Config{
		Pipeline: Pipeline{
			Items:          40,
			BufferCapacity: 10,
			Workers:        10,
			MinScore:       50,
			Seed:           1,
		},
		Symbols: Symbols{
			Tags:        []string{"A", "B", "C"},
			Replenisher: "A",
			Threshold:   3,
			Replenish:   1,
			Spend:       3,
			StopQuota:   150,
			Blocking:    true,
		},
		Counters: Counters{
			Writers:       2,
			Readers:       3,
			WriteQuota:    10,
			RequiredReads: 2,
			InitialC:      9,
			InitialD:      0,
		},
	}
}

// Load reads the YAML file at path over the defaults and validates the
// result. An empty path returns the validated defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, cfg.Validate()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks every section.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if !slices.Contains(c.Symbols.Tags, c.Symbols.Replenisher) {
		return fmt.Errorf("%w: replenisher %q is not one of the tags %v",
			ErrInvalid, c.Symbols.Replenisher, c.Symbols.Tags)
	}
	return nil
}
