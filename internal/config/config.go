// Package config loads the semdemo settings from YAML.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/notorious-go/semguard/internal/logger"
)

// Semaphore configures the shared semaphore: its capacity and how Get waits.
type Semaphore struct {
	Max          uint64        `yaml:"max"`
	PollInterval time.Duration `yaml:"pollInterval"`
	Spin         bool          `yaml:"spin"`
}

// Demo configures the workers. Worker i holds its slot for i*HoldStep.
type Demo struct {
	Workers  int           `yaml:"workers"`
	HoldStep time.Duration `yaml:"holdStep"`
	Value    string        `yaml:"value"`
}

// Metrics configures the Prometheus endpoint. An empty Addr disables it.
type Metrics struct {
	Addr string `yaml:"addr"`
}

// Config is the root of the semdemo YAML file.
type Config struct {
	Semaphore Semaphore     `yaml:"semaphore"`
	Demo      Demo          `yaml:"demo"`
	Metrics   Metrics       `yaml:"metrics"`
	Log       logger.Config `yaml:"log"`
}

// Default returns the configuration used when no file is given: five slots
// shared by ten workers, each holding one second longer than the previous.
func Default() Config {
	return Config{
		Semaphore: Semaphore{
			Max:          5,
			PollInterval: 50 * time.Millisecond,
		},
		Demo: Demo{
			Workers:  10,
			HoldStep: time.Second,
			Value:    "Hello World",
		},
	}
}

// Load reads a YAML file on top of Default. Fields missing from the file keep
// their default values.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err = yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate reports settings the demo cannot run with: a zero max would make
// every Get panic, and workers and durations must be usable.
func (c Config) Validate() error {
	if c.Semaphore.Max == 0 {
		return errors.New("semaphore.max must be positive")
	}
	if c.Demo.Workers <= 0 {
		return errors.New("demo.workers must be positive")
	}
	if c.Demo.HoldStep < 0 {
		return errors.New("demo.holdStep must not be negative")
	}
	if c.Semaphore.PollInterval < 0 {
		return errors.New("semaphore.pollInterval must not be negative")
	}
	return nil
}
