package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// SimulateConfig is the YAML form of the simulate command's settings.
type SimulateConfig struct {
	Steps    int      `yaml:"steps"`
	Runs     int      `yaml:"runs"`
	Seed     int64    `yaml:"seed"`
	Policies []string `yaml:"policies"`
}

func DefaultSimulateConfig() SimulateConfig {
	return SimulateConfig{
		Steps:    50,
		Runs:     100,
		Seed:     1,
		Policies: []string{"uniform", "GO", "STAY"},
	}
}

// LoadSimulateConfig reads path on top of the defaults. Unknown keys are
// rejected.
func LoadSimulateConfig(path string) (SimulateConfig, error) {
	cfg := DefaultSimulateConfig()

	f, err := os.Open(path)
	if err != nil {
		return cfg, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

func (c SimulateConfig) Validate() error {
	var errs []error
	if c.Steps < 0 {
		errs = append(errs, fmt.Errorf("steps must not be negative, got %d", c.Steps))
	}
	if c.Runs <= 0 {
		errs = append(errs, fmt.Errorf("runs must be positive, got %d", c.Runs))
	}
	if len(c.Policies) == 0 {
		errs = append(errs, errors.New("at least one policy is required"))
	}
	return errors.Join(errs...)
}
