package plan

import (
	"os"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
	yaml "gopkg.in/yaml.v2"
)

// Config holds planner settings loadable from a YAML file. CLI flags that
// were explicitly set override file values; see cmd.
type Config struct {
	// Strategy selects the placement strategy (best-first, rank-once).
	// Empty means the default, rank-once.
	Strategy string `yaml:"strategy"`
	// Workers bounds the scoring worker pool; <= 0 means one per CPU.
	Workers int `yaml:"workers"`
	// Progress enables the stderr progress bar.
	Progress bool `yaml:"progress"`
}

// DefaultConfig returns the planner defaults, matching the CLI flag
// defaults so that a missing config file changes nothing.
func DefaultConfig() Config {
	return Config{Strategy: StrategyRankOnce}
}

// LoadConfig reads a YAML config file on top of the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrap(err, "read config file")
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "parse config %s", path)
	}
	return cfg, nil
}

// Validate checks the config, collecting all violations.
func (c Config) Validate() error {
	var err error
	if !IsValidStrategy(c.Strategy) {
		err = multierr.Append(err, errors.Errorf("unknown strategy %q (valid: %s, %s)",
			c.Strategy, StrategyBestFirst, StrategyRankOnce))
	}
	if c.Workers < 0 {
		err = multierr.Append(err, errors.Errorf("workers must be >= 0, got %d", c.Workers))
	}
	return err
}
