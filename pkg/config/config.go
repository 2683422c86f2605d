// Package config loads the YAML settings used by the pla command.
package config

import (
	"os"
	"path/filepath"
	"strconv"
	"unicode/utf8"

	"github.com/YuminosukeSato/pla/dataset"
	"github.com/YuminosukeSato/pla/perceptron"
	"github.com/YuminosukeSato/pla/pkg/errors"
	"github.com/YuminosukeSato/pla/pkg/log"
	"gopkg.in/yaml.v3"
)

// Config holds training, data and logging settings.
type Config struct {
	Model   ModelConfig   `yaml:"model"`
	Data    DataConfig    `yaml:"data"`
	Logging LoggingConfig `yaml:"logging"`
}

// ModelConfig configures the classifier.
type ModelConfig struct {
	LearningRate  float64 `yaml:"learning_rate"`
	MaxIterations int     `yaml:"max_iterations"`
	// RandomState seeds weight initialisation; unset means a fresh seed per run.
	RandomState *uint64 `yaml:"random_state,omitempty"`
}

// DataConfig describes the CSV layout.
type DataConfig struct {
	HasHeader      bool   `yaml:"has_header"`
	LabelColumn    int    `yaml:"label_column"`
	ZeroAsNegative bool   `yaml:"zero_as_negative"`
	Delimiter      string `yaml:"delimiter"`
	// Standardize scales every feature to zero mean and unit variance
	// before training. The statistics are stored with the model.
	Standardize bool `yaml:"standardize"`
}

// LoggingConfig configures the process logger.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Pretty bool   `yaml:"pretty"`
}

// DefaultConfig returns the settings used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Model: ModelConfig{
			LearningRate:  perceptron.DefaultLearningRate,
			MaxIterations: perceptron.DefaultMaxIterations,
		},
		Data: DataConfig{
			LabelColumn: dataset.LastColumn,
			Delimiter:   ",",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads path over the defaults, applies environment overrides and
// validates the result. An empty path yields the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrapf(err, "read config %s", path)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, errors.Mark(errors.Wrapf(err, "parse config %s", path), errors.ErrInvalidInput)
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnvOverrides lets PLA_LOG_LEVEL and PLA_RANDOM_STATE take precedence
// over the file.
func (c *Config) applyEnvOverrides() error {
	if v := os.Getenv("PLA_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("PLA_RANDOM_STATE"); v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return errors.NewValidationError("PLA_RANDOM_STATE", "must be an unsigned integer", v)
		}
		c.Model.RandomState = &seed
	}
	return nil
}

// Validate checks the settings without building anything.
func (c *Config) Validate() error {
	if !(c.Model.LearningRate > 0) {
		return errors.NewValidationError("model.learning_rate", "must be positive", c.Model.LearningRate)
	}
	if c.Model.MaxIterations < 1 {
		return errors.NewValidationError("model.max_iterations", "must be at least 1", c.Model.MaxIterations)
	}
	if utf8.RuneCountInString(c.Data.Delimiter) > 1 {
		return errors.NewValidationError("data.delimiter", "must be a single character", c.Data.Delimiter)
	}
	if _, err := log.ParseLevel(c.Logging.Level); err != nil {
		return err
	}
	return nil
}

// PerceptronOptions returns the classifier options described by c.
func (c *Config) PerceptronOptions() []perceptron.Option {
	opts := []perceptron.Option{
		perceptron.WithLearningRate(c.Model.LearningRate),
		perceptron.WithMaxIterations(c.Model.MaxIterations),
	}
	if c.Model.RandomState != nil {
		opts = append(opts, perceptron.WithRandomState(*c.Model.RandomState))
	}
	return opts
}

// CSVOptions returns the loader options described by c.
func (c *Config) CSVOptions() dataset.CSVOptions {
	opts := dataset.CSVOptions{
		HasHeader:      c.Data.HasHeader,
		LabelColumn:    c.Data.LabelColumn,
		ZeroAsNegative: c.Data.ZeroAsNegative,
	}
	if r, _ := utf8.DecodeRuneInString(c.Data.Delimiter); r != utf8.RuneError {
		opts.Comma = r
	}
	return opts
}

// Save writes c as YAML, creating parent directories as needed.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrapf(err, "create config directory for %s", path)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return errors.Wrap(err, "encode config")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrapf(err, "write config %s", path)
	}
	return nil
}
