// Package config loads gseawrap settings from defaults, an optional YAML file,
// a .env file and environment variables, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/Yates-Labs/gseawrap/internal/gsea"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variables read by ApplyEnv
const (
	EnvBinary   = "GSEA_CLI"
	EnvLogLevel = "GSEAWRAP_LOG_LEVEL"
	EnvJobs     = "GSEAWRAP_JOBS"
	EnvShell    = "GSEAWRAP_SHELL"
)

var (
	ErrInvalidConfig = errors.New("invalid configuration")
)

// Config holds all gseawrap settings
type Config struct {
	GSEA      GSEAConfig      `yaml:"gsea"`
	Execution ExecutionConfig `yaml:"execution"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// GSEAConfig holds launcher defaults
type GSEAConfig struct {
	Binary string `yaml:"binary"`
	Metric string `yaml:"metric"`
	NPerm  int    `yaml:"nperm"`
	NPlots int    `yaml:"nplots"`
	SetMax int    `yaml:"set_max"`
	SetMin int    `yaml:"set_min"`
}

// ExecutionConfig controls how commands are launched
type ExecutionConfig struct {
	// Shell runs commands through "<shell> -o pipefail" when set
	Shell string `yaml:"shell"`

	// Jobs is the number of GSEA processes run at once
	Jobs int `yaml:"jobs"`
}

// LoggingConfig configures the zap logger
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// DefaultConfig returns the settings used when nothing is configured
func DefaultConfig() *Config {
	return &Config{
		GSEA: GSEAConfig{
			Binary: gsea.DefaultBinary,
			Metric: string(gsea.MetricSignal2Noise),
			NPerm:  gsea.DefaultNPerm,
			NPlots: gsea.DefaultNPlots,
			SetMax: gsea.DefaultSetMax,
			SetMin: gsea.DefaultSetMin,
		},
		Execution: ExecutionConfig{
			Jobs: 1,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads a YAML file over the defaults and applies environment overrides.
// An empty or missing path yields the defaults. The result is not validated so
// command-line overrides can be applied first.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		if err == nil {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		}
	}

	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadEnvFiles loads .env files into the process environment without
// overriding variables that are already set. Missing files are ignored.
func LoadEnvFiles(filenames ...string) error {
	for _, name := range filenames {
		if _, err := os.Stat(name); os.IsNotExist(err) {
			continue
		}
		if err := godotenv.Load(name); err != nil {
			return fmt.Errorf("failed to load %s: %w", name, err)
		}
	}
	return nil
}

// ApplyEnv overrides settings from environment variables
func (c *Config) ApplyEnv() error {
	if v := os.Getenv(EnvBinary); v != "" {
		c.GSEA.Binary = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv(EnvShell); v != "" {
		c.Execution.Shell = v
	}
	if v := os.Getenv(EnvJobs); v != "" {
		jobs, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q is not a number", ErrInvalidConfig, EnvJobs, v)
		}
		c.Execution.Jobs = jobs
	}
	return nil
}

// Validate checks value ranges
func (c *Config) Validate() error {
	if c.GSEA.Binary == "" {
		return fmt.Errorf("%w: gsea binary must be set", ErrInvalidConfig)
	}
	if _, err := gsea.ParseMetric(c.GSEA.Metric); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if c.GSEA.NPerm <= 0 || c.GSEA.NPlots <= 0 {
		return fmt.Errorf("%w: nperm and nplots must be positive", ErrInvalidConfig)
	}
	if c.GSEA.SetMin <= 0 || c.GSEA.SetMax < c.GSEA.SetMin {
		return fmt.Errorf("%w: gene set bounds %d..%d", ErrInvalidConfig, c.GSEA.SetMin, c.GSEA.SetMax)
	}
	if c.Execution.Jobs < 1 {
		return fmt.Errorf("%w: jobs must be at least 1", ErrInvalidConfig)
	}
	return nil
}

// Limits returns the gene set size bounds for command assembly
func (c *Config) Limits() gsea.Limits {
	return gsea.Limits{SetMax: c.GSEA.SetMax, SetMin: c.GSEA.SetMin}
}
