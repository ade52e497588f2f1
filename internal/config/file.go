package config

import (
	"flag"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	apperrors "github.com/agbru/snippets/internal/errors"
)

// FileConfig is the YAML representation of the configuration. Pointer
// fields distinguish "absent" from the zero value.
type FileConfig struct {
	Snippet     *string `yaml:"snippet"`
	N           *int    `yaml:"n"`
	Factorial   *int    `yaml:"factorial"`
	Timeout     *string `yaml:"timeout"`
	Parallelism *int    `yaml:"parallel"`
	Quiet       *bool   `yaml:"quiet"`
	Verbose     *bool   `yaml:"verbose"`
	NoColor     *bool   `yaml:"noColor"`
	OutputFile  *string `yaml:"output"`
	MetricsFile *string `yaml:"metricsFile"`
	LogLevel    *string `yaml:"logLevel"`
	LogFormat   *string `yaml:"logFormat"`
}

// LoadFile reads and decodes a YAML configuration file.
func LoadFile(path string) (FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return FileConfig{}, apperrors.NewConfigError("cannot read config file: %v", err)
	}
	var parsed FileConfig
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return FileConfig{}, apperrors.NewConfigError("invalid config file %s: %v", path, err)
	}
	return parsed, nil
}

// applyFileConfig merges the file values into cfg for every flag that was
// not set on the command line.
func applyFileConfig(cfg *AppConfig, src FileConfig, fs *flag.FlagSet) error {
	setValue(&cfg.Snippet, src.Snippet, fs, "snippet", "s")
	setValue(&cfg.N, src.N, fs, "n")
	setValue(&cfg.Factorial, src.Factorial, fs, "factorial", "k")
	setValue(&cfg.Parallelism, src.Parallelism, fs, "parallel", "j")
	setValue(&cfg.Quiet, src.Quiet, fs, "quiet", "q")
	setValue(&cfg.Verbose, src.Verbose, fs, "verbose", "v")
	setValue(&cfg.NoColor, src.NoColor, fs, "no-color")
	setValue(&cfg.OutputFile, src.OutputFile, fs, "output", "o")
	setValue(&cfg.MetricsFile, src.MetricsFile, fs, "metrics-file")
	setValue(&cfg.LogLevel, src.LogLevel, fs, "log-level")
	setValue(&cfg.LogFormat, src.LogFormat, fs, "log-format")

	if src.Timeout != nil && !isFlagSet(fs, "timeout") {
		d, err := time.ParseDuration(*src.Timeout)
		if err != nil {
			return apperrors.NewConfigError("invalid timeout %q in config file: %v", *src.Timeout, err)
		}
		cfg.Timeout = d
	}
	return nil
}

func setValue[T any](dst *T, src *T, fs *flag.FlagSet, flags ...string) {
	if src != nil && !isFlagSetAny(fs, flags...) {
		*dst = *src
	}
}
