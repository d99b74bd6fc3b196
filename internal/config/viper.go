// Package config provides Viper-based hierarchical configuration management
package config

import (
	"errors"
	"fmt"
	"strings"

	"fjacquet/qfx-rebank/internal/report"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable read by the configuration.
const EnvPrefix = "QFXREBANK"

// Config represents the complete application configuration
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	Target struct {
		FID string `mapstructure:"fid" yaml:"fid"`
		BID string `mapstructure:"bid" yaml:"bid"`
	} `mapstructure:"target" yaml:"target"`

	Amounts struct {
		Invert bool `mapstructure:"invert" yaml:"invert"`
	} `mapstructure:"amounts" yaml:"amounts"`

	Input struct {
		DefaultFile string `mapstructure:"default_file" yaml:"default_file"`
	} `mapstructure:"input" yaml:"input"`

	Output struct {
		Directory         string `mapstructure:"directory" yaml:"directory"`
		FallbackDirectory string `mapstructure:"fallback_directory" yaml:"fallback_directory"`
	} `mapstructure:"output" yaml:"output"`

	Verify struct {
		Enabled bool `mapstructure:"enabled" yaml:"enabled"`
	} `mapstructure:"verify" yaml:"verify"`

	Report struct {
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"report" yaml:"report"`
}

// flagKeys maps command-line flags onto configuration keys.
var flagKeys = map[string]string{
	"log-level":     "log.level",
	"log-format":    "log.format",
	"output-dir":    "output.directory",
	"report-format": "report.format",
}

// Load builds the configuration. cfgFile, when set, replaces the config file
// search; flags that were set on the command line override everything else.
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	// 1. Set defaults
	setDefaults(v)

	// 2. Config file locations
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("$HOME/.qfx-rebank")
		v.AddConfigPath(".qfx-rebank")
		v.AddConfigPath(".")
	}

	// 3. Environment variables
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// 4. Read config file (optional unless named explicitly)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file %s: %w", v.ConfigFileUsed(), err)
		}
	}

	// 5. Command-line flags
	if err := bindFlags(v, flags); err != nil {
		return nil, err
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// target.bid follows target.fid unless given.
	if config.Target.BID == "" {
		config.Target.BID = config.Target.FID
	}

	// 6. Validate configuration
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	if flags == nil {
		return nil
	}
	for name, key := range flagKeys {
		flag := flags.Lookup(name)
		if flag == nil {
			continue
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return fmt.Errorf("failed to bind flag --%s: %w", name, err)
		}
	}
	return nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("target.fid", "10898")
	v.SetDefault("target.bid", "")

	v.SetDefault("amounts.invert", true)

	v.SetDefault("input.default_file", "transactions.qfx")

	v.SetDefault("output.directory", "")
	v.SetDefault("output.fallback_directory", ".")

	v.SetDefault("verify.enabled", true)

	v.SetDefault("report.format", report.FormatText)
}

// validateConfig validates the configuration values
func validateConfig(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	if err := validateIdentifier("target.fid", config.Target.FID); err != nil {
		return err
	}
	if err := validateIdentifier("target.bid", config.Target.BID); err != nil {
		return err
	}

	if config.Input.DefaultFile == "" {
		return fmt.Errorf("input.default_file cannot be empty")
	}

	if !report.IsSupported(config.Report.Format) {
		return fmt.Errorf("invalid report format: %s (must be one of %s)", config.Report.Format, strings.Join(report.Formats, ", "))
	}

	return nil
}

// validateIdentifier rejects values that cannot be written as a tag value.
func validateIdentifier(key, value string) error {
	if value == "" {
		return fmt.Errorf("%s cannot be empty", key)
	}
	if strings.ContainsAny(value, "<> \t\r\n") {
		return fmt.Errorf("%s contains characters not allowed in a tag value: %q", key, value)
	}
	return nil
}
