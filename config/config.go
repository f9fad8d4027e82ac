// Package config loads offsetter's tool configuration.
//
// Configuration is deliberately thin, since a layout compiler's real input is
// the layout files. The target description and generation defaults live
// here so a repository can pin them once in offsetter.toml instead of
// repeating flags in every go:generate line. Sources, in precedence order:
// defaults < offsetter.toml (found by walking up from the working directory)
// < OFFSETTER_* environment variables.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/GraybirdSoftware/offsetter/errors"
	"github.com/GraybirdSoftware/offsetter/layout"
)

// ConfigFileName is the project configuration file searched for upward from
// the working directory.
const ConfigFileName = "offsetter.toml"

// Config is the tool configuration.
type Config struct {
	Generate GenerateConfig `mapstructure:"generate"`
	Target   TargetConfig   `mapstructure:"target"`
}

// GenerateConfig holds generation defaults, overridable per invocation by
// CLI flags.
type GenerateConfig struct {
	// Checked enables the offset verifier and the emitted compile-time
	// guards by default.
	Checked bool `mapstructure:"checked"`

	// Output is the directory generated files are written to. Empty means
	// alongside each layout file.
	Output string `mapstructure:"output"`
}

// TargetConfig describes the compilation target of the generated code.
type TargetConfig struct {
	PointerSize int `mapstructure:"pointer_size"`
	MaxAlign    int `mapstructure:"max_align"`
}

// Layout converts the target section to the layout package's Target.
func (t TargetConfig) Layout() layout.Target {
	return layout.Target{PointerSize: t.PointerSize, MaxAlign: t.MaxAlign}
}

// SetDefaults configures default values for all configuration options.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("generate.checked", false)
	v.SetDefault("generate.output", "")

	// The common 64-bit targets: amd64, arm64.
	v.SetDefault("target.pointer_size", 8)
	v.SetDefault("target.max_align", 8)
}

// Load reads configuration from defaults, the nearest offsetter.toml, and
// the environment.
func Load() (*Config, error) {
	v := viper.New()

	v.SetEnvPrefix("OFFSETTER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	SetDefaults(v)

	if path := findProjectConfig(); path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("toml")
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "reading config file %s", path)
		}
	}

	return unmarshal(v)
}

// LoadFromFile loads configuration from a specific file path.
func LoadFromFile(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("toml")
	SetDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrapf(err, "reading config file %s", configPath)
	}
	return unmarshal(v)
}

func unmarshal(v *viper.Viper) (*Config, error) {
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, errors.Wrap(err, "unmarshaling config")
	}
	if err := config.validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func (c *Config) validate() error {
	switch c.Target.PointerSize {
	case 4, 8:
	default:
		return errors.Newf("target.pointer_size must be 4 or 8, got %d", c.Target.PointerSize)
	}
	switch c.Target.MaxAlign {
	case 1, 2, 4, 8, 16:
	default:
		return errors.Newf("target.max_align must be a power of two up to 16, got %d", c.Target.MaxAlign)
	}
	return nil
}

// findProjectConfig searches for offsetter.toml by walking up the directory
// tree from the working directory. Returns empty string when none is found.
func findProjectConfig() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		path := filepath.Join(dir, ConfigFileName)
		if _, err := os.Stat(path); err == nil {
			return path
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root, stop searching.
			return ""
		}
		dir = parent
	}
}
