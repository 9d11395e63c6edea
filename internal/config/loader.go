package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Loader provides configuration loading capabilities.
type Loader interface {
	// Load loads configuration from file and environment variables.
	// Priority: defaults → config file → environment variables (env wins)
	Load() (*Config, error)
}

type loader struct {
	rootDir    string
	configFile string
}

// NewLoader creates a new configuration loader for the given root directory.
func NewLoader(rootDir string) Loader {
	return &loader{
		rootDir: rootDir,
	}
}

// NewFileLoader creates a loader that reads an explicit config file instead
// of searching rootDir/.cartographer.
func NewFileLoader(configFile string) Loader {
	return &loader{
		configFile: configFile,
	}
}

// Load loads configuration with the following priority (highest to lowest):
// 1. Environment variables (CARTOGRAPHER_*)
// 2. Config file (.cartographer/config.yml or .cartographer/config.yaml)
// 3. Default values
func (l *loader) Load() (*Config, error) {
	v := viper.New()

	if l.configFile != "" {
		v.SetConfigFile(l.configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(filepath.Join(l.rootDir, ".cartographer"))
	}

	// CARTOGRAPHER_DATABASE_PATH -> database.path
	v.SetEnvPrefix("CARTOGRAPHER")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.BindEnv("inputs.mappings")
	v.BindEnv("inputs.statics")
	v.BindEnv("inputs.constructors")

	v.BindEnv("overlay.fields")
	v.BindEnv("overlay.methods")
	v.BindEnv("overlay.params")

	v.BindEnv("database.path")

	v.BindEnv("import.workers")
	v.BindEnv("import.descriptor_cache_size")
	v.BindEnv("import.verbose")

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		// A missing file is fine unless it was named explicitly.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || l.configFile != "" {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// setDefaults configures viper with default values.
func setDefaults(v *viper.Viper) {
	defaults := Default()

	v.SetDefault("inputs.mappings", defaults.Inputs.Mappings)
	v.SetDefault("inputs.statics", defaults.Inputs.Statics)
	v.SetDefault("inputs.constructors", defaults.Inputs.Constructors)

	v.SetDefault("overlay.fields", defaults.Overlay.Fields)
	v.SetDefault("overlay.methods", defaults.Overlay.Methods)
	v.SetDefault("overlay.params", defaults.Overlay.Params)

	v.SetDefault("database.path", defaults.Database.Path)

	v.SetDefault("import.workers", defaults.Import.Workers)
	v.SetDefault("import.descriptor_cache_size", defaults.Import.DescriptorCacheSize)
	v.SetDefault("import.verbose", defaults.Import.Verbose)
}

// LoadConfig is a convenience function that creates a loader and loads config.
// It uses the current working directory as the root.
func LoadConfig() (*Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}
	return NewLoader(wd).Load()
}

// LoadConfigFromDir loads configuration from a specific directory.
func LoadConfigFromDir(rootDir string) (*Config, error) {
	return NewLoader(rootDir).Load()
}
