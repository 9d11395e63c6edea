// Package config provides configuration loading for cartographer.
//
// Configuration is read from .cartographer/config.yml (or .yaml) in the
// working directory, with CARTOGRAPHER_* environment variables taking
// precedence over the file and the file over built-in defaults. Nested keys
// map to underscores, so database.path is CARTOGRAPHER_DATABASE_PATH.
package config

// Config represents the complete cartographer configuration.
type Config struct {
	Inputs   InputsConfig   `yaml:"inputs" mapstructure:"inputs"`
	Overlay  OverlayConfig  `yaml:"overlay" mapstructure:"overlay"`
	Database DatabaseConfig `yaml:"database" mapstructure:"database"`
	Import   ImportConfig   `yaml:"import" mapstructure:"import"`
}

// InputsConfig locates the raw mapping tables.
type InputsConfig struct {
	Mappings     string `yaml:"mappings" mapstructure:"mappings"`         // joined.tsrg
	Statics      string `yaml:"statics" mapstructure:"statics"`           // static_methods.txt
	Constructors string `yaml:"constructors" mapstructure:"constructors"` // constructors.txt
}

// OverlayConfig locates the human-name CSV tables. Leaving all three empty
// disables the overlay.
type OverlayConfig struct {
	Fields  string `yaml:"fields" mapstructure:"fields"`
	Methods string `yaml:"methods" mapstructure:"methods"`
	Params  string `yaml:"params" mapstructure:"params"`
}

// Enabled reports whether any overlay table is configured.
func (o OverlayConfig) Enabled() bool {
	return o.Fields != "" || o.Methods != "" || o.Params != ""
}

// DatabaseConfig controls the serialized database file.
type DatabaseConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

// ImportConfig tunes the import passes.
type ImportConfig struct {
	Workers             int  `yaml:"workers" mapstructure:"workers"`                             // 0 means GOMAXPROCS
	DescriptorCacheSize int  `yaml:"descriptor_cache_size" mapstructure:"descriptor_cache_size"` // 0 disables the memo
	Verbose             bool `yaml:"verbose" mapstructure:"verbose"`                             // log every skipped line
}

// Default returns a configuration with the conventional MCPConfig layout.
func Default() *Config {
	return &Config{
		Inputs: InputsConfig{
			Mappings:     "config/joined.tsrg",
			Statics:      "config/static_methods.txt",
			Constructors: "config/constructors.txt",
		},
		Overlay: OverlayConfig{
			Fields:  "mcp/fields.csv",
			Methods: "mcp/methods.csv",
			Params:  "mcp/params.csv",
		},
		Database: DatabaseConfig{
			Path: "srg_database.txt",
		},
		Import: ImportConfig{
			Workers:             0,
			DescriptorCacheSize: 16384,
			Verbose:             false,
		},
	}
}
