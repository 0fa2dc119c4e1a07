package config

import "fmt"

// Config represents the application configuration
type Config struct {
	Manifest ManifestConfig `mapstructure:"manifest" yaml:"manifest"`
	Logging  LoggingConfig  `mapstructure:"logging" yaml:"logging"`
}

// ManifestConfig contains manifest lookup settings
type ManifestConfig struct {
	File string `mapstructure:"file" yaml:"file"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

var validLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

var validLogFormats = map[string]bool{
	"json":   true,
	"pretty": true,
}

// Validate validates the configuration, filling defaults for unset values
func (c *Config) Validate() error {
	if c.Manifest.File == "" {
		c.Manifest.File = DefaultManifestFile
	}
	if c.Logging.Level == "" {
		c.Logging.Level = DefaultLogLevel
	}
	if c.Logging.Format == "" {
		c.Logging.Format = DefaultLogFormat
	}
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("invalid logging.level %q: must be debug, info, warn, or error", c.Logging.Level)
	}
	if !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("invalid logging.format %q: must be json or pretty", c.Logging.Format)
	}
	return nil
}
