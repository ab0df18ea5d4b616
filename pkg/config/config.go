// Package config provides viewer and generator configuration from the
// environment, plus the logger and color palettes derived from it.
package config

import (
	"os"
	"strings"
)

// Environment variables read by FromEnv.
const (
	EnvLogLevel    = "POLYVIEW_LOG_LEVEL"
	EnvColorScheme = "POLYVIEW_COLOR_SCHEME"
	EnvOutDir      = "POLYVIEW_OUT_DIR"
)

// Config represents application configuration.
type Config struct {
	// LogLevel is one of AvailableLogLevels.
	LogLevel string

	// ColorScheme names the palette used for material slots.
	ColorScheme string

	// OutDir is where the generator writes files by default.
	OutDir string
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		LogLevel:    "info",
		ColorScheme: DefaultScheme,
		OutDir:      "data",
	}
}

// FromEnv reads the environment over the defaults and checks the result.
func FromEnv() (Config, error) {
	conf := Default()
	if v := os.Getenv(EnvLogLevel); v != "" {
		conf.LogLevel = strings.ToLower(v)
	}
	if v := os.Getenv(EnvColorScheme); v != "" {
		conf.ColorScheme = strings.ToLower(v)
	}
	if v := os.Getenv(EnvOutDir); v != "" {
		conf.OutDir = v
	}
	return conf, conf.Check()
}

// AvailableLogLevels lists the accepted LogLevel values.
var AvailableLogLevels = []string{"panic", "fatal", "error", "warn", "info", "debug", "trace"}
