package config

import (
	"strings"

	"github.com/pkg/errors"
)

type checkFunc func(conf *Config) error

// Check validates every field, returning the first problem found.
func (c *Config) Check() error {
	checkFuncs := []checkFunc{
		checkLogLevel,
		checkColorScheme,
		checkOutDir,
	}

	for _, checkFunc := range checkFuncs {
		if err := checkFunc(c); err != nil {
			return err
		}
	}
	return nil
}

func checkLogLevel(conf *Config) error {
	for _, l := range AvailableLogLevels {
		if l == conf.LogLevel {
			return nil
		}
	}
	return errors.Errorf("config: invalid log level %q, expected one of %s",
		conf.LogLevel, strings.Join(AvailableLogLevels, ", "))
}

func checkColorScheme(conf *Config) error {
	if _, ok := schemes[conf.ColorScheme]; !ok {
		return errors.Errorf("config: unknown color scheme %q, expected one of %s",
			conf.ColorScheme, strings.Join(SchemeNames(), ", "))
	}
	return nil
}

func checkOutDir(conf *Config) error {
	if strings.TrimSpace(conf.OutDir) == "" {
		return errors.New("config: output directory is empty")
	}
	return nil
}
