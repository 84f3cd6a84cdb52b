package config

import (
	"errors"
	"fmt"
	"strings"

	"tidymux/internal/rules"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateCleaning(); err != nil {
		return err
	}
	if err := c.validateSelection(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateCleaning() error {
	if len(c.Cleaning.Extensions) == 0 {
		return errors.New("cleaning.extensions must list at least one extension")
	}
	if strings.ContainsAny(c.Cleaning.OutputSuffix, `/\`) {
		return fmt.Errorf("cleaning.output_suffix %q must not contain path separators", c.Cleaning.OutputSuffix)
	}
	return nil
}

func (c *Config) validateSelection() error {
	if _, _, err := rules.Build(c.Selection); err != nil {
		return fmt.Errorf("selection: %w", err)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
	return nil
}
