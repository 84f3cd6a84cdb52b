package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeTools()
	c.normalizeCleaning()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	c.Paths.OutputDir = strings.TrimSpace(c.Paths.OutputDir)
	if c.Paths.OutputDir == "" {
		return nil
	}
	var err error
	if c.Paths.OutputDir, err = expandPath(c.Paths.OutputDir); err != nil {
		return fmt.Errorf("paths.output_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeTools() {
	c.Tools.FFmpeg = strings.TrimSpace(c.Tools.FFmpeg)
	if c.Tools.FFmpeg == "" {
		if value, ok := os.LookupEnv(EnvFFmpeg); ok {
			c.Tools.FFmpeg = strings.TrimSpace(value)
		}
	}
	if c.Tools.FFmpeg == "" {
		c.Tools.FFmpeg = defaultFFmpegBinary
	}
	c.Tools.FFprobe = strings.TrimSpace(c.Tools.FFprobe)
	if c.Tools.FFprobe == "" {
		if value, ok := os.LookupEnv(EnvFFprobe); ok {
			c.Tools.FFprobe = strings.TrimSpace(value)
		}
	}
	if c.Tools.FFprobe == "" {
		c.Tools.FFprobe = defaultFFprobeBinary
	}
}

func (c *Config) normalizeCleaning() {
	c.Cleaning.OutputSuffix = strings.TrimSpace(c.Cleaning.OutputSuffix)
	if len(c.Cleaning.Extensions) == 0 {
		c.Cleaning.Extensions = append([]string(nil), DefaultExtensions...)
		return
	}
	seen := make(map[string]struct{}, len(c.Cleaning.Extensions))
	out := make([]string, 0, len(c.Cleaning.Extensions))
	for _, ext := range c.Cleaning.Extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		if _, ok := seen[ext]; ok {
			continue
		}
		seen[ext] = struct{}{}
		out = append(out, ext)
	}
	c.Cleaning.Extensions = out
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
