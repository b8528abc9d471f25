// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

// Package config loads calculator settings from YAML, .env files and the
// environment.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variable names.
const (
	EnvDB        = "ARITH_DB"
	EnvHistory   = "ARITH_HISTORY"
	EnvLimit     = "ARITH_HISTORY_LIMIT"
	EnvPrecision = "ARITH_PRECISION"
	EnvLogLevel  = "ARITH_LOG_LEVEL"
)

// MaxPrecision is the largest number of digits after the decimal point.
const MaxPrecision = 17

// Config holds calculator settings.
type Config struct {
	DBPath       string `yaml:"db"`
	History      bool   `yaml:"history"`
	HistoryLimit int    `yaml:"history_limit"`
	Precision    int    `yaml:"precision"` // -1 prints the shortest exact form
	LogLevel     string `yaml:"log_level"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		DBPath:       "arith.db",
		History:      true,
		HistoryLimit: 20,
		Precision:    -1,
		LogLevel:     "warn",
	}
}

// Decode overlays the YAML document read from r onto cfg. Keys absent from
// the document keep their current values.
func Decode(r io.Reader, cfg *Config) error {
	err := yaml.NewDecoder(r).Decode(cfg)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

// LoadFile overlays the YAML file at path onto cfg.
func LoadFile(path string, cfg *Config) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := Decode(f, cfg); err != nil {
		return fmt.Errorf("config %s: %w", path, err)
	}
	return nil
}

// LoadDotEnv loads variables from the given .env files into the process
// environment. Variables that are already set are left alone.
func LoadDotEnv(paths ...string) error {
	return godotenv.Load(paths...)
}

// ApplyEnv overlays ARITH_* variables onto cfg using lookup, usually os.LookupEnv.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvDB); ok && v != "" {
		c.DBPath = v
	}
	if v, ok := lookup(EnvHistory); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvHistory, err)
		}
		c.History = b
	}
	if v, ok := lookup(EnvLimit); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvLimit, err)
		}
		c.HistoryLimit = n
	}
	if v, ok := lookup(EnvPrecision); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvPrecision, err)
		}
		c.Precision = n
	}
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		c.LogLevel = v
	}
	return nil
}

// Validate checks the settings for consistency.
func (c Config) Validate() error {
	if c.HistoryLimit < 0 {
		return fmt.Errorf("history limit must not be negative: %d", c.HistoryLimit)
	}
	if c.Precision < -1 || c.Precision > MaxPrecision {
		return fmt.Errorf("precision must be between -1 and %d: %d", MaxPrecision, c.Precision)
	}
	if _, ok := ParseLevel(c.LogLevel); !ok {
		return fmt.Errorf("unknown log level: %s", c.LogLevel)
	}
	if c.History && c.DBPath == "" {
		return errors.New("history enabled but no database path set")
	}
	return nil
}

// ParseLevel parses a log level name.
func ParseLevel(s string) (slog.Level, bool) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, true
	case "info", "":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	}
	return slog.LevelInfo, false
}
