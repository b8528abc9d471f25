// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

// Command arith is an interactive arithmetic calculator.
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"
	"nickandperla.net/arith/internal/config"
	"nickandperla.net/arith/pkg/arith"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin *os.File, stdout, stderr io.Writer) int {
	flags := flag.NewFlagSet("arith", flag.ContinueOnError)
	flags.SetOutput(stderr)
	var (
		evalStr    = flags.String("e", "", "Evaluate expression")
		file       = flags.String("f", "", "Evaluate each line of file")
		dbPath     = flags.String("db", "", "SQLite history database path")
		noHistory  = flags.Bool("no-history", false, "Do not record history")
		configPath = flags.String("config", "", "YAML config file")
		envFile    = flags.String("env", ".env", "dotenv file with ARITH_* variables")
		precision  = flags.Int("precision", -1, "Digits after the decimal point (-1 for shortest)")
		logLevel   = flags.String("log-level", "", "Log level: debug, info, warn or error")
	)
	if err := flags.Parse(args); err != nil {
		return 2
	}

	set := make(map[string]bool)
	flags.Visit(func(f *flag.Flag) { set[f.Name] = true })

	var dotenvErr error
	if *envFile != "" {
		dotenvErr = config.LoadDotEnv(*envFile)
	}
	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	if set["db"] {
		cfg.DBPath = *dbPath
	}
	if *noHistory {
		cfg.History = false
	}
	if set["precision"] {
		cfg.Precision = *precision
	}
	if set["log-level"] {
		cfg.LogLevel = *logLevel
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	level, _ := config.ParseLevel(cfg.LogLevel)
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	if dotenvErr != nil {
		if set["env"] {
			logger.Warn("failed to load dotenv file", "path", *envFile, "error", dotenvErr)
		} else {
			logger.Debug("skipping dotenv file", "path", *envFile, "error", dotenvErr)
		}
	}

	opts := []arith.Option{
		arith.WithLogger(logger),
		arith.WithPrecision(cfg.Precision),
	}
	if cfg.History {
		opts = append(opts, arith.WithSQLiteStore(cfg.DBPath))
	}
	calc := arith.New(opts...)
	defer calc.Close()
	logger.Debug("calculator ready", "session", calc.Session(), "history", calc.HasHistory())

	switch {
	case *evalStr != "":
		v, err := calc.Eval(*evalStr)
		if err != nil {
			fmt.Fprintln(stderr, arith.Describe(*evalStr, err))
			return 1
		}
		fmt.Fprintln(stdout, calc.Format(v))
		return 0

	case *file != "":
		f, err := os.Open(*file)
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
		defer f.Close()
		if failed := runLines(calc, f, stdout, stderr); failed > 0 {
			return 1
		}
		return 0

	case !term.IsTerminal(int(stdin.Fd())):
		// Piped input
		if failed := runLines(calc, stdin, stdout, stderr); failed > 0 {
			return 1
		}
		return 0
	}

	runREPL(calc, cfg.HistoryLimit, stdin, stdout)
	return 0
}

// loadConfig layers defaults, the YAML file and the environment.
func loadConfig(configPath string) (config.Config, error) {
	cfg := config.Default()
	if configPath != "" {
		if err := config.LoadFile(configPath, &cfg); err != nil {
			return cfg, err
		}
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// runLines evaluates one expression per line. Blank lines and lines starting
// with '#' are skipped. It returns the number of lines that failed.
func runLines(calc *arith.Calculator, r io.Reader, stdout, stderr io.Writer) int {
	scanner := bufio.NewScanner(r)
	failed := 0
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		v, err := calc.Eval(line)
		if err != nil {
			failed++
			fmt.Fprintf(stderr, "line %d: %s\n", lineNo, arith.Describe(line, err))
			continue
		}
		fmt.Fprintln(stdout, calc.Format(v))
	}
	if err := scanner.Err(); err != nil && !errors.Is(err, fs.ErrClosed) {
		fmt.Fprintf(stderr, "Error reading input: %v\n", err)
		failed++
	}
	return failed
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimPrefix(strings.TrimSpace(s), "#"), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid history id %q", s)
	}
	return id, nil
}
