/*
Package config loads server settings from the environment.

SOURCES (later wins):
  1. Built-in defaults
  2. .env file in the working directory (optional, via godotenv)
  3. Process environment

VARIABLES:
  PAYROLL_PORT              HTTP port (default 8080)
  PAYROLL_DB                SQLite path for rule sets (default payroll.db)
  PAYROLL_CORS_ORIGINS      Comma-separated allowed origins (default *)
  PAYROLL_PARALLEL          Run policies concurrently (default false)
  PAYROLL_DEFAULT_RULE_SET  Rule set used when a request names none (default statutory)
  LOG_LEVEL                 trace|debug|info|warn|error (default info)
  LOG_FORMAT                console|json (default console)

Load never logs; it returns an error and lets the caller decide.
*/
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/warp/payroll-engine/logger"
)

type Config struct {
	Port           int
	DBPath         string
	CORSOrigins    []string
	Parallel       bool
	DefaultRuleSet string
	LogLevel       string
	LogFormat      string
}

func Default() Config {
	return Config{
		Port:           8080,
		DBPath:         "payroll.db",
		CORSOrigins:    []string{"*"},
		DefaultRuleSet: "statutory",
		LogLevel:       "info",
		LogFormat:      "console",
	}
}

// Load reads the given dotenv files (".env" when none are named) and then
// the process environment. Missing dotenv files are not an error.
func Load(files ...string) (*Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read %s: %w", f, err)
		}
	}
	return FromLookup(os.LookupEnv)
}

// FromLookup builds a Config from an environment lookup function.
func FromLookup(lookup func(string) (string, bool)) (*Config, error) {
	cfg := Default()
	get := func(key string) (string, bool) {
		v, ok := lookup(key)
		v = strings.TrimSpace(v)
		return v, ok && v != ""
	}

	if v, ok := get("PAYROLL_PORT"); ok {
		port, err := strconv.Atoi(v)
		if err != nil || port < 1 || port > 65535 {
			return nil, fmt.Errorf("PAYROLL_PORT: invalid port %q", v)
		}
		cfg.Port = port
	}
	if v, ok := get("PAYROLL_DB"); ok {
		cfg.DBPath = v
	}
	if v, ok := get("PAYROLL_CORS_ORIGINS"); ok {
		cfg.CORSOrigins = splitCSV(v)
	}
	if v, ok := get("PAYROLL_PARALLEL"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("PAYROLL_PARALLEL: %w", err)
		}
		cfg.Parallel = b
	}
	if v, ok := get("PAYROLL_DEFAULT_RULE_SET"); ok {
		cfg.DefaultRuleSet = v
	}
	if v, ok := get("LOG_LEVEL"); ok {
		if !logger.ValidLevel(v) {
			return nil, fmt.Errorf("LOG_LEVEL: unknown level %q", v)
		}
		cfg.LogLevel = strings.ToLower(v)
	}
	if v, ok := get("LOG_FORMAT"); ok {
		v = strings.ToLower(v)
		if v != "console" && v != "json" {
			return nil, fmt.Errorf("LOG_FORMAT: must be console or json, got %q", v)
		}
		cfg.LogFormat = v
	}
	return &cfg, nil
}

// Addr returns the listen address for the configured port.
func (c Config) Addr() string {
	return ":" + strconv.Itoa(c.Port)
}

func (c Config) LoggerOptions() logger.Options {
	return logger.Options{Level: c.LogLevel, Format: c.LogFormat, Service: "payroll-engine"}
}

func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
