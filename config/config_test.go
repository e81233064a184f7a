package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lookupMap(m map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func TestFromLookup_Defaults(t *testing.T) {
	cfg, err := FromLookup(lookupMap(nil))
	require.NoError(t, err)
	assert.Equal(t, Default(), *cfg)
	assert.Equal(t, ":8080", cfg.Addr())
}

func TestFromLookup_Overrides(t *testing.T) {
	cfg, err := FromLookup(lookupMap(map[string]string{
		"PAYROLL_PORT":             "9090",
		"PAYROLL_DB":               "/tmp/rules.db",
		"PAYROLL_CORS_ORIGINS":     "https://a.example, https://b.example,",
		"PAYROLL_PARALLEL":         "true",
		"PAYROLL_DEFAULT_RULE_SET": "iso-week",
		"LOG_LEVEL":                "DEBUG",
		"LOG_FORMAT":               "json",
	}))
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "/tmp/rules.db", cfg.DBPath)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
	assert.True(t, cfg.Parallel)
	assert.Equal(t, "iso-week", cfg.DefaultRuleSet)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LoggerOptions().Format)
}

func TestFromLookup_BlankValuesKeepDefaults(t *testing.T) {
	cfg, err := FromLookup(lookupMap(map[string]string{"PAYROLL_PORT": "  ", "PAYROLL_DB": ""}))
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "payroll.db", cfg.DBPath)
}

func TestFromLookup_Errors(t *testing.T) {
	for name, env := range map[string]map[string]string{
		"port not a number": {"PAYROLL_PORT": "http"},
		"port out of range": {"PAYROLL_PORT": "70000"},
		"parallel":          {"PAYROLL_PARALLEL": "sometimes"},
		"log level":         {"LOG_LEVEL": "verbose"},
		"log format":        {"LOG_FORMAT": "xml"},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := FromLookup(lookupMap(env))
			assert.Error(t, err)
		})
	}
}

func TestLoad_DotEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("PAYROLL_DEFAULT_RULE_SET=from-dotenv\n"), 0o600))
	t.Setenv("PAYROLL_DEFAULT_RULE_SET", "")
	os.Unsetenv("PAYROLL_DEFAULT_RULE_SET")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-dotenv", cfg.DefaultRuleSet)
}

func TestLoad_MissingFileIsFine(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.env"))
	assert.NoError(t, err)
}
