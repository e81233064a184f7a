package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]zerolog.Level{
		"trace":    zerolog.TraceLevel,
		"debug":    zerolog.DebugLevel,
		"info":     zerolog.InfoLevel,
		"WARN":     zerolog.WarnLevel,
		"warning":  zerolog.WarnLevel,
		" error ":  zerolog.ErrorLevel,
		"fatal":    zerolog.FatalLevel,
		"panic":    zerolog.PanicLevel,
		"":         zerolog.InfoLevel,
		"nonsense": zerolog.InfoLevel,
	}
	for in, want := range cases {
		assert.Equal(t, want, ParseLevel(in), "ParseLevel(%q)", in)
	}

	assert.True(t, ValidLevel("Debug"))
	assert.False(t, ValidLevel("verbose"))
}

func TestNew_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{Level: "warn", Format: "json", Service: "payroll", Writer: &buf})

	log.Info().Msg("dropped")
	log.Warn().Int("hours", 9).Msg("kept")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line), "exactly one JSON line: %s", buf.String())
	assert.Equal(t, "kept", line["message"])
	assert.Equal(t, "payroll", line["service"])
	assert.Equal(t, float64(9), line["hours"])
}

func TestNew_ConsoleFormat(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{Level: "info", Format: "console", Writer: &buf})

	log.Info().Str("month", "2025-01").Msg("calculated")
	assert.Contains(t, buf.String(), "calculated")
	assert.Contains(t, buf.String(), "month=2025-01")
}

func TestC_AddsRequestScope(t *testing.T) {
	var buf bytes.Buffer
	Init(Options{Level: "debug", Format: "json", Writer: &buf})

	ctx := WithCalculation(WithRequest(context.Background(), "req-1"), "calc-1")
	C(ctx).Info().Msg("scoped")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "req-1", line["request_id"])
	assert.Equal(t, "calc-1", line["calculation_id"])

	buf.Reset()
	Named("sqlite").Info().Msg("named")
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "sqlite", line["component"])

	assert.Same(t, Get(), Named(""))
}
