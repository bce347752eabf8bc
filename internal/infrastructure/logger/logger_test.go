package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func jsonEntry(t *testing.T, line []byte) map[string]interface{} {
	t.Helper()
	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(line, &entry))
	return entry
}

func TestNewWithOutput_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithOutput(Config{Level: "info", Format: "json", ServiceName: "airease"}, &buf)

	log.Info().Str("route", "PVG-PEK").Msg("search completed")

	entry := jsonEntry(t, buf.Bytes())
	assert.Equal(t, "airease", entry["service"])
	assert.Equal(t, "PVG-PEK", entry["route"])
	assert.Equal(t, "search completed", entry["message"])
	assert.Equal(t, "info", entry["level"])
	assert.Contains(t, entry, "time")
}

func TestNewWithOutput_ConsoleFormat(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithOutput(Config{Level: "info", Format: "console", ServiceName: "airease"}, &buf)

	log.Info().Msg("console check")

	out := buf.String()
	assert.Contains(t, out, "console check")
	assert.False(t, json.Valid(buf.Bytes()), "console output should not be JSON")
}

func TestNewWithOutput_LevelFiltering(t *testing.T) {
	tests := []struct {
		name      string
		level     string
		wantDebug bool
		wantInfo  bool
	}{
		{name: "debug passes everything", level: "debug", wantDebug: true, wantInfo: true},
		{name: "info drops debug", level: "info", wantDebug: false, wantInfo: true},
		{name: "error drops info", level: "error", wantDebug: false, wantInfo: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			log := NewWithOutput(Config{Level: tt.level, Format: "json"}, &buf)

			log.Debug().Msg("debug line")
			log.Info().Msg("info line")

			out := buf.String()
			assert.Equal(t, tt.wantDebug, strings.Contains(out, "debug line"))
			assert.Equal(t, tt.wantInfo, strings.Contains(out, "info line"))
		})
	}
}

func TestNewWithOutput_InvalidLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithOutput(Config{Level: "chatty", Format: "json"}, &buf)

	log.Debug().Msg("hidden")
	log.Info().Msg("visible")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "visible")
}

func TestNewWithOutput_CallerEnabled(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithOutput(Config{Level: "info", Format: "json", EnableCaller: true}, &buf)

	log.Info().Msg("with caller")

	entry := jsonEntry(t, buf.Bytes())
	assert.Contains(t, entry, "caller")
}

func TestWithComponent(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithOutput(Config{Level: "info", Format: "json"}, &buf)

	log.WithComponent("prefs").Info().Msg("event shipped")

	entry := jsonEntry(t, buf.Bytes())
	assert.Equal(t, "prefs", entry["component"])
}

func TestNop_Discards(t *testing.T) {
	log := Nop()
	assert.NotPanics(t, func() {
		log.Info().Str("k", "v").Msg("dropped")
		log.Error().Msg("dropped too")
	})
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "info", cfg.Level)
	assert.Equal(t, "json", cfg.Format)
	assert.Equal(t, "airease", cfg.ServiceName)
	assert.False(t, cfg.EnableCaller)
}

func TestGlobalFunctions_UseInstalledLogger(t *testing.T) {
	prev := Global
	defer SetGlobal(prev)

	var buf bytes.Buffer
	SetGlobal(NewWithOutput(Config{Level: "debug", Format: "json", ServiceName: "airease"}, &buf))

	Info().Msg("global info")
	Warn().Msg("global warn")
	Debug().Msg("global debug")

	out := buf.String()
	assert.Contains(t, out, "global info")
	assert.Contains(t, out, "global warn")
	assert.Contains(t, out, "global debug")
}

func TestGlobalFunctions_AutoInit(t *testing.T) {
	prev := Global
	defer SetGlobal(prev)

	Global = nil
	assert.NotPanics(t, func() {
		Info().Msg("auto init")
	})
	assert.NotNil(t, Global)
}
