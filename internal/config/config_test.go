package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stevenyi0526-glitch/AirEaseWeb-sub002/internal/domain"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "http://localhost:9090", cfg.Backend.BaseURL)
	assert.Equal(t, "gpt-4o-mini", cfg.AI.Model)
	assert.Equal(t, 256, cfg.Prefs.BufferSize)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.IsProduction())
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("SERVER_PORT", "3000")
	t.Setenv("BACKEND_BASE_URL", "http://backend.internal:8000")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("APP_ENV", "production")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 3000, cfg.Server.Port)
	assert.Equal(t, "http://backend.internal:8000", cfg.Backend.BaseURL)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.True(t, cfg.IsProduction())
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name    string
		envs    map[string]string
		wantErr string
	}{
		{
			name:    "invalid port",
			envs:    map[string]string{"SERVER_PORT": "99999"},
			wantErr: "SERVER_PORT",
		},
		{
			name:    "backend timeout not below search timeout",
			envs:    map[string]string{"BACKEND_TIMEOUT": "20s", "BACKEND_SEARCH_TIMEOUT": "15s"},
			wantErr: "BACKEND_TIMEOUT",
		},
		{
			name:    "invalid log level",
			envs:    map[string]string{"LOG_LEVEL": "verbose"},
			wantErr: "LOG_LEVEL",
		},
		{
			name:    "invalid log format",
			envs:    map[string]string{"LOG_FORMAT": "xml"},
			wantErr: "LOG_FORMAT",
		},
		{
			name:    "invalid app env",
			envs:    map[string]string{"APP_ENV": "qa"},
			wantErr: "APP_ENV",
		},
		{
			name:    "zero prefs buffer",
			envs:    map[string]string{"PREFS_BUFFER_SIZE": "0"},
			wantErr: "PREFS_BUFFER_SIZE",
		},
		{
			name:    "non-positive AI rate",
			envs:    map[string]string{"AI_RATE_PER_SECOND": "0"},
			wantErr: "AI_RATE_PER_SECOND",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.envs {
				t.Setenv(k, v)
			}

			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestPersonaWeights(t *testing.T) {
	tests := []struct {
		name    string
		persona string
		wantErr bool
	}{
		{name: "default persona", persona: "default"},
		{name: "empty resolves to default", persona: ""},
		{name: "business persona", persona: "business"},
		{name: "budget persona", persona: "budget"},
		{name: "family persona", persona: "family"},
		{name: "case-insensitive", persona: "Business"},
		{name: "unknown persona", persona: "luxury", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, err := PersonaWeights(tt.persona)
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrUnknownPersona)
				return
			}
			require.NoError(t, err)
			assert.NoError(t, w.Validate())
		})
	}
}

func TestPersonaTableIsValid(t *testing.T) {
	assert.NotPanics(t, MustValidatePersonas)
	assert.Len(t, Personas(), 4)
}
