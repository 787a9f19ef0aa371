package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, StoreSQLite, cfg.Store)
	assert.Equal(t, 10*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, DefaultSources, cfg.Sources)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("RECIPES_STORE", "memory")
	t.Setenv("RECIPES_SOURCES", "a.json,b.json")
	t.Setenv("RECIPES_HTTP_TIMEOUT", "3s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, StoreMemory, cfg.Store)
	assert.Equal(t, []string{"a.json", "b.json"}, cfg.Sources)
	assert.Equal(t, 3*time.Second, cfg.HTTPTimeout)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{
			name:    "bad duration",
			env:     map[string]string{"RECIPES_HTTP_TIMEOUT": "forever"},
			wantErr: "parse env:",
		},
		{
			name:    "unknown store",
			env:     map[string]string{"RECIPES_STORE": "redis"},
			wantErr: "invalid store",
		},
		{
			name:    "firestore without project",
			env:     map[string]string{"RECIPES_STORE": "firestore"},
			wantErr: "RECIPES_FIRESTORE_PROJECT",
		},
		{
			name:    "s3 without bucket",
			env:     map[string]string{"RECIPES_STORE": "s3"},
			wantErr: "RECIPES_S3_BUCKET",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
