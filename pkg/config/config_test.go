package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("SOURCE_FILE", "testdata/staff.csv")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "testdata/staff.csv", cfg.SourceFile)
	assert.Equal(t, 30*time.Second, cfg.FetchTimeout)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Empty(t, cfg.ReferenceYear)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{
			name: "url only",
			cfg:  Config{SourceURL: "https://example.org/x.csv", FetchTimeout: time.Second},
		},
		{
			name: "file only",
			cfg:  Config{SourceFile: "x.csv", FetchTimeout: time.Second},
		},
		{
			name:    "no source",
			cfg:     Config{FetchTimeout: time.Second},
			wantErr: true,
		},
		{
			name:    "both sources",
			cfg:     Config{SourceURL: "https://example.org/x.csv", SourceFile: "x.csv", FetchTimeout: time.Second},
			wantErr: true,
		},
		{
			name:    "bad timeout",
			cfg:     Config{SourceFile: "x.csv"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
