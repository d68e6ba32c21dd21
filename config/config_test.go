package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	t.Parallel()
	cfg := Default()

	assert.Equal(t, "runledger-report", cfg.Output.Dir)
	assert.Equal(t, "inline", cfg.Attachments.Mode)
	assert.Equal(t, 80, cfg.Attachments.ImageQuality)
	assert.False(t, cfg.Attachments.CompressImages)
	assert.Equal(t, 10, cfg.History.Window)
	assert.False(t, cfg.History.Reset)
	assert.Equal(t, 4, cfg.Workers)
}

func TestLoadAndValidate(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := filepath.Join(dir, "runledger.yaml")
	content := `
output:
  dir: out
attachments:
  mode: stored
  compress_images: true
  image_quality: 60
history:
  window: 4
  reset: true
workers: 8
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, warnings, err := LoadAndValidate(path)
	require.NoError(t, err)
	assert.Empty(t, warnings)

	assert.Equal(t, "out", cfg.Output.Dir)
	assert.Equal(t, "stored", cfg.Attachments.Mode)
	assert.True(t, cfg.Attachments.CompressImages)
	assert.Equal(t, 60, cfg.Attachments.ImageQuality)
	assert.Equal(t, 4, cfg.History.Window)
	assert.True(t, cfg.History.Reset)
	assert.Equal(t, 8, cfg.Workers)
}

func TestLoadAndValidatePartialFileGetsDefaults(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := filepath.Join(dir, "runledger.yaml")
	require.NoError(t, os.WriteFile(path, []byte("output:\n  dir: custom\n"), 0644))

	cfg, warnings, err := LoadAndValidate(path)
	require.NoError(t, err)
	assert.Empty(t, warnings)

	assert.Equal(t, "custom", cfg.Output.Dir)
	assert.Equal(t, "inline", cfg.Attachments.Mode)
	assert.Equal(t, 10, cfg.History.Window)
}

func TestLoadMissingFile(t *testing.T) {
	t.Parallel()
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadInvalidYAML(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := filepath.Join(dir, "runledger.yaml")
	require.NoError(t, os.WriteFile(path, []byte("output: [unclosed"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidateFixups(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name         string
		mutate       func(*Config)
		check        func(*testing.T, *Config)
		wantWarnings int
	}{
		{
			name:   "unknown mode falls back to inline",
			mutate: func(c *Config) { c.Attachments.Mode = "weird" },
			check: func(t *testing.T, c *Config) {
				assert.Equal(t, "inline", c.Attachments.Mode)
			},
			wantWarnings: 1,
		},
		{
			name:   "quality below range clamps to 1",
			mutate: func(c *Config) { c.Attachments.ImageQuality = -3 },
			check: func(t *testing.T, c *Config) {
				assert.Equal(t, 1, c.Attachments.ImageQuality)
			},
			wantWarnings: 1,
		},
		{
			name:   "quality above range clamps to 100",
			mutate: func(c *Config) { c.Attachments.ImageQuality = 150 },
			check: func(t *testing.T, c *Config) {
				assert.Equal(t, 100, c.Attachments.ImageQuality)
			},
			wantWarnings: 1,
		},
		{
			name:   "negative window resets to default",
			mutate: func(c *Config) { c.History.Window = -1 },
			check: func(t *testing.T, c *Config) {
				assert.Equal(t, 10, c.History.Window)
			},
			wantWarnings: 1,
		},
		{
			name:   "negative workers resets to default",
			mutate: func(c *Config) { c.Workers = -2 },
			check: func(t *testing.T, c *Config) {
				assert.Equal(t, 4, c.Workers)
			},
			wantWarnings: 1,
		},
		{
			name:         "valid config has no warnings",
			mutate:       func(c *Config) {},
			check:        func(t *testing.T, c *Config) {},
			wantWarnings: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			warnings := Validate(cfg)
			assert.Len(t, warnings, tt.wantWarnings)
			tt.check(t, cfg)
		})
	}
}
