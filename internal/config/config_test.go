package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bgplay.hcl")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.hcl"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.NoError(t, cfg.Validate())
}

func TestLoadOverrides(t *testing.T) {
	path := writeConfig(t, `
rules {
  jacoby   = false
  max_cube = 64
}

match {
  length = 0
  games  = 25
}

autoplay {
  delay   = "250ms"
  seed    = 7
  workers = 2
}

log {
  level = "debug"
}
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.False(t, cfg.Rules.Jacoby)
	assert.True(t, cfg.Rules.Crawford, "unset attributes keep defaults")
	assert.Equal(t, 64, cfg.Rules.MaxCube)
	assert.Equal(t, Match{Length: 0, Games: 25}, cfg.Match)
	assert.Equal(t, 250*time.Millisecond, cfg.Autoplay.Delay)
	assert.Equal(t, int64(7), cfg.Autoplay.Seed)
	assert.Equal(t, 2, cfg.Autoplay.Workers)
	assert.Equal(t, 100, cfg.Autoplay.Matches)
	assert.Equal(t, log.DebugLevel, cfg.LogLevel())
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"syntax", `rules {`},
		{"unknown attribute", `rules { doubling = true }`},
		{"bad delay", `autoplay { delay = "soon" }`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			assert.Error(t, err)
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"cube not a power of two", func(c *Config) { c.Rules.MaxCube = 48 }},
		{"cube zero", func(c *Config) { c.Rules.MaxCube = 0 }},
		{"negative length", func(c *Config) { c.Match.Length = -1 }},
		{"empty money session", func(c *Config) { c.Match.Length = 0; c.Match.Games = 0 }},
		{"negative delay", func(c *Config) { c.Autoplay.Delay = -time.Second }},
		{"no workers", func(c *Config) { c.Autoplay.Workers = 0 }},
		{"no matches", func(c *Config) { c.Autoplay.Matches = 0 }},
		{"bad level", func(c *Config) { c.Log.Level = "loud" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
