// SPDX-License-Identifier: EPL-2.0

package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ik5/audstream/augment"
	"github.com/ik5/audstream/chunker"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "audstream.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestDefault_IsValid(t *testing.T) {
	t.Parallel()

	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, chunker.DefaultHint, cfg.Audio.Hint)
	assert.Equal(t, chunker.DefaultTargetSamples, cfg.Window.Samples)

	src, err := cfg.SpeedSource()
	require.NoError(t, err)
	assert.Equal(t, augment.DefaultSteps, src)
}

func TestLoad_YAMLOverDefaults(t *testing.T) {
	path := writeConfig(t, `
pool:
  workers: 8
window:
  samples: 16000
  rate: 8000
speed:
  mode: uniform
  min: 0.9
  max: 1.1
audio:
  hint: ogg
  resample: 16000
  mono: true
http:
  header_timeout: 5s
urls:
  - http://example.com/a.ogg
  - http://example.com/b.ogg
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8, cfg.Pool.Workers)
	assert.Equal(t, 1024, cfg.Pool.OutputCapacity, "unset fields keep defaults")
	assert.Equal(t, WindowConfig{Samples: 16000, Rate: 8000}, cfg.Window)
	assert.Equal(t, "ogg", cfg.Audio.Hint)
	assert.True(t, cfg.Audio.Mono)
	assert.Equal(t, 5*time.Second, cfg.HTTP.HeaderTimeout)
	assert.Len(t, cfg.URLs, 2)

	src, err := cfg.SpeedSource()
	require.NoError(t, err)
	assert.Equal(t, augment.Uniform{Min: 0.9, Max: 1.1}, src)
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := writeConfig(t, "pool:\n  workers: 2\naudio:\n  hint: mp3\n")

	t.Setenv("AUDSTREAM_WORKERS", "6")
	t.Setenv("AUDSTREAM_HINT", "wav")
	t.Setenv("AUDSTREAM_LOG_LEVEL", "debug")
	t.Setenv("AUDSTREAM_OUTPUT_CAPACITY", "16")
	t.Setenv("AUDSTREAM_SPEED_MODE", "none")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 6, cfg.Pool.Workers)
	assert.Equal(t, 16, cfg.Pool.OutputCapacity)
	assert.Equal(t, "wav", cfg.Audio.Hint)

	lvl, err := cfg.Level()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, lvl)

	src, err := cfg.SpeedSource()
	require.NoError(t, err)
	assert.Equal(t, augment.Fixed(1), src)
}

func TestLoad_BadEnv(t *testing.T) {
	t.Setenv("AUDSTREAM_WORKERS", "many")

	_, err := Load("")
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestLoad_Errors(t *testing.T) {
	t.Parallel()

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = Load(writeConfig(t, "pool: [not, a, map]"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"no workers", func(c *Config) { c.Pool.Workers = 0 }},
		{"no output", func(c *Config) { c.Pool.OutputCapacity = 0 }},
		{"no block size", func(c *Config) { c.Stream.BlockSize = 0 }},
		{"no channel", func(c *Config) { c.Stream.ChannelCapacity = -1 }},
		{"no reader", func(c *Config) { c.Stream.ReaderSize = 0 }},
		{"zero window", func(c *Config) { c.Window.Rate = 0 }},
		{"negative resample", func(c *Config) { c.Audio.Resample = -8000 }},
		{"unknown hint", func(c *Config) { c.Audio.Hint = "flac" }},
		{"bad speed", func(c *Config) { c.Speed = SpeedConfig{Mode: "uniform", Min: 2, Max: 1} }},
		{"bad level", func(c *Config) { c.Logging.Level = "loud" }},
		{"bad format", func(c *Config) { c.Logging.Format = "xml" }},
		{"negative timeout", func(c *Config) { c.HTTP.HeaderTimeout = -time.Second }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := Default()
			tt.mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalid)
		})
	}
}

func TestOptions(t *testing.T) {
	t.Parallel()

	cfg := Default()
	opts := cfg.Options(slog.Default())
	assert.Len(t, opts, 12)

	cfg.Speed.Mode = "bogus"
	assert.Len(t, cfg.Options(slog.Default()), 11)
}
