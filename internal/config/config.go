// SPDX-License-Identifier: EPL-2.0

// Package config loads the audstream command configuration from YAML and the
// environment.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/ik5/audstream"
	"github.com/ik5/audstream/audio"
	"github.com/ik5/audstream/augment"
	"github.com/ik5/audstream/chunker"
	"github.com/ik5/audstream/formats"
	"github.com/ik5/audstream/stream"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid configuration")

type Config struct {
	Pool    PoolConfig    `yaml:"pool"`
	Stream  StreamConfig  `yaml:"stream"`
	Window  WindowConfig  `yaml:"window"`
	Speed   SpeedConfig   `yaml:"speed"`
	Audio   AudioConfig   `yaml:"audio"`
	HTTP    HTTPConfig    `yaml:"http"`
	Logging LoggingConfig `yaml:"logging"`
	URLs    []string      `yaml:"urls"`
}

type PoolConfig struct {
	Workers        int `yaml:"workers"`
	OutputCapacity int `yaml:"output_capacity"`
}

type StreamConfig struct {
	BlockSize       int `yaml:"block_size"`
	ChannelCapacity int `yaml:"channel_capacity"`
	ReaderSize      int `yaml:"reader_size"`
}

type WindowConfig struct {
	Samples int `yaml:"samples"`
	Rate    int `yaml:"rate"`
}

// SpeedConfig selects the speed factor source, see augment.Parse.
type SpeedConfig struct {
	Mode  string  `yaml:"mode"`
	Min   float32 `yaml:"min"`
	Max   float32 `yaml:"max"`
	Steps []int   `yaml:"steps"`
}

type AudioConfig struct {
	Hint            string `yaml:"hint"`
	Resample        int    `yaml:"resample"` // 0 keeps the native rate
	Mono            bool   `yaml:"mono"`
	MaxDecodeErrors int    `yaml:"max_decode_errors"`
}

type HTTPConfig struct {
	UserAgent     string        `yaml:"user_agent"`
	HeaderTimeout time.Duration `yaml:"header_timeout"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Pool: PoolConfig{
			Workers:        4,
			OutputCapacity: audstream.DefaultOutputCapacity,
		},
		Stream: StreamConfig{
			BlockSize:       stream.DefaultBlockSize,
			ChannelCapacity: stream.DefaultChannelCapacity,
			ReaderSize:      stream.DefaultReaderSize,
		},
		Window: WindowConfig{
			Samples: chunker.DefaultTargetSamples,
			Rate:    chunker.DefaultTargetRate,
		},
		Speed: SpeedConfig{Mode: "steps"},
		Audio: AudioConfig{
			Hint:            chunker.DefaultHint,
			MaxDecodeErrors: chunker.DefaultMaxDecodeErrors,
		},
		HTTP: HTTPConfig{
			UserAgent:     "audstream",
			HeaderTimeout: 30 * time.Second,
		},
		Logging: LoggingConfig{Level: "info", Format: "text"},
	}
}

// Load reads path over the defaults, applies environment overrides and
// validates the result. An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv overrides fields from AUDSTREAM_* variables.
func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup("AUDSTREAM_WORKERS"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: AUDSTREAM_WORKERS: %w", ErrInvalid, err)
		}
		c.Pool.Workers = n
	}
	if v, ok := lookup("AUDSTREAM_OUTPUT_CAPACITY"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: AUDSTREAM_OUTPUT_CAPACITY: %w", ErrInvalid, err)
		}
		c.Pool.OutputCapacity = n
	}
	if v, ok := lookup("AUDSTREAM_HINT"); ok {
		c.Audio.Hint = v
	}
	if v, ok := lookup("AUDSTREAM_LOG_LEVEL"); ok {
		c.Logging.Level = v
	}
	if v, ok := lookup("AUDSTREAM_SPEED_MODE"); ok {
		c.Speed.Mode = v
	}
	return nil
}

// Validate checks every section.
func (c *Config) Validate() error {
	switch {
	case c.Pool.Workers < 1:
		return fmt.Errorf("%w: pool.workers must be at least 1, got %d", ErrInvalid, c.Pool.Workers)
	case c.Pool.OutputCapacity < 1:
		return fmt.Errorf("%w: pool.output_capacity must be at least 1, got %d", ErrInvalid, c.Pool.OutputCapacity)
	case c.Stream.BlockSize < 1:
		return fmt.Errorf("%w: stream.block_size must be positive, got %d", ErrInvalid, c.Stream.BlockSize)
	case c.Stream.ChannelCapacity < 1:
		return fmt.Errorf("%w: stream.channel_capacity must be positive, got %d", ErrInvalid, c.Stream.ChannelCapacity)
	case c.Stream.ReaderSize < 1:
		return fmt.Errorf("%w: stream.reader_size must be positive, got %d", ErrInvalid, c.Stream.ReaderSize)
	case c.Window.Samples < 1 || c.Window.Rate < 1:
		return fmt.Errorf("%w: window needs positive samples and rate, got %d at %d Hz", ErrInvalid, c.Window.Samples, c.Window.Rate)
	case c.Audio.Resample < 0:
		return fmt.Errorf("%w: audio.resample cannot be negative, got %d", ErrInvalid, c.Audio.Resample)
	case c.HTTP.HeaderTimeout < 0:
		return fmt.Errorf("%w: http.header_timeout cannot be negative", ErrInvalid)
	}

	if _, ok := formats.NewRegistry().Get(c.Audio.Hint); !ok {
		return fmt.Errorf("%w: audio.hint %q is not a known format", ErrInvalid, c.Audio.Hint)
	}
	if _, err := c.SpeedSource(); err != nil {
		return fmt.Errorf("%w: speed: %w", ErrInvalid, err)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	if f := strings.ToLower(c.Logging.Format); f != "text" && f != "json" {
		return fmt.Errorf("%w: logging.format must be 'text' or 'json', got %q", ErrInvalid, c.Logging.Format)
	}

	return nil
}

// SpeedSource builds the configured speed factor source.
func (c *Config) SpeedSource() (augment.Source, error) {
	return augment.Parse(c.Speed.Mode, c.Speed.Min, c.Speed.Max, c.Speed.Steps)
}

// Level parses logging.level.
func (c *Config) Level() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.Logging.Level)); err != nil {
		return 0, fmt.Errorf("%w: logging.level: %w", ErrInvalid, err)
	}
	return lvl, nil
}

// Options converts the configuration to pool options. The result of
// Validate is assumed; invalid speed settings fall back to the default
// source.
func (c *Config) Options(logger *slog.Logger) []audstream.Option {
	client := stream.NewHTTPClient()
	if c.HTTP.HeaderTimeout > 0 {
		if tr, ok := client.Transport.(*http.Transport); ok {
			tr.ResponseHeaderTimeout = c.HTTP.HeaderTimeout
		}
	}

	opts := []audstream.Option{
		audstream.WithLogger(logger),
		audstream.WithHTTPClient(client),
		audstream.WithUserAgent(c.HTTP.UserAgent),
		audstream.WithBlockSize(c.Stream.BlockSize),
		audstream.WithChannelCapacity(c.Stream.ChannelCapacity),
		audstream.WithReaderSize(c.Stream.ReaderSize),
		audstream.WithOutputCapacity(c.Pool.OutputCapacity),
		audstream.WithHint(c.Audio.Hint),
		audstream.WithWindow(c.Window.Samples, c.Window.Rate),
		audstream.WithMaxDecodeErrors(c.Audio.MaxDecodeErrors),
		audstream.WithCondition(audio.ConditionOptions{
			SampleRate: c.Audio.Resample,
			Mono:       c.Audio.Mono,
		}),
	}

	if src, err := c.SpeedSource(); err == nil {
		opts = append(opts, audstream.WithSpeed(src))
	}

	return opts
}
