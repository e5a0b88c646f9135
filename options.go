// SPDX-License-Identifier: EPL-2.0

package audstream

import (
	"log/slog"
	"net/http"

	"github.com/ik5/audstream/audio"
	"github.com/ik5/audstream/augment"
	"github.com/ik5/audstream/chunker"
	"github.com/ik5/audstream/formats"
	"github.com/ik5/audstream/stream"
)

// DefaultOutputCapacity is the number of finished chunks buffered for the
// caller.
const DefaultOutputCapacity = 1024

type options struct {
	logger          *slog.Logger
	client          *http.Client
	userAgent       string
	blockSize       int
	channelCapacity int
	readerSize      int
	outputCapacity  int
	stage           chunker.Config
}

func defaultOptions() options {
	return options{
		logger:          slog.Default(),
		blockSize:       stream.DefaultBlockSize,
		channelCapacity: stream.DefaultChannelCapacity,
		readerSize:      stream.DefaultReaderSize,
		outputCapacity:  DefaultOutputCapacity,
		stage: chunker.Config{
			Hint:          chunker.DefaultHint,
			TargetSamples: chunker.DefaultTargetSamples,
			TargetRate:    chunker.DefaultTargetRate,
			Speed:         augment.DefaultSteps,
		},
	}
}

// Option configures a Pool.
type Option func(*options)

func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithHTTPClient replaces the download client. The default one accepts
// response headers up to 1 MB.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) { o.client = c }
}

func WithUserAgent(ua string) Option {
	return func(o *options) { o.userAgent = ua }
}

// WithBlockSize sets the largest byte block read from a response body.
func WithBlockSize(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.blockSize = n
		}
	}
}

// WithChannelCapacity sets how many blocks a download may run ahead of its
// decoder.
func WithChannelCapacity(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.channelCapacity = n
		}
	}
}

func WithReaderSize(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.readerSize = n
		}
	}
}

// WithOutputCapacity sets how many chunks may wait for the caller before
// decoding blocks.
func WithOutputCapacity(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.outputCapacity = n
		}
	}
}

// WithHint selects the decoder for every URL ("mp3", "ogg", "wav", ...).
func WithHint(hint string) Option {
	return func(o *options) {
		if hint != "" {
			o.stage.Hint = hint
		}
	}
}

// WithWindow sets the nominal chunk: samples at rate.
func WithWindow(samples, rate int) Option {
	return func(o *options) {
		if samples > 0 && rate > 0 {
			o.stage.TargetSamples = samples
			o.stage.TargetRate = rate
		}
	}
}

func WithSpeed(src augment.Source) Option {
	return func(o *options) {
		if src != nil {
			o.stage.Speed = src
		}
	}
}

// WithCondition resamples and/or downmixes every track before slicing.
func WithCondition(c audio.ConditionOptions) Option {
	return func(o *options) { o.stage.Condition = c }
}

// WithRegistry replaces the decoders. The default has every bundled format.
func WithRegistry(r *audio.Registry) Option {
	return func(o *options) {
		if r != nil {
			o.stage.Registry = r
		}
	}
}

func WithMaxDecodeErrors(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.stage.MaxDecodeErrors = n
		}
	}
}

func (o *options) complete() {
	if o.client == nil {
		o.client = stream.NewHTTPClient()
	}
	if o.stage.Registry == nil {
		o.stage.Registry = formats.NewRegistry()
	}
	o.stage.Logger = o.logger
}
