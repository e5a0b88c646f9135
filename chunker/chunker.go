// SPDX-License-Identifier: EPL-2.0

// Package chunker decodes one audio stream and slices it into fixed-duration
// chunks, each stretched by its own random speed factor.
//
// The window length is measured against a target format: TargetSamples at
// TargetRate make one nominal chunk. A chunk decoded at nativeRate with speed
// factor s holds
//
//	trunc(TargetSamples / TargetRate * s * nativeRate)
//
// interleaved samples, so resampling it to TargetRate/s gives exactly the
// target length. Samples left over at the end of a stream are discarded.
package chunker

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/ik5/audstream/audio"
	"github.com/ik5/audstream/augment"
)

const (
	DefaultHint            = "mp3"
	DefaultTargetSamples   = 512*256 - 1
	DefaultTargetRate      = 16000
	DefaultMaxDecodeErrors = 32
)

// Prober opens a byte stream as packets. *audio.Registry implements it.
type Prober interface {
	Probe(hint string, r io.Reader, opts audio.ConditionOptions) (audio.PacketReader, error)
}

// Config of a Stage. Zero values take the defaults above; a nil Speed takes
// augment.DefaultSteps.
type Config struct {
	Registry        Prober
	Hint            string
	TargetSamples   int
	TargetRate      int
	Speed           augment.Source
	Condition       audio.ConditionOptions
	MaxDecodeErrors int
	Logger          *slog.Logger
}

// Stats of one Run.
type Stats struct {
	Packets   int // packets of the default track
	Skipped   int // recoverable packet errors
	Chunks    int
	Samples   int // samples emitted in chunks
	Discarded int // trailing samples that never filled a window
}

// Stage turns one byte stream into chunks. A Stage holds no per-stream state
// and may run several streams concurrently.
type Stage struct {
	cfg Config
}

// New returns a Stage. cfg.Registry is required.
func New(cfg Config) *Stage {
	if cfg.Hint == "" {
		cfg.Hint = DefaultHint
	}
	if cfg.TargetSamples <= 0 {
		cfg.TargetSamples = DefaultTargetSamples
	}
	if cfg.TargetRate <= 0 {
		cfg.TargetRate = DefaultTargetRate
	}
	if cfg.Speed == nil {
		cfg.Speed = augment.DefaultSteps
	}
	if cfg.MaxDecodeErrors <= 0 {
		cfg.MaxDecodeErrors = DefaultMaxDecodeErrors
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Stage{cfg: cfg}
}

// RequiredSamples is the window length, in interleaved samples, for one
// chunk at rate with the given speed factor.
func RequiredSamples(targetSamples, targetRate int, speed float32, rate int) int {
	duration := float64(targetSamples) / float64(targetRate)
	return int(duration * float64(speed) * float64(rate))
}

// window accumulates samples of one stream until a chunk is full.
type window struct {
	rate     int
	channels int
	buf      []float32
	factor   augment.Factor
	required int
}

func (s *Stage) newWindow(rate, channels int) (*window, error) {
	w := &window{rate: rate, channels: channels}
	if err := s.draw(w); err != nil {
		return nil, err
	}
	w.buf = make([]float32, 0, w.required*2)
	return w, nil
}

// draw picks the next speed factor and recomputes the window length.
// A factor that leaves no samples in the window is an error.
func (s *Stage) draw(w *window) error {
	w.factor = s.cfg.Speed.Next()
	if !(w.factor.Speed > 0) {
		return fmt.Errorf("%w: speed factor %v", augment.ErrInvalidSpeed, w.factor.Speed)
	}
	w.required = RequiredSamples(s.cfg.TargetSamples, s.cfg.TargetRate, w.factor.Speed, w.rate)
	if w.required < 1 {
		return fmt.Errorf("%w: speed factor %v gives an empty window at %d Hz",
			augment.ErrInvalidSpeed, w.factor.Speed, w.rate)
	}
	return nil
}

func (w *window) pending() int {
	if w == nil {
		return 0
	}
	return len(w.buf)
}

// Run probes r with the configured hint, decodes its default track and calls
// emit for every full window, in decode order. Run returns nil at the end of
// the stream, the error of emit if it fails, or an error wrapping ErrFormat,
// ErrFatalDecode or augment.ErrInvalidSpeed.
func (s *Stage) Run(ctx context.Context, r io.Reader, emit func(context.Context, Chunk) error) (Stats, error) {
	var st Stats
	log := s.cfg.Logger

	if s.cfg.Registry == nil {
		return st, fmt.Errorf("%w: no decoder registry", ErrFormat)
	}

	pr, err := s.cfg.Registry.Probe(s.cfg.Hint, r, s.cfg.Condition)
	if err != nil {
		return st, fmt.Errorf("%w: %w", ErrFormat, err)
	}
	defer pr.Close()

	track, ok := pr.DefaultTrack()
	if !ok || track.SampleRate <= 0 || track.Channels <= 0 {
		return st, fmt.Errorf("%w: %w", ErrFormat, audio.ErrNoDefaultTrack)
	}

	var (
		w           *window
		consecutive int
	)

	for {
		if err := ctx.Err(); err != nil {
			st.Discarded += w.pending()
			return st, err
		}

		pkt, err := pr.NextPacket()
		switch {
		case err == nil:
			consecutive = 0
		case errors.Is(err, io.EOF):
			st.Discarded += w.pending()
			log.Debug("stream finished", "chunks", st.Chunks, "discarded", st.Discarded)
			return st, nil
		case audio.IsRecoverable(err):
			st.Skipped++
			consecutive++
			if consecutive > s.cfg.MaxDecodeErrors {
				st.Discarded += w.pending()
				return st, fmt.Errorf("%w: %d consecutive bad packets: %w", ErrFatalDecode, consecutive, err)
			}
			log.Debug("skipping bad packet", "err", err)
			continue
		default:
			st.Discarded += w.pending()
			return st, fmt.Errorf("%w: %w", ErrFatalDecode, err)
		}

		if pkt.TrackID != track.ID || len(pkt.Samples) == 0 {
			continue
		}
		st.Packets++

		if w == nil {
			if w, err = s.newWindow(pkt.SampleRate, pkt.Channels); err != nil {
				st.Discarded += len(pkt.Samples)
				return st, err
			}
			log.Debug("decoding", "rate", w.rate, "channels", w.channels, "required", w.required)
		} else if pkt.SampleRate != w.rate || pkt.Channels != w.channels {
			st.Discarded += w.pending()
			return st, fmt.Errorf("%w: %w: %d Hz/%d ch became %d Hz/%d ch", ErrFatalDecode,
				audio.ErrSpecChanged, w.rate, w.channels, pkt.SampleRate, pkt.Channels)
		}

		w.buf = append(w.buf, pkt.Samples...)

		consumed := 0
		for len(w.buf)-consumed >= w.required {
			samples := make([]float32, w.required)
			copy(samples, w.buf[consumed:consumed+w.required])

			chunk := Chunk{
				samples:  samples,
				rate:     w.rate,
				channels: w.channels,
				speed:    w.factor.Speed,
				step:     w.factor.Step,
				stepped:  w.factor.Stepped,
			}
			if err := emit(ctx, chunk); err != nil {
				st.Discarded += len(w.buf) - consumed
				return st, err
			}
			consumed += w.required
			st.Chunks++
			st.Samples += len(samples)
			if err := s.draw(w); err != nil {
				st.Discarded += len(w.buf) - consumed
				return st, err
			}
		}

		if consumed > 0 {
			w.buf = w.buf[:copy(w.buf, w.buf[consumed:])]
		}
	}
}
