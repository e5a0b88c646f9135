// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
	"io"

	"github.com/ik5/audstream/utils"
)

// Resampler streams from src to a target sample rate using cubic interpolation.
// Works on interleaved samples; preserves channel count.
// A one-pole low-pass filter is applied to source frames when downsampling.
type Resampler struct {
	src      Source
	srcRate  float64
	dstRate  float64
	ratio    float64 // source frames per output frame
	channels int

	// frames[0] = t-1, frames[1] = t0, frames[2] = t+1, frames[3] = t+2
	frames   [4][]float32
	hasFrame [4]bool
	next     []float32
	primed   bool

	// fractional position between frames[1] and frames[2]
	pos float64

	srcBuf []float32
	eof    bool // source exhausted
	done   bool // EOF already reported to the caller

	filterState []float32
	useFilter   bool
	filterAlpha float32
}

func NewResampler(src Source, dstRate int) *Resampler {
	channels := src.Channels()
	ratio := float64(src.SampleRate()) / float64(dstRate)

	r := &Resampler{
		src:         src,
		srcRate:     float64(src.SampleRate()),
		dstRate:     float64(dstRate),
		ratio:       ratio,
		channels:    channels,
		srcBuf:      make([]float32, max(channels, 1)),
		useFilter:   ratio > 1.0,
		filterState: make([]float32, channels),
	}
	if r.useFilter {
		r.filterAlpha = 0.5
	}

	for i := range r.frames {
		r.frames[i] = make([]float32, channels)
	}
	r.next = make([]float32, channels)

	return r
}

func (r *Resampler) SampleRate() int { return int(r.dstRate) }
func (r *Resampler) Channels() int   { return r.channels }

// BufSize scales the source read size to the output rate, keeping frame alignment.
func (r *Resampler) BufSize() int {
	frames := int(float64(r.src.BufSize()/max(r.channels, 1)) / r.ratio)
	return max(frames, 1) * max(r.channels, 1)
}

func (r *Resampler) Close() error {
	if err := r.src.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

// readFrame reads exactly one source frame into dst.
func (r *Resampler) readFrame(dst []float32) (bool, error) {
	n, err := r.src.ReadSamples(r.srcBuf)
	if n > 0 {
		copy(dst, r.srcBuf[:n])
		if r.useFilter {
			for c := range r.channels {
				dst[c] = r.filterAlpha*dst[c] + (1-r.filterAlpha)*r.filterState[c]
				r.filterState[c] = dst[c]
			}
		}
	}
	if errors.Is(err, io.EOF) {
		r.eof = true
		err = nil
	}
	return n > 0, err
}

// prime fills the four-frame window from the start of the stream.
func (r *Resampler) prime() error {
	for i := range r.frames {
		if i == 0 && r.useFilter {
			// seed the filter with the first frame to avoid a warm-up transient
			n, err := r.src.ReadSamples(r.srcBuf)
			if n > 0 {
				copy(r.filterState, r.srcBuf[:n])
				copy(r.frames[0], r.srcBuf[:n])
				r.hasFrame[0] = true
			}
			if errors.Is(err, io.EOF) {
				r.eof = true
			} else if err != nil {
				return fmt.Errorf("%w", err)
			}
		} else if !r.eof {
			ok, err := r.readFrame(r.frames[i])
			if err != nil {
				return fmt.Errorf("%w", err)
			}
			r.hasFrame[i] = ok
		}

		if r.eof {
			if i == 0 && !r.hasFrame[0] {
				return io.EOF
			}
			// duplicate the last valid frame into the remaining slots
			last := i
			if !r.hasFrame[i] {
				last = i - 1
			}
			for j := last + 1; j < len(r.frames); j++ {
				copy(r.frames[j], r.frames[last])
				r.hasFrame[j] = true
			}
			break
		}
	}

	r.primed = true
	return nil
}

// advance shifts the window by one source frame. A failed read leaves the
// window untouched so the call can be retried.
func (r *Resampler) advance() error {
	if r.eof {
		return io.EOF
	}

	ok, err := r.readFrame(r.next)
	if err != nil {
		return fmt.Errorf("%w", err)
	}

	r.frames[0], r.frames[1], r.frames[2], r.frames[3] = r.frames[1], r.frames[2], r.frames[3], r.frames[0]
	r.hasFrame[0], r.hasFrame[1], r.hasFrame[2] = r.hasFrame[1], r.hasFrame[2], r.hasFrame[3]
	copy(r.frames[3], r.next)
	r.hasFrame[3] = ok

	if r.eof && !ok {
		return io.EOF
	}

	return nil
}

// ReadSamples produces samples at the target rate.
// dst length must be a multiple of the channel count.
func (r *Resampler) ReadSamples(dst []float32) (int, error) {
	if r.channels == 0 || len(dst)%r.channels != 0 {
		return 0, ErrInvalidDstSize
	}

	if r.done {
		return 0, io.EOF
	}

	if !r.primed {
		if err := r.prime(); err != nil {
			if errors.Is(err, io.EOF) {
				r.done = true
			}
			return 0, err
		}
	}

	written := 0
	framesNeeded := len(dst) / r.channels

	for written < framesNeeded {
		for r.pos >= 1.0 {
			if err := r.advance(); err != nil {
				if errors.Is(err, io.EOF) {
					r.done = true
					return written * r.channels, io.EOF
				}
				return written * r.channels, err
			}
			r.pos -= 1.0
		}

		if !r.hasFrame[1] || !r.hasFrame[2] {
			r.done = true
			return written * r.channels, io.EOF
		}

		alpha := float32(r.pos)
		for c := range r.channels {
			y0 := r.frames[1][c]
			if r.hasFrame[0] {
				y0 = r.frames[0][c]
			}
			y3 := r.frames[2][c]
			if r.hasFrame[3] {
				y3 = r.frames[3][c]
			}

			dst[written*r.channels+c] = utils.CubicInterpolate(y0, r.frames[1][c], r.frames[2][c], y3, alpha)
		}

		written++
		r.pos += r.ratio
	}

	return written * r.channels, nil
}
