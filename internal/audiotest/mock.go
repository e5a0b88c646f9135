// SPDX-License-Identifier: EPL-2.0

// Package audiotest holds audio sources for tests.
// It mirrors audio.Source without importing it, so the audio package's own
// tests can use it.
package audiotest

import (
	"io"
	"math"
)

// MockSource generates totalSamples frames from a waveform function.
type MockSource struct {
	sampleRate   int
	channels     int
	bufSize      int
	totalSamples int // per channel
	generated    int // per channel
	waveform     func(sample int, channel int) float32
}

// NewMockSource creates a new mock audio source.
// totalSamples is the total number of samples per channel to generate.
func NewMockSource(sampleRate, channels, totalSamples int, waveform func(sample int, channel int) float32) *MockSource {
	return &MockSource{
		sampleRate:   sampleRate,
		channels:     channels,
		bufSize:      4096,
		totalSamples: totalSamples,
		waveform:     waveform,
	}
}

// NewSilentSource creates a mock source that generates silence (all zeros).
func NewSilentSource(sampleRate, channels, totalSamples int) *MockSource {
	return NewConstantSource(sampleRate, channels, totalSamples, 0)
}

// NewSineSource creates a mock source that generates a sine wave.
func NewSineSource(sampleRate, channels, totalSamples int, frequency float64) *MockSource {
	return NewMockSource(sampleRate, channels, totalSamples, func(sample int, _ int) float32 {
		t := float64(sample) / float64(sampleRate)
		return float32(math.Sin(2 * math.Pi * frequency * t))
	})
}

// NewConstantSource creates a mock source with constant value.
func NewConstantSource(sampleRate, channels, totalSamples int, value float32) *MockSource {
	return NewMockSource(sampleRate, channels, totalSamples, func(int, int) float32 {
		return value
	})
}

// NewRampSource emits the running frame index scaled by 1e-6, so the order of
// samples can be checked after slicing.
func NewRampSource(sampleRate, channels, totalSamples int) *MockSource {
	return NewMockSource(sampleRate, channels, totalSamples, func(sample int, _ int) float32 {
		return float32(sample) * 1e-6
	})
}

// WithBufSize changes the value reported by BufSize.
func (m *MockSource) WithBufSize(n int) *MockSource {
	m.bufSize = n
	return m
}

func (m *MockSource) SampleRate() int { return m.sampleRate }
func (m *MockSource) Channels() int   { return m.channels }
func (m *MockSource) BufSize() int    { return m.bufSize }
func (m *MockSource) Close() error    { return nil }

// Reset resets the generated sample counter to allow re-reading
func (m *MockSource) Reset() {
	m.generated = 0
}

func (m *MockSource) ReadSamples(dst []float32) (int, error) {
	if m.generated >= m.totalSamples {
		return 0, io.EOF
	}

	frames := min(len(dst)/m.channels, m.totalSamples-m.generated)
	for frame := range frames {
		idx := m.generated + frame
		for ch := range m.channels {
			dst[frame*m.channels+ch] = m.waveform(idx, ch)
		}
	}
	m.generated += frames

	written := frames * m.channels
	if m.generated >= m.totalSamples {
		return written, io.EOF
	}
	return written, nil
}

// Source is the subset of audio.Source the wrappers here need.
type Source interface {
	SampleRate() int
	Channels() int
	BufSize() int
	Close() error
	ReadSamples(dst []float32) (int, error)
}

// FlakySource fails the reads whose zero-based index is listed in Fail with Err,
// producing no samples for those reads.
type FlakySource struct {
	Source
	Fail  map[int]bool
	Err   error
	reads int
}

func (f *FlakySource) ReadSamples(dst []float32) (int, error) {
	i := f.reads
	f.reads++
	if f.Fail[i] {
		return 0, f.Err
	}
	return f.Source.ReadSamples(dst)
}
