// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
	"io"
	"math"
	"testing"

	"github.com/ik5/audstream/internal/audiotest"
)

func drain(t *testing.T, src Source, bufSize int) []float32 {
	t.Helper()

	buf := make([]float32, bufSize)
	var out []float32
	for {
		n, err := src.ReadSamples(buf)
		out = append(out, buf[:n]...)
		if errors.Is(err, io.EOF) {
			return out
		}
		if err != nil {
			t.Fatalf("ReadSamples() error = %v", err)
		}
	}
}

func TestResampler_Metadata(t *testing.T) {
	t.Parallel()

	resampler := NewResampler(audiotest.NewSilentSource(44100, 2, 1000), 8000)

	if resampler.SampleRate() != 8000 {
		t.Errorf("SampleRate() = %d, want 8000", resampler.SampleRate())
	}
	if resampler.Channels() != 2 {
		t.Errorf("Channels() = %d, want 2", resampler.Channels())
	}
	if bs := resampler.BufSize(); bs <= 0 || bs%2 != 0 {
		t.Errorf("BufSize() = %d, want positive multiple of 2", bs)
	}
}

func TestResampler_Length(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		from, to  int
		tolerance int
	}{
		{name: "downsample 44.1k to 16k", from: 44100, to: 16000, tolerance: 100},
		{name: "downsample 48k to 8k", from: 48000, to: 8000, tolerance: 100},
		{name: "upsample 8k to 44.1k", from: 8000, to: 44100, tolerance: 500},
		{name: "same rate", from: 16000, to: 16000, tolerance: 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			// one second of a 440 Hz tone
			src := audiotest.NewSineSource(tt.from, 1, tt.from, 440.0)
			samples := drain(t, NewResampler(src, tt.to), 1024)

			if len(samples) < tt.to-tt.tolerance || len(samples) > tt.to+tt.tolerance {
				t.Errorf("resampled %d samples, want ≈%d (±%d)", len(samples), tt.to, tt.tolerance)
			}
			for i, s := range samples {
				if s < -1.5 || s > 1.5 {
					t.Fatalf("samples[%d] = %v, outside [-1.5, 1.5]", i, s)
				}
			}
		})
	}
}

func TestResampler_StereoPreserved(t *testing.T) {
	t.Parallel()

	src := audiotest.NewMockSource(44100, 2, 1000, func(_ int, channel int) float32 {
		if channel == 0 {
			return 0.3
		}
		return 0.7
	})
	resampler := NewResampler(src, 8000)

	buf := make([]float32, 20)
	n, err := resampler.ReadSamples(buf)
	if err != nil && !errors.Is(err, io.EOF) {
		t.Fatalf("ReadSamples() error = %v", err)
	}
	if n == 0 {
		t.Fatal("ReadSamples() returned 0 samples")
	}

	for f := range n / 2 {
		if left := buf[f*2]; math.Abs(float64(left-0.3)) > 0.2 {
			t.Errorf("frame[%d] left = %v, want ≈0.3", f, left)
		}
		if right := buf[f*2+1]; math.Abs(float64(right-0.7)) > 0.2 {
			t.Errorf("frame[%d] right = %v, want ≈0.7", f, right)
		}
	}
}

func TestResampler_EOFIsSticky(t *testing.T) {
	t.Parallel()

	// upsampling leaves pos < 1 after the source ends
	resampler := NewResampler(audiotest.NewSilentSource(8000, 1, 100), 44100)
	if got := drain(t, resampler, 64); len(got) == 0 {
		t.Fatal("no samples read before EOF")
	}

	for range 3 {
		n, err := resampler.ReadSamples(make([]float32, 64))
		if n != 0 || !errors.Is(err, io.EOF) {
			t.Errorf("ReadSamples() after EOF = (%d, %v), want (0, io.EOF)", n, err)
		}
	}
}

func TestResampler_InvalidDstSize(t *testing.T) {
	t.Parallel()

	resampler := NewResampler(audiotest.NewSilentSource(44100, 2, 1000), 8000)

	if _, err := resampler.ReadSamples(make([]float32, 7)); !errors.Is(err, ErrInvalidDstSize) {
		t.Errorf("ReadSamples() error = %v, want ErrInvalidDstSize", err)
	}
}

func TestResampler_RecoverableErrorPassesThrough(t *testing.T) {
	t.Parallel()

	src := &audiotest.FlakySource{
		Source: audiotest.NewConstantSource(16000, 1, 4000, 0.25),
		Fail:   map[int]bool{50: true},
		Err:    fmt.Errorf("bad frame: %w", ErrCorruptPacket),
	}
	resampler := NewResampler(src, 8000)

	buf := make([]float32, 256)
	sawRecoverable := false
	total := 0
	for {
		n, err := resampler.ReadSamples(buf)
		total += n
		if errors.Is(err, io.EOF) {
			break
		}
		if IsRecoverable(err) {
			sawRecoverable = true
			continue
		}
		if err != nil {
			t.Fatalf("ReadSamples() error = %v", err)
		}
	}

	if !sawRecoverable {
		t.Error("recoverable error was not surfaced")
	}
	if total < 1900 {
		t.Errorf("read %d samples, want ≈2000", total)
	}
}

func BenchmarkResampler_Downsample(b *testing.B) {
	src := audiotest.NewSineSource(44100, 2, 100000, 440.0)
	resampler := NewResampler(src, 16000)
	buf := make([]float32, 4096)

	b.ReportAllocs()
	for range b.N {
		if _, err := resampler.ReadSamples(buf); errors.Is(err, io.EOF) {
			src.Reset()
			resampler = NewResampler(src, 16000)
		}
	}
}
