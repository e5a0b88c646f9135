// SPDX-License-Identifier: EPL-2.0

package utils

import (
	"math"
	"testing"
)

func TestFloat32ToInt16(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input float32
		want  int16
	}{
		{name: "zero", input: 0.0, want: 0},
		{name: "max positive", input: 1.0, want: math.MaxInt16},
		{name: "max negative", input: -1.0, want: -math.MaxInt16},
		{name: "half positive", input: 0.5, want: 16383},
		{name: "half negative", input: -0.5, want: -16383},
		{name: "small positive", input: 0.001, want: 32},
		{name: "clamp over max", input: 1.5, want: math.MaxInt16},
		{name: "clamp under min", input: -100.0, want: -math.MaxInt16},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := Float32ToInt16(tt.input)
			if diff := math.Abs(float64(got) - float64(tt.want)); diff > 1 {
				t.Errorf("Float32ToInt16(%v) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestFloat32ToInt16Monotonic(t *testing.T) {
	t.Parallel()

	prev := Float32ToInt16(-1.0)
	for f := -0.99; f <= 1.0; f += 0.01 {
		curr := Float32ToInt16(float32(f))
		if curr < prev {
			t.Errorf("Float32ToInt16 not monotonic: f=%v gives %v, previous %v", f, curr, prev)
		}
		prev = curr
	}
}

func TestFloat32sToInt16s(t *testing.T) {
	t.Parallel()

	src := []float32{0, 0.5, -0.5, 2}
	dst := make([]int16, 3)

	if n := Float32sToInt16s(dst, src); n != 3 {
		t.Fatalf("Float32sToInt16s() = %d, want 3", n)
	}
	if dst[1] != Float32ToInt16(0.5) || dst[2] != Float32ToInt16(-0.5) {
		t.Errorf("dst = %v", dst)
	}
}

func TestFloat32ToInt16_ZeroAllocs(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping allocation test in short mode")
	}

	floatBuf := make([]float32, 1024)
	int16Buf := make([]int16, 1024)

	allocs := testing.AllocsPerRun(100, func() {
		Float32sToInt16s(int16Buf, floatBuf)
	})
	if allocs > 0 {
		t.Errorf("Float32sToInt16s allocated %v times, want 0", allocs)
	}
}
