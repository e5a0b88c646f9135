// SPDX-License-Identifier: EPL-2.0

package utils

import (
	"encoding/binary"
	"math"
	"testing"
)

func TestPCM16ToFloat32(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input []int16
		want  []float32
	}{
		{name: "empty", input: nil, want: nil},
		{name: "silence", input: []int16{0, 0}, want: []float32{0, 0}},
		{name: "extremes", input: []int16{math.MinInt16, math.MaxInt16}, want: []float32{-1, 32767.0 / 32768.0}},
		{name: "half", input: []int16{16384, -16384}, want: []float32{0.5, -0.5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			raw := make([]byte, 0, len(tt.input)*2)
			for _, v := range tt.input {
				raw = binary.LittleEndian.AppendUint16(raw, uint16(v))
			}

			dst := make([]float32, len(tt.input))
			n := PCM16ToFloat32(dst, raw)
			if n != len(tt.want) {
				t.Fatalf("PCM16ToFloat32() = %d, want %d", n, len(tt.want))
			}
			for i := range n {
				if dst[i] != tt.want[i] {
					t.Errorf("dst[%d] = %v, want %v", i, dst[i], tt.want[i])
				}
			}
		})
	}
}

func TestPCM16ToFloat32_Bounds(t *testing.T) {
	t.Parallel()

	// odd trailing byte is ignored, dst limits the count
	raw := []byte{0, 0x40, 0, 0x40, 0xff}
	if n := PCM16ToFloat32(make([]float32, 8), raw); n != 2 {
		t.Errorf("PCM16ToFloat32() with odd input = %d, want 2", n)
	}
	if n := PCM16ToFloat32(make([]float32, 1), raw); n != 1 {
		t.Errorf("PCM16ToFloat32() with short dst = %d, want 1", n)
	}
}

func TestFloat32ToLE(t *testing.T) {
	t.Parallel()

	samples := []float32{0, 1, -0.25}
	out := Float32ToLE(nil, samples)

	if len(out) != 12 {
		t.Fatalf("len = %d, want 12", len(out))
	}
	for i, want := range samples {
		got := math.Float32frombits(binary.LittleEndian.Uint32(out[i*4:]))
		if got != want {
			t.Errorf("sample %d = %v, want %v", i, got, want)
		}
	}
}
