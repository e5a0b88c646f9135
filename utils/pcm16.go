// SPDX-License-Identifier: EPL-2.0

package utils

import (
	"encoding/binary"
	"math"
)

// PCM16ToFloat32 converts little-endian int16 samples in src into dst,
// scaled to [-1, 1). It converts min(len(dst), len(src)/2) samples and
// returns that count. A trailing odd byte in src is ignored.
func PCM16ToFloat32(dst []float32, src []byte) int {
	n := min(len(dst), len(src)/2)
	for i := range n {
		v := int16(binary.LittleEndian.Uint16(src[2*i:]))
		dst[i] = float32(v) / 32768.0
	}
	return n
}

// Float32ToLE appends samples to dst as little-endian IEEE-754 bit patterns.
func Float32ToLE(dst []byte, samples []float32) []byte {
	for _, s := range samples {
		dst = binary.LittleEndian.AppendUint32(dst, math.Float32bits(s))
	}
	return dst
}
