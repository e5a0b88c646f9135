// SPDX-License-Identifier: EPL-2.0

package chunker

import (
	"fmt"
	"time"

	"github.com/ik5/audstream/utils"
)

// Chunk is one fixed-length window of interleaved samples with the speed
// factor drawn for it. Chunks are immutable.
type Chunk struct {
	samples  []float32
	rate     int
	channels int
	speed    float32
	step     int
	stepped  bool
}

// Samples returns a copy of the interleaved samples.
func (c Chunk) Samples() []float32 {
	out := make([]float32, len(c.samples))
	copy(out, c.samples)
	return out
}

// Len is the number of interleaved samples.
func (c Chunk) Len() int             { return len(c.samples) }
func (c Chunk) SampleRate() int      { return c.rate }
func (c Chunk) Channels() int        { return c.channels }
func (c Chunk) SpeedFactor() float32 { return c.speed }

// Step returns the pitch step the speed factor came from, if any.
func (c Chunk) Step() (int, bool) { return c.step, c.stepped }

// Bytes encodes the samples as little-endian IEEE-754 float32.
func (c Chunk) Bytes() []byte {
	return utils.Float32ToLE(make([]byte, 0, len(c.samples)*4), c.samples)
}

// Duration is the playback time of the chunk at its native rate.
func (c Chunk) Duration() time.Duration {
	if c.rate <= 0 || c.channels <= 0 {
		return 0
	}
	frames := len(c.samples) / c.channels
	return time.Duration(frames) * time.Second / time.Duration(c.rate)
}

func (c Chunk) String() string {
	if c.stepped {
		return fmt.Sprintf("chunk len=%d rate=%d ch=%d speed=%.4f step=%d",
			len(c.samples), c.rate, c.channels, c.speed, c.step)
	}
	return fmt.Sprintf("chunk len=%d rate=%d ch=%d speed=%.4f",
		len(c.samples), c.rate, c.channels, c.speed)
}
