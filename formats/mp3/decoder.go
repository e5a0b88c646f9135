// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"fmt"
	"io"

	gomp3 "github.com/hajimehoshi/go-mp3"
	"github.com/ik5/audstream/audio"
	"github.com/ik5/audstream/utils"
)

// go-mp3 always decodes to 16-bit little-endian stereo.
const (
	channels       = 2
	bytesPerSample = 2
	bytesPerFrame  = channels * bytesPerSample
)

// mp3Reader is an interface for gomp3.Decoder to allow testing
type mp3Reader interface {
	Read([]byte) (int, error)
	SampleRate() int
}

type source struct {
	dec        mp3Reader
	sampleRate int
	buf        []byte
	carry      int // bytes of an incomplete frame kept at the front of buf
}

func (s *source) SampleRate() int { return s.sampleRate }
func (s *source) Channels() int   { return channels }
func (s *source) Close() error    { return nil }
func (s *source) BufSize() int    { return cap(s.buf) / bytesPerSample }

// ReadSamples decodes into dst. Only whole stereo frames are returned; a
// partial frame from the decoder is kept for the next call.
func (s *source) ReadSamples(dst []float32) (int, error) {
	frames := len(dst) / channels
	if frames == 0 {
		return 0, nil
	}

	need := frames * bytesPerFrame
	if cap(s.buf) < need {
		grown := make([]byte, need)
		copy(grown, s.buf[:s.carry])
		s.buf = grown
	}
	s.buf = s.buf[:need]

	n, err := s.dec.Read(s.buf[s.carry:])
	avail := s.carry + n
	whole := avail - avail%bytesPerFrame

	samples := utils.PCM16ToFloat32(dst, s.buf[:whole])

	s.carry = copy(s.buf, s.buf[whole:avail])

	if err != nil && samples == 0 {
		return 0, err
	}
	return samples, err
}

type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	dec, err := gomp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	return &source{
		dec:        dec,
		sampleRate: dec.SampleRate(),
		buf:        make([]byte, 0, 8192),
	}, nil
}
