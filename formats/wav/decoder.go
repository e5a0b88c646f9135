// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/ik5/audstream/audio"
	"github.com/ik5/audstream/utils"
)

// maxSkippedChunks bounds the number of non-audio chunks walked before "data".
const maxSkippedChunks = 64

type wavSource struct {
	r          io.Reader
	sampleRate int
	channels   int
	remaining  int64 // bytes left in the data chunk, -1 when unknown
	buf        []byte
}

func (s *wavSource) SampleRate() int { return s.sampleRate }
func (s *wavSource) Channels() int   { return s.channels }
func (s *wavSource) Close() error    { return nil }
func (s *wavSource) BufSize() int    { return 4096 - 4096%s.channels }

// ReadSamples reads whole frames of int16 interleaved PCM and converts them
// to float32. A truncated final frame is dropped.
func (s *wavSource) ReadSamples(dst []float32) (int, error) {
	frameBytes := 2 * s.channels
	want := (len(dst) / s.channels) * frameBytes
	if s.remaining >= 0 {
		want = min(want, int(s.remaining)-int(s.remaining)%frameBytes)
	}
	if want == 0 {
		if len(dst) < s.channels {
			return 0, nil
		}
		return 0, io.EOF
	}

	if len(s.buf) < want {
		s.buf = make([]byte, want)
	}

	n, err := io.ReadFull(s.r, s.buf[:want])
	if s.remaining >= 0 {
		s.remaining -= int64(n)
	}

	n -= n % frameBytes
	samples := utils.PCM16ToFloat32(dst, s.buf[:n])

	switch {
	case err == nil:
		return samples, nil
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		// a short data chunk ends the stream like a regular EOF
		if samples == 0 {
			return 0, io.EOF
		}
		return samples, nil
	default:
		return samples, fmt.Errorf("%w", err)
	}
}

type fmtChunk struct {
	audioFormat   uint16
	channels      int
	sampleRate    int
	bitsPerSample int
}

type Decoder struct{}

// Decode walks the RIFF chunks up to "data" without seeking, so it works on
// network streams. LIST, fact and other chunks before the data are skipped.
func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	header := make([]byte, 12)
	if _, err := io.ReadFull(r, header); err != nil {
		return nil, fmt.Errorf("%w", err)
	}
	if !bytes.Equal(header[:4], []byte("RIFF")) || !bytes.Equal(header[8:12], []byte("WAVE")) {
		return nil, ErrNotWavFile
	}

	var format *fmtChunk
	chunk := make([]byte, 8)

	for range maxSkippedChunks {
		if _, err := io.ReadFull(r, chunk); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrUnsupportedWavChunks, err)
		}
		id := string(chunk[:4])
		size := int64(binary.LittleEndian.Uint32(chunk[4:8]))

		switch id {
		case "fmt ":
			f, err := readFmt(r, size)
			if err != nil {
				return nil, err
			}
			format = f
		case "data":
			if format == nil {
				return nil, ErrUnsupportedWavLayout
			}
			remaining := size
			// streaming writers leave the size as 0 or 0xFFFFFFFF
			if size == 0 || size == 0xFFFFFFFF {
				remaining = -1
			}
			return &wavSource{
				r:          r,
				sampleRate: format.sampleRate,
				channels:   format.channels,
				remaining:  remaining,
				buf:        make([]byte, 4096),
			}, nil
		default:
			// chunks are word aligned
			if _, err := io.CopyN(io.Discard, r, size+size%2); err != nil {
				return nil, fmt.Errorf("%w: skip %q: %w", ErrUnsupportedWavChunks, id, err)
			}
		}
	}

	return nil, ErrUnsupportedWavChunks
}

func readFmt(r io.Reader, size int64) (*fmtChunk, error) {
	if size < 16 {
		return nil, ErrUnsupportedWavLayout
	}

	// only the first 16 bytes are used; extensions are skipped, not buffered
	body := make([]byte, 16)
	if _, err := io.ReadFull(r, body); err != nil {
		return nil, fmt.Errorf("%w", err)
	}
	if rest := size - 16 + size%2; rest > 0 {
		if _, err := io.CopyN(io.Discard, r, rest); err != nil {
			return nil, fmt.Errorf("%w: fmt extension: %w", ErrUnsupportedWavLayout, err)
		}
	}

	f := &fmtChunk{
		audioFormat:   binary.LittleEndian.Uint16(body[0:2]),
		channels:      int(binary.LittleEndian.Uint16(body[2:4])),
		sampleRate:    int(binary.LittleEndian.Uint32(body[4:8])),
		bitsPerSample: int(binary.LittleEndian.Uint16(body[14:16])),
	}

	// 0xFFFE is WAVE_FORMAT_EXTENSIBLE; the sub-format GUID is not checked.
	if (f.audioFormat != 1 && f.audioFormat != 0xFFFE) || f.bitsPerSample != 16 {
		return nil, ErrOnlyPCM16bitSupported
	}
	if f.channels <= 0 || f.sampleRate <= 0 {
		return nil, ErrUnsupportedWavLayout
	}

	return f, nil
}
