// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"
	"slices"
	"strings"
	"sync"
)

type Source interface {
	// SampleRate of the PCM stream in Hz.
	SampleRate() int
	// Channels count (e.g., 1=mono, 2=stereo).
	Channels() int
	// ReadSamples fills dst with interleaved float32 samples in [-1,1].
	// Returns number of float32 values written (not frames). When n == 0 with err == io.EOF, the stream is finished.
	// Errors wrapping ErrCorruptPacket are recoverable: the next call continues with the following packet.
	ReadSamples(dst []float32) (n int, err error)

	// BufSize is the natural read size of the source, in samples.
	BufSize() int

	// Close releases any resources.
	Close() error
}

// Decoder constructs a Source from an input reader.
type Decoder interface {
	Decode(r io.Reader) (Source, error)
}

// Registry for decoders by container hint (e.g., "wav", "mp3", "ogg").
// Hints are matched case-insensitively.
type Registry struct {
	codecs map[string]Decoder

	mtx *sync.Mutex
}

func NewRegistry() *Registry {
	return &Registry{
		codecs: make(map[string]Decoder),
		mtx:    &sync.Mutex{},
	}
}

func (r *Registry) Register(format string, d Decoder) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	r.codecs[strings.ToLower(format)] = d
}

func (r *Registry) Get(format string) (Decoder, bool) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	d, ok := r.codecs[strings.ToLower(format)]
	return d, ok
}

// Formats returns the registered hints in sorted order.
func (r *Registry) Formats() []string {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	out := make([]string, 0, len(r.codecs))
	for k := range r.codecs {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}

// Probe selects the decoder registered for hint, decodes the stream header
// from rd and returns a PacketReader over the stream's default track.
// The source is passed through Condition with opts before being wrapped.
func (r *Registry) Probe(hint string, rd io.Reader, opts ConditionOptions) (PacketReader, error) {
	dec, ok := r.Get(hint)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, hint)
	}

	src, err := dec.Decode(rd)
	if err != nil {
		return nil, fmt.Errorf("decode %s header: %w", hint, err)
	}

	if src.SampleRate() <= 0 || src.Channels() <= 0 {
		_ = src.Close()
		return nil, fmt.Errorf("%w: rate=%d channels=%d", ErrNoDefaultTrack, src.SampleRate(), src.Channels())
	}

	return NewPacketReader(Condition(src, opts)), nil
}
