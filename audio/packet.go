// SPDX-License-Identifier: EPL-2.0

package audio

// maxEmptyReads bounds how many (0, nil) reads a source may return in a row.
const maxEmptyReads = 64

// Track describes one audio stream inside a container.
type Track struct {
	ID         int
	SampleRate int
	Channels   int
}

// Packet is one decoded block of interleaved samples.
// Samples is only valid until the next call to NextPacket.
type Packet struct {
	TrackID    int
	SampleRate int
	Channels   int
	Samples    []float32
}

// PacketReader yields decoded packets from a container.
// Containers may interleave packets of several tracks; callers filter on
// Packet.TrackID against DefaultTrack.
type PacketReader interface {
	DefaultTrack() (Track, bool)
	// NextPacket returns io.EOF when the container is exhausted.
	NextPacket() (Packet, error)
	Close() error
}

// sourcePackets exposes a single-stream Source as a PacketReader with one track.
type sourcePackets struct {
	src     Source
	buf     []float32
	pending error
}

// NewPacketReader wraps src; each successful ReadSamples call becomes one packet
// sized by src.BufSize().
func NewPacketReader(src Source) PacketReader {
	ch := max(src.Channels(), 1)
	size := max(src.BufSize(), ch)
	size -= size % ch

	return &sourcePackets{
		src: src,
		buf: make([]float32, size),
	}
}

func (p *sourcePackets) DefaultTrack() (Track, bool) {
	if p.src.SampleRate() <= 0 || p.src.Channels() <= 0 {
		return Track{}, false
	}
	return Track{ID: 0, SampleRate: p.src.SampleRate(), Channels: p.src.Channels()}, true
}

func (p *sourcePackets) NextPacket() (Packet, error) {
	// An error that arrived together with samples is reported on the next call.
	if p.pending != nil {
		err := p.pending
		p.pending = nil
		return Packet{}, err
	}

	for range maxEmptyReads {
		n, err := p.src.ReadSamples(p.buf)
		if n > 0 {
			p.pending = err
			return Packet{
				TrackID:    0,
				SampleRate: p.src.SampleRate(),
				Channels:   p.src.Channels(),
				Samples:    p.buf[:n],
			}, nil
		}
		if err != nil {
			return Packet{}, err
		}
	}

	return Packet{}, ErrNoProgress
}

func (p *sourcePackets) Close() error { return p.src.Close() }
