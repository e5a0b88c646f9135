// SPDX-License-Identifier: EPL-2.0

package stream

import "io"

// DefaultReaderSize is the initial buffer size of a Reader.
const DefaultReaderSize = 8192

// Reader adapts a channel of byte blocks to io.Reader.
// It is not safe for concurrent reads.
type Reader struct {
	blocks <-chan []byte
	buf    []byte
	n      int // unread bytes at the front of buf
}

// NewReader reads from blocks until the channel is closed. A size below 1
// takes DefaultReaderSize.
func NewReader(blocks <-chan []byte, size int) *Reader {
	if size < 1 {
		size = DefaultReaderSize
	}
	return &Reader{
		blocks: blocks,
		buf:    make([]byte, size),
	}
}

// Read returns buffered bytes when there are any and only blocks on the
// channel when the buffer is empty. It returns io.EOF once the channel is
// closed and everything was consumed.
func (r *Reader) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}

	for r.n == 0 {
		block, ok := <-r.blocks
		if !ok {
			return 0, io.EOF
		}
		if len(block) > len(r.buf) {
			r.buf = make([]byte, len(block))
		}
		r.n = copy(r.buf, block)
	}

	n := copy(p, r.buf[:r.n])
	r.n = copy(r.buf, r.buf[n:r.n])
	return n, nil
}

// Buffered reports how many bytes can be read without blocking.
func (r *Reader) Buffered() int { return r.n }
