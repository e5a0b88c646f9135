// SPDX-License-Identifier: EPL-2.0

package stream

import (
	"bytes"
	"io"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func feed(blocks ...string) <-chan []byte {
	ch := make(chan []byte, len(blocks))
	for _, b := range blocks {
		ch <- []byte(b)
	}
	close(ch)
	return ch
}

func TestReader_RoundTrip(t *testing.T) {
	t.Parallel()

	r := NewReader(feed("AAAA", "BBB"), 8)

	p := make([]byte, 4)
	n, err := r.Read(p)
	require.NoError(t, err)
	assert.Equal(t, "AAAA", string(p[:n]))

	p = make([]byte, 5)
	n, err = r.Read(p)
	require.NoError(t, err)
	assert.Equal(t, "BBB", string(p[:n]))

	n, err = r.Read(p)
	assert.Equal(t, 0, n)
	assert.ErrorIs(t, err, io.EOF)

	// EOF is sticky
	_, err = r.Read(p)
	assert.ErrorIs(t, err, io.EOF)
}

func TestReader_ZeroLengthRead(t *testing.T) {
	t.Parallel()

	// never closed, never fed: a zero-length read must not block
	r := NewReader(make(chan []byte), 8)
	n, err := r.Read(nil)
	assert.Equal(t, 0, n)
	assert.NoError(t, err)
}

func TestReader_PartialConsume(t *testing.T) {
	t.Parallel()

	r := NewReader(feed("hello world"), 4)

	p := make([]byte, 5)
	n, err := r.Read(p)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(p[:n]))
	assert.Equal(t, 6, r.Buffered())

	rest, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, " world", string(rest))
	assert.Zero(t, r.Buffered())
}

func TestReader_SkipsEmptyBlocks(t *testing.T) {
	t.Parallel()

	got, err := io.ReadAll(NewReader(feed("", "ab", "", "", "c", ""), 0))
	require.NoError(t, err)
	assert.Equal(t, "abc", string(got))
}

func TestReader_DoesNotBlockWithBufferedData(t *testing.T) {
	t.Parallel()

	ch := make(chan []byte, 1)
	ch <- []byte("abcdef")
	r := NewReader(ch, 16)

	p := make([]byte, 2)
	_, err := r.Read(p)
	require.NoError(t, err)

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = r.Read(p)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Read blocked while bytes were buffered")
	}
}

func TestReader_RandomSizes(t *testing.T) {
	t.Parallel()

	for iter := range 200 {
		var want bytes.Buffer
		ch := make(chan []byte, 64)
		for range rand.IntN(40) {
			block := make([]byte, rand.IntN(300))
			for i := range block {
				block[i] = byte(rand.IntN(256))
			}
			want.Write(block)
			ch <- block
		}
		close(ch)

		r := NewReader(ch, 1+rand.IntN(64))
		var got bytes.Buffer
		for {
			p := make([]byte, 1+rand.IntN(100))
			n, err := r.Read(p)
			got.Write(p[:n])
			if err == io.EOF {
				break
			}
			require.NoError(t, err)
		}

		require.Equal(t, want.Bytes(), got.Bytes(), "iteration %d", iter)
	}
}
