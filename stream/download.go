// SPDX-License-Identifier: EPL-2.0

package stream

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
)

const (
	// DefaultBlockSize is the largest block pushed per body read.
	DefaultBlockSize = 8192
	// DefaultChannelCapacity is the number of blocks buffered between
	// network and decoder.
	DefaultChannelCapacity = 128
	// maxResponseHeaderBytes matches generous streaming servers that send
	// large cookie and icy-* header sets.
	maxResponseHeaderBytes = 1_000_000
)

// NewHTTPClient returns a client whose transport accepts large response
// headers. It has no overall timeout; requests are bound by their context.
func NewHTTPClient() *http.Client {
	tr := http.DefaultTransport.(*http.Transport).Clone()
	tr.MaxResponseHeaderBytes = maxResponseHeaderBytes
	return &http.Client{Transport: tr}
}

// Downloader streams HTTP bodies into block channels.
type Downloader struct {
	Client    *http.Client
	BlockSize int
	UserAgent string
	Logger    *slog.Logger
}

// Fetch GETs url and sends the body to out in blocks of at most BlockSize
// bytes. out is always closed when Fetch returns. The returned count is the
// number of bytes handed to out.
//
// If ctx is cancelled while a send is blocked, Fetch returns ctx.Err().
// Request, status and body failures wrap ErrNetwork.
func (d Downloader) Fetch(ctx context.Context, url string, out chan<- []byte) (int64, error) {
	defer close(out)

	log := d.Logger
	if log == nil {
		log = slog.Default()
	}
	client := d.Client
	if client == nil {
		client = NewHTTPClient()
	}
	blockSize := d.BlockSize
	if blockSize < 1 {
		blockSize = DefaultBlockSize
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, fmt.Errorf("%w: build request: %w", ErrNetwork, err)
	}
	if d.UserAgent != "" {
		req.Header.Set("User-Agent", d.UserAgent)
	}

	resp, err := client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return 0, ctx.Err()
		}
		return 0, fmt.Errorf("%w: get %s: %w", ErrNetwork, url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return 0, fmt.Errorf("%w: get %s: status %s", ErrNetwork, url, resp.Status)
	}

	log.Debug("download started", "url", url, "content_length", resp.ContentLength)

	var total int64
	buf := make([]byte, blockSize)
	for {
		n, readErr := resp.Body.Read(buf)
		if n > 0 {
			// an exact-size copy; the receiver owns it after the send
			block := make([]byte, n)
			copy(block, buf[:n])
			select {
			case out <- block:
				total += int64(n)
			case <-ctx.Done():
				return total, ctx.Err()
			}
		}

		switch {
		case readErr == nil:
		case errors.Is(readErr, io.EOF):
			log.Debug("download finished", "url", url, "bytes", total)
			return total, nil
		case ctx.Err() != nil:
			return total, ctx.Err()
		default:
			return total, fmt.Errorf("%w: read %s: %w", ErrNetwork, url, readErr)
		}
	}
}
