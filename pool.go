// SPDX-License-Identifier: EPL-2.0

package audstream

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/ik5/audstream/chunker"
	"github.com/ik5/audstream/stream"
)

// Chunk is one fixed-length window of samples produced by a Pool.
type Chunk = chunker.Chunk

// Pool downloads and slices a fixed set of URLs with a fixed number of
// workers. Chunks are read with Next.
type Pool struct {
	log    *slog.Logger
	dl     stream.Downloader
	stage  *chunker.Stage
	opts   options
	work   chan string
	out    chan Chunk
	ctx    context.Context
	cancel context.CancelFunc
	group  *errgroup.Group
	done   chan struct{}
	once   sync.Once
}

// New starts numWorkers workers over urls. Every URL is processed by exactly
// one worker; chunks of one URL arrive in decode order, chunks of different
// URLs interleave.
func New(numWorkers int, urls []string, opts ...Option) (*Pool, error) {
	if numWorkers < 1 {
		return nil, ErrNoWorkers
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	o.complete()

	work := make(chan string, len(urls))
	for _, u := range urls {
		work <- u
	}
	close(work)

	ctx, cancel := context.WithCancel(context.Background())
	p := &Pool{
		log: o.logger,
		dl: stream.Downloader{
			Client:    o.client,
			BlockSize: o.blockSize,
			UserAgent: o.userAgent,
			Logger:    o.logger,
		},
		stage:  chunker.New(o.stage),
		opts:   o,
		work:   work,
		out:    make(chan Chunk, o.outputCapacity),
		ctx:    ctx,
		cancel: cancel,
		group:  &errgroup.Group{},
		done:   make(chan struct{}),
	}

	for id := range numWorkers {
		p.group.Go(func() error {
			p.worker(id)
			return nil
		})
	}

	go func() {
		_ = p.group.Wait()
		close(p.out)
		close(p.done)
	}()

	p.log.Info("pool started", "workers", numWorkers, "urls", len(urls), "hint", o.stage.Hint)
	return p, nil
}

func (p *Pool) worker(id int) {
	log := p.log.With("worker", id)
	for {
		select {
		case <-p.ctx.Done():
			return
		case url, ok := <-p.work:
			if !ok || p.ctx.Err() != nil {
				return
			}
			p.track(log.With("url", url), url)
		}
	}
}

// track runs the download and decode of one URL and waits for both.
func (p *Pool) track(log *slog.Logger, url string) {
	ctx, cancel := context.WithCancel(p.ctx)
	defer cancel()

	blocks := make(chan []byte, p.opts.channelCapacity)
	var (
		g        errgroup.Group
		dlErr    error
		st       chunker.Stats
		stageErr error
	)

	g.Go(func() error {
		_, dlErr = p.dl.Fetch(ctx, url, blocks)
		return nil
	})
	g.Go(func() error {
		// the downloader must not outlive its decoder
		defer cancel()
		st, stageErr = p.stage.Run(ctx, stream.NewReader(blocks, p.opts.readerSize), p.emit)
		return nil
	})
	_ = g.Wait()

	switch {
	case dlErr == nil, errors.Is(dlErr, context.Canceled):
	default:
		log.Warn("download failed", "err", dlErr)
	}

	switch {
	case stageErr == nil:
		log.Info("track done", "chunks", st.Chunks, "packets", st.Packets,
			"skipped", st.Skipped, "discarded", st.Discarded)
	case errors.Is(stageErr, chunker.ErrConsumerGone), errors.Is(stageErr, context.Canceled):
		log.Debug("track stopped", "chunks", st.Chunks, "err", stageErr)
	default:
		log.Warn("track failed", "chunks", st.Chunks, "err", stageErr)
	}
}

// emit hands a chunk to the caller, blocking while the output is full.
func (p *Pool) emit(ctx context.Context, c Chunk) error {
	select {
	case p.out <- c:
		return nil
	case <-p.ctx.Done():
		return ErrConsumerGone
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Next blocks for the next chunk. It returns false once every worker has
// finished and all chunks were read, and keeps returning false after that.
func (p *Pool) Next() (Chunk, bool) {
	c, ok := <-p.out
	return c, ok
}

// NextContext is Next, abortable with ctx.
func (p *Pool) NextContext(ctx context.Context) (Chunk, bool, error) {
	select {
	case c, ok := <-p.out:
		return c, ok, nil
	case <-ctx.Done():
		return Chunk{}, false, ctx.Err()
	}
}

// Close stops the pool: blocked workers give up their chunks, no more URLs
// are started and the output closes. Chunks already buffered can still be
// read. Close is safe to call more than once.
func (p *Pool) Close() {
	p.once.Do(func() {
		p.log.Debug("pool closing")
		p.cancel()
	})
}

// Join waits for every worker to return. Without a reader draining Next,
// call Close first.
func (p *Pool) Join() {
	<-p.done
}

// Done is closed once every worker has returned.
func (p *Pool) Done() <-chan struct{} { return p.done }
