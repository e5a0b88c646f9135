// SPDX-License-Identifier: EPL-2.0

// Command audstream streams remote audio files through a chunking pool.
//
//	audstream run  [-config path] [url...]
//	audstream dump [-config path] [-out dir] [-limit n] [url...]
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/ik5/audstream"
	"github.com/ik5/audstream/internal/config"
)

func usage(w io.Writer) {
	fmt.Fprintln(w, "usage: audstream run  [-config path] [url...]")
	fmt.Fprintln(w, "       audstream dump [-config path] [-out dir] [-limit n] [url...]")
}

func main() {
	if len(os.Args) < 2 {
		usage(os.Stderr)
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "run":
		err = runCmd(os.Args[2:])
	case "dump":
		err = dumpCmd(os.Args[2:])
	case "-h", "-help", "--help", "help":
		usage(os.Stdout)
		return
	default:
		usage(os.Stderr)
		os.Exit(2)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "audstream: %v\n", err)
		os.Exit(1)
	}
}

// setup loads the configuration, builds the logger and starts a pool over
// the configured URLs plus args.
func setup(path string, args []string) (*audstream.Pool, *slog.Logger, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, nil, err
	}

	logger, err := newLogger(cfg, os.Stderr)
	if err != nil {
		return nil, nil, err
	}

	urls := append(cfg.URLs, args...)
	if len(urls) == 0 {
		return nil, nil, fmt.Errorf("no URLs given")
	}

	pool, err := audstream.New(cfg.Pool.Workers, urls, cfg.Options(logger)...)
	if err != nil {
		return nil, nil, err
	}
	return pool, logger, nil
}

func newLogger(cfg *config.Config, w io.Writer) (*slog.Logger, error) {
	lvl, err := cfg.Level()
	if err != nil {
		return nil, err
	}

	opts := &slog.HandlerOptions{Level: lvl}
	if strings.EqualFold(cfg.Logging.Format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	}
	return slog.New(slog.NewTextHandler(w, opts)), nil
}

// closeOnSignal closes the pool on SIGINT or SIGTERM. The returned func
// stops listening.
func closeOnSignal(pool *audstream.Pool, logger *slog.Logger) func() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case <-ctx.Done():
			logger.Info("signal received, closing pool")
			pool.Close()
		case <-pool.Done():
		}
	}()
	return stop
}

func runCmd(args []string) error {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	path := fs.String("config", "", "YAML configuration file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	pool, logger, err := setup(*path, fs.Args())
	if err != nil {
		return err
	}
	defer closeOnSignal(pool, logger)()

	var (
		chunks  int
		samples int
	)
	for {
		c, ok := pool.Next()
		if !ok {
			break
		}
		chunks++
		samples += c.Len()
		fmt.Println(c)
	}
	pool.Join()

	fmt.Printf("%d chunks, %d samples\n", chunks, samples)
	return nil
}

func dumpCmd(args []string) error {
	fs := flag.NewFlagSet("dump", flag.ContinueOnError)
	path := fs.String("config", "", "YAML configuration file")
	out := fs.String("out", ".", "directory for the WAV files")
	limit := fs.Int("limit", 0, "stop after n chunks (0 = all)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := os.MkdirAll(*out, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	pool, logger, err := setup(*path, fs.Args())
	if err != nil {
		return err
	}
	defer closeOnSignal(pool, logger)()
	defer pool.Close()

	n := 0
	for *limit == 0 || n < *limit {
		c, ok := pool.Next()
		if !ok {
			break
		}
		name, err := dumpChunk(*out, n, c)
		if err != nil {
			return err
		}
		logger.Debug("chunk written", "file", name, "speed", c.SpeedFactor())
		n++
	}

	fmt.Printf("%d chunks written to %s\n", n, *out)
	return nil
}
