// SPDX-License-Identifier: EPL-2.0

// Package audstream turns remote audio files into a stream of fixed-length,
// speed-augmented sample chunks.
//
// A Pool fetches a set of URLs with a fixed number of workers. Each track is
// downloaded in blocks, decoded as it arrives and cut into windows whose
// length depends on a randomly drawn speed factor. Finished chunks are read
// with Next:
//
//	pool, err := audstream.New(4, urls, audstream.WithHint("mp3"))
//	if err != nil {
//	    return err
//	}
//	defer pool.Close()
//
//	for {
//	    chunk, ok := pool.Next()
//	    if !ok {
//	        break
//	    }
//	    train(chunk.Samples(), chunk.SampleRate(), chunk.SpeedFactor())
//	}
//
// # Supported Formats
//
// Decoders are picked by a hint, not by sniffing:
//   - mp3 via formats/mp3 (the default hint)
//   - ogg, vorbis via formats/vorbis
//   - wav (PCM 16-bit) via formats/wav
//   - aiff, aif (PCM 16-bit) via formats/aiff
//
// # Windows
//
// The nominal chunk is 512*256-1 samples at 16 kHz. A chunk decoded at a
// native rate r with speed s holds trunc(duration * s * r) interleaved
// samples, so playing it back at r/s restores the nominal duration. By
// default s comes from a pitch step in -4..4 (s = 2^(step/-12)); see
// package augment for the other sources.
//
// Samples left at the end of a track that do not fill a window are dropped.
//
// # Backpressure and Shutdown
//
// Every stage is connected by bounded channels. A slow reader of Next stalls
// decoding, and a stalled decoder stalls its download. Close stops the pool
// without reading the remaining chunks; Join waits for the workers.
//
// # Errors
//
// Per-track failures (ErrNetwork, ErrFormat, ErrFatalDecode) are logged and
// the worker moves on to the next URL. They never surface from Next.
package audstream
