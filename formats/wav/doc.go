// SPDX-License-Identifier: EPL-2.0

// Package wav decodes PCM 16-bit WAV audio and writes canonical WAV files.
//
// # Decoding
//
// The decoder walks RIFF chunks forward only and never seeks, so it can be
// fed straight from a network stream:
//
//	src, err := wav.Decoder{}.Decode(resp.Body)
//	if err != nil {
//	    return err
//	}
//	buf := make([]float32, src.BufSize())
//	n, err := src.ReadSamples(buf)
//
// Chunks between "fmt " and "data" (LIST, fact, ...) are skipped. A data
// chunk size of 0 or 0xFFFFFFFF, as left by streaming writers, means "read
// to the end of input". WAVE_FORMAT_EXTENSIBLE headers are accepted when
// they carry 16-bit samples.
//
// # Writing
//
// WritePCM16 writes a 44-byte header followed by the samples:
//
//	err := wav.WritePCM16(w, 16000, 1, samples)
//
// # Errors
//
//   - ErrNotWavFile: missing RIFF/WAVE header
//   - ErrOnlyPCM16bitSupported: anything but 16-bit integer PCM
//   - ErrUnsupportedWavLayout: bad fmt chunk or data before fmt
//   - ErrUnsupportedWavChunks: no data chunk could be reached
package wav
