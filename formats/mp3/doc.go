// SPDX-License-Identifier: EPL-2.0

// Package mp3 decodes MPEG-1 Layer 3 audio into an audio.Source.
//
// It uses github.com/hajimehoshi/go-mp3, which always produces 16-bit
// little-endian stereo. The source converts that to interleaved float32
// and never splits a stereo frame across reads, even when the underlying
// decoder returns an odd number of bytes.
//
// Decode errors from go-mp3 are not recoverable: the decoder cannot resync
// after a broken frame, so any error ends the stream.
//
// Use audio.Condition (or Registry.Probe) to get mono or a different rate:
//
//	src, _ := mp3.Decoder{}.Decode(r)
//	mono := audio.Condition(src, audio.ConditionOptions{SampleRate: 16000, Mono: true})
package mp3
