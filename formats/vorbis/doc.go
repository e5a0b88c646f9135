// SPDX-License-Identifier: EPL-2.0

// Package vorbis decodes Ogg Vorbis audio into an audio.Source.
//
// Decoding is done by github.com/jfreymuth/oggvorbis. Samples are
// interleaved:
//
//	[L0, R0, L1, R1, L2, R2, ...]
//
// A packet that fails to decode is reported as audio.ErrCorruptPacket and
// reading may continue with the next packet. Truncated streams
// (io.ErrUnexpectedEOF) end the source.
package vorbis
