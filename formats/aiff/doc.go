// SPDX-License-Identifier: EPL-2.0

// Package aiff decodes AIFF audio into an audio.Source.
//
// Decoding is done by github.com/go-audio/aiff, which needs random access
// to the input. When the reader handed to Decode cannot seek (a network
// stream, a stream.Reader) the whole body is buffered in memory first, so
// AIFF tracks are not consumed incrementally.
//
// # Output Format
//
//   - Sample format: float32 in range [-1.0, 1.0]
//   - Channels and sample rate: as stored in the COMM chunk
//
// # Errors
//
//   - ErrNotAiffFile: the input has no FORM/AIFF header
//   - ErrOnlyPCM16bitSupported: bit depth other than 16
//   - ErrUnsupportedAiffLayout: no usable channel layout
//
// AIFF-C (compressed) files are not supported.
package aiff
