// SPDX-License-Identifier: EPL-2.0

package chunker

import "errors"

var (
	// ErrFormat means the stream could not be probed or has no usable track.
	ErrFormat = errors.New("unsupported or unrecognized audio format")
	// ErrFatalDecode ends a stream's decoding. Samples not yet emitted are dropped.
	ErrFatalDecode = errors.New("fatal decode error")
	// ErrConsumerGone is returned by emit functions once nobody reads chunks anymore.
	ErrConsumerGone = errors.New("chunk consumer gone")
)
