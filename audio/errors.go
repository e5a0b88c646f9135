// SPDX-License-Identifier: EPL-2.0

package audio

import "errors"

var (
	ErrInvalidDstSize = errors.New("dst size must be multiple of channels")

	// ErrUnknownFormat is returned by Registry.Probe when no decoder is registered for the hint.
	ErrUnknownFormat = errors.New("no decoder registered for format")
	// ErrNoDefaultTrack means the stream has no decodable audio track.
	ErrNoDefaultTrack = errors.New("no default audio track")
	// ErrCorruptPacket marks a single undecodable packet. Reading may continue.
	ErrCorruptPacket = errors.New("corrupt packet")
	// ErrNoProgress is returned when a source keeps returning no samples and no error.
	ErrNoProgress = errors.New("source returned no samples")
	// ErrSpecChanged means a packet's rate or channel count differs from the
	// one the stream started with.
	ErrSpecChanged = errors.New("stream format changed mid-stream")
)

// IsRecoverable reports whether err only affects the current packet.
func IsRecoverable(err error) bool {
	return errors.Is(err, ErrCorruptPacket)
}
