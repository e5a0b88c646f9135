// SPDX-License-Identifier: EPL-2.0

package aiff

import "errors"

var (
	ErrNotAiffFile           = errors.New("not an AIFF file")
	ErrOnlyPCM16bitSupported = errors.New("only PCM 16-bit supported")
	// ErrUnsupportedAiffLayout is returned when the COMM chunk has no usable channel count.
	ErrUnsupportedAiffLayout = errors.New("unsupported AIFF layout")
)
