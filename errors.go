// SPDX-License-Identifier: EPL-2.0

package audstream

import (
	"errors"

	"github.com/ik5/audstream/chunker"
	"github.com/ik5/audstream/stream"
)

var (
	// ErrNoWorkers is returned by New when asked for fewer than one worker.
	ErrNoWorkers = errors.New("at least one worker is required")

	ErrNetwork      = stream.ErrNetwork
	ErrFormat       = chunker.ErrFormat
	ErrFatalDecode  = chunker.ErrFatalDecode
	ErrConsumerGone = chunker.ErrConsumerGone
)
