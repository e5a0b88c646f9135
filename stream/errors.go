// SPDX-License-Identifier: EPL-2.0

package stream

import "errors"

// ErrNetwork marks a failed request, a non-2xx response or a broken body.
var ErrNetwork = errors.New("network error")
