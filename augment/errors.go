// SPDX-License-Identifier: EPL-2.0

package augment

import "errors"

// ErrInvalidSpeed reports a speed configuration that cannot produce factors.
var ErrInvalidSpeed = errors.New("invalid speed configuration")
