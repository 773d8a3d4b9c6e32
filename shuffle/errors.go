// SPDX-License-Identifier: MIT

package shuffle

import "errors"

var (
	// ErrClosed is returned by Put after Close, and by Take once a closed
	// buffer is empty.
	ErrClosed = errors.New("shuffle: buffer closed")

	// ErrBadCapacity is returned by New for capacity < 1.
	ErrBadCapacity = errors.New("shuffle: capacity must be >= 1")

	// ErrFull is returned by TryPut when no slot is free.
	ErrFull = errors.New("shuffle: buffer full")
)
