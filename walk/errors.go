// SPDX-License-Identifier: MIT

package walk

import "errors"

var (
	// ErrNilAdjacency is returned when a nil *matrix.Sparse is supplied.
	ErrNilAdjacency = errors.New("walk: adjacency is nil")
)
