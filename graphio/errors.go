// SPDX-License-Identifier: MIT

package graphio

import "errors"

var (
	// ErrBadRecord is returned for a line that is not a valid edge.
	ErrBadRecord = errors.New("graphio: malformed record")

	// ErrNoEdges is returned when the input holds no edge.
	ErrNoEdges = errors.New("graphio: no edges")
)
