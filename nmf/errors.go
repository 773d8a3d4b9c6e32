// SPDX-License-Identifier: MIT

package nmf

import "errors"

// Sentinel errors returned by New, Fit and the Factors readers. They are
// wrapped with call-site context; match them with errors.Is.
var (
	// ErrBadRank is returned by New when rank < 1.
	ErrBadRank = errors.New("nmf: rank must be >= 1")

	// ErrOptionViolation is returned by New when an Option received an
	// invalid value.
	ErrOptionViolation = errors.New("nmf: invalid option supplied")

	// ErrNilMatrix is returned when Fit or GlobalLoss receive a nil adjacency.
	ErrNilMatrix = errors.New("nmf: adjacency is nil")

	// ErrShapeMismatch is returned when an adjacency does not match the
	// factor row count, or a batch block does not match its node list.
	ErrShapeMismatch = errors.New("nmf: shape mismatch")

	// ErrDisconnected is returned by Fit when warp probability is 0 and the
	// graph has more than one connected component: a walk without restarts
	// can never reach full coverage.
	ErrDisconnected = errors.New("nmf: graph is disconnected and warp probability is 0")

	// ErrNoBatches is returned when sampling finished without producing a batch.
	ErrNoBatches = errors.New("nmf: sampling produced no batches")
)
