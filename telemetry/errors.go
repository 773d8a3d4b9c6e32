// SPDX-License-Identifier: MIT

package telemetry

import "errors"

var (
	// ErrUnknownExporter is returned by Init for an unsupported exporter name.
	ErrUnknownExporter = errors.New("telemetry: unknown exporter")

	// ErrNilContext is returned by Init when ctx is nil.
	ErrNilContext = errors.New("telemetry: nil context")
)
