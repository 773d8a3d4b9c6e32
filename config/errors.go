// SPDX-License-Identifier: MIT

package config

import "errors"

// ErrInvalidConfig is returned by Validate (wrapped with the offending field).
var ErrInvalidConfig = errors.New("config: invalid value")
