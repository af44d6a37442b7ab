// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: viewport/errors.go
// Summary: Sentinel errors for rejected viewport configuration.

package viewport

import "errors"

var (
	// ErrInvalidZoomBounds is returned when min > max, either bound is not
	// positive, or a bound is NaN.
	ErrInvalidZoomBounds = errors.New("viewport: invalid zoom bounds")

	// ErrInvalidSize is returned for negative or NaN sizes.
	ErrInvalidSize = errors.New("viewport: invalid size")
)
