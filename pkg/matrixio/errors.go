// SPDX-License-Identifier: BSD-3-Clause

package matrixio

import "errors"

var (
	// ErrInvalidConfig indicates a malformed Config (mismatched dimensions,
	// empty pin sets, non-positive timing).
	ErrInvalidConfig = errors.New("matrixio: invalid configuration")
	// ErrLineRequest indicates the underlying GPIO line request failed.
	ErrLineRequest = errors.New("matrixio: gpio line request failed")
	// ErrScanFailed indicates a sweep could not complete due to a GPIO I/O
	// error.
	ErrScanFailed = errors.New("matrixio: scan failed")
)
