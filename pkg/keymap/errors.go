// SPDX-License-Identifier: BSD-3-Clause

package keymap

import "errors"

var (
	// ErrOutOfRange indicates a layer, row, or column index outside the
	// configured grid dimensions.
	ErrOutOfRange = errors.New("keymap index out of range")
	// ErrTransparentOnBaseLayer indicates an attempt to set a Transparent
	// action on layer 0, which must always resolve to a concrete action.
	ErrTransparentOnBaseLayer = errors.New("layer 0 may not contain a transparent action")
)
