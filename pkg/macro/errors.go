// SPDX-License-Identifier: BSD-3-Clause

package macro

import "errors"

var (
	// ErrUnknownRune indicates a Text item contained a rune the configured
	// TextEncoder cannot map to a keycode.
	ErrUnknownRune = errors.New("macro: no keycode mapping for rune")
	// ErrNilSink indicates a Runner was constructed without a Sink.
	ErrNilSink = errors.New("macro: sink must not be nil")
)
