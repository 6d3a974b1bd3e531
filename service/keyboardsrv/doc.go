// SPDX-License-Identifier: BSD-3-Clause

// Package keyboardsrv is the keyboard action state machine. It subscribes
// to action.KeyEvent transitions from matrixsrv (or splitsrv's Central
// role), resolves each one through a pkg/keymap.KeyMap lookup and, for
// tap/hold variants, a pkg/tapstate.Machine, and maintains the sole
// outgoing HID report, publishing it to hidsrv whenever it changes (spec
// §4.4: "sole writer of the outgoing HID report").
package keyboardsrv
