// SPDX-License-Identifier: BSD-3-Clause

// Package action defines the keymap's data model (spec §3): the KeyAction
// tagged variant, the four-modifier-bits-plus-side ModSet, the per-key PressRecord kept
// while a key is held, and KeyEvent, the matrix's output type.
package action
