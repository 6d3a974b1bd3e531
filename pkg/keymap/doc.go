// SPDX-License-Identifier: BSD-3-Clause

// Package keymap implements the firmware's layer-aware keymap lookup table
// (spec §4.3): a [layer][row][col] grid of action.KeyAction, a momentary
// layer bitmask, a default (base) layer, and the one-shot mod/layer slots
// that release after the next non-modifier keypress.
package keymap
