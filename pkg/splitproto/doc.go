// SPDX-License-Identifier: BSD-3-Clause

// Package splitproto is the SplitMessage wire format of spec §4.9/§6: a
// small framed protocol relaying matrix key events, connection-state
// heartbeats, LED indicator updates, and sync requests between a
// peripheral half and the central half of a split keyboard.
package splitproto
