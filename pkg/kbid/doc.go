// SPDX-License-Identifier: BSD-3-Clause

// Package kbid manages the identifiers Vial needs: a UUID persisted to
// flash-adjacent storage across reboots, folded down into the fixed 8-byte
// KeyboardID the host uses to pick the matching keymap definition, plus
// fresh ephemeral IDs for macro slots allocated at runtime.
package kbid
