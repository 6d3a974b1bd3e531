// SPDX-License-Identifier: BSD-3-Clause

// Package vialsrv answers Vial/VIA raw HID requests forwarded by hidsrv
// over busapi.SubjectVialRequest. It dispatches each decoded 32-byte frame
// against a shared pkg/keymap.KeyMap, persists configuration changes through
// service/storagesrv, and drives the UNLOCK_START/UNLOCK_POLL/LOCK
// handshake of spec.md §4.7 via pkg/vialproto.Unlock.
package vialsrv
