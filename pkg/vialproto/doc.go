// SPDX-License-Identifier: BSD-3-Clause

// Package vialproto is the command-ID table and request/response codec for
// the Vial/VIA raw-HID protocol of spec §4.7: a 32-byte binary frame, one
// command per message, dispatched by service/vialsrv against pkg/keymap and
// pkg/flashsim. This package owns only the wire shapes and the unlock
// handshake state; command dispatch against live keyboard state lives in
// service/vialsrv.
package vialproto
