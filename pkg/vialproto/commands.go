// SPDX-License-Identifier: BSD-3-Clause

package vialproto

// Command identifies a single raw-HID request/response pair (spec §4.7).
// Unknown commands are answered with UnknownReply, a single 0xFF byte.
type Command byte

// CmdViaVialPrefix is the single VIA-range command ID (0xFE) reserved for
// Vial's own commands: byte 0 of a request is this prefix, and byte 1 of
// the frame (byte 0 of its payload) carries the real Vial command from the
// block below. This is how the two command spaces below share one
// byte 0 without colliding: VIA commands occupy 0x00-0x11 directly, Vial
// commands are only ever seen behind this prefix.
const CmdViaVialPrefix Command = 0xFE

// Vial's own command IDs, used for everything the VIA subset doesn't
// already cover (keyboard identity, keymap definition transfer, unlock
// handshake, dynamic entries). Only reached via CmdViaVialPrefix.
const (
	CmdGetKeyboardID   Command = 0x00
	CmdGetSize         Command = 0x01
	CmdGetDef          Command = 0x02
	CmdGetUnlockStatus Command = 0x05
	CmdUnlockStart     Command = 0x06
	CmdUnlockPoll      Command = 0x07
	CmdLock            Command = 0x08
	CmdDynamicEntryOp  Command = 0x09
)

// VIA subset commands: protocol version, keyboard value, dynamic keymap
// get/set/reset, layer count, and the macro buffer get/set pair.
const (
	CmdVIAGetProtocolVersion Command = 0x01
	CmdVIAGetKeyboardValue   Command = 0x02
	CmdVIASetKeyboardValue   Command = 0x03
	CmdVIADynamicKeymapGet   Command = 0x04
	CmdVIADynamicKeymapSet   Command = 0x05
	CmdVIADynamicKeymapReset Command = 0x06
	CmdVIALayerCount         Command = 0x11
	CmdVIAMacroGetBufferSize Command = 0x0D
	CmdVIAMacroGetBuffer     Command = 0x0E
	CmdVIAMacroSetBuffer     Command = 0x0F
)

// KeyboardValueID selects which field CmdVIAGetKeyboardValue/
// CmdVIASetKeyboardValue addresses.
type KeyboardValueID byte

const (
	KeyboardValueLayoutOptions KeyboardValueID = 0x02
)

// VialProtocolVersion is the Vial wire protocol revision this codec speaks.
const VialProtocolVersion uint32 = 6

// UnknownReply is returned verbatim (as the entire 32-byte payload's first
// byte) when a command ID is not recognised.
const UnknownReply byte = 0xFF

// DynamicEntryKind selects the DYNAMIC_ENTRY_OP sub-operation.
type DynamicEntryKind byte

const (
	DynamicEntryTapDance DynamicEntryKind = iota
	DynamicEntryCombo
	DynamicEntryKeyOverride
)
