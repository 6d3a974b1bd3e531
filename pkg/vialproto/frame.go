// SPDX-License-Identifier: BSD-3-Clause

package vialproto

import (
	"encoding/binary"

	"github.com/vialcore/vialcore/pkg/hidreport"
	"github.com/vialcore/vialcore/pkg/kbid"
)

// ProtocolVersionReply builds the GET_PROTOCOL_VERSION/VIAL_PROTOCOL_VERSION
// response: the version as a little-endian uint32 in the first 4 payload
// bytes.
func ProtocolVersionReply() (hidreport.VialFrame, error) {
	var payload [4]byte
	binary.LittleEndian.PutUint32(payload[:], VialProtocolVersion)
	return hidreport.NewVialFrame(byte(CmdVIAGetProtocolVersion), payload[:])
}

// KeyboardIDReply builds the GET_KEYBOARD_ID response from a kbid.KeyboardID.
func KeyboardIDReply(id kbid.KeyboardID) (hidreport.VialFrame, error) {
	return hidreport.NewVialFrame(byte(CmdGetKeyboardID), id[:])
}

// SizeReply builds the GET_SIZE response for a keymap definition blob.
func SizeReply(def []byte) (hidreport.VialFrame, error) {
	size := KeymapDefSize(def)
	return hidreport.NewVialFrame(byte(CmdGetSize), size[:])
}

// DefReply builds one GET_DEF chunk response at offset.
func DefReply(def []byte, offset uint32) (hidreport.VialFrame, error) {
	chunk, err := GetDefChunk(def, offset)
	if err != nil {
		return hidreport.VialFrame{}, err
	}
	return hidreport.NewVialFrame(byte(CmdGetDef), chunk[:])
}

// UnknownCommandReply builds the single-0xFF-byte reply sent for any
// unrecognised command.
func UnknownCommandReply() (hidreport.VialFrame, error) {
	return hidreport.NewVialFrame(UnknownReply, nil)
}

// UnlockStatusReply builds the GET_UNLOCK_STATUS/UNLOCK_POLL response:
// byte 0 is 1 if Unlocked, byte 1 is held count, byte 2 is total required.
func UnlockStatusReply(state UnlockState, held, total int) (hidreport.VialFrame, error) {
	unlocked := byte(0)
	if state == Unlocked {
		unlocked = 1
	}
	return hidreport.NewVialFrame(byte(CmdGetUnlockStatus), []byte{unlocked, byte(held), byte(total)})
}
