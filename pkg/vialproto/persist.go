// SPDX-License-Identifier: BSD-3-Clause

package vialproto

import (
	"fmt"

	"github.com/vialcore/vialcore/pkg/action"
)

// KeymapCellRecordSize is the encoded size of a KindKeymapCell storage
// record: {layer, row, col, WireKeycode[4]}.
const KeymapCellRecordSize = 3 + len(WireKeycode{})

// EncodeKeymapCellRecord packs a single KeyMap cell mutation into the
// payload appended to the flash log as a KindKeymapCell record.
func EncodeKeymapCellRecord(layer, row, col byte, a action.KeyAction) []byte {
	w := EncodeKeyAction(a)
	return []byte{layer, row, col, w[0], w[1], w[2], w[3]}
}

// DecodeKeymapCellRecord reverses EncodeKeymapCellRecord, for replaying the
// flash log into a fresh KeyMap at startup.
func DecodeKeymapCellRecord(b []byte) (layer, row, col byte, a action.KeyAction, err error) {
	if len(b) != KeymapCellRecordSize {
		return 0, 0, 0, action.KeyAction{}, fmt.Errorf("%w: keymap cell record of %d bytes", ErrBadRecordSize, len(b))
	}
	var w WireKeycode
	copy(w[:], b[3:])
	a, err = DecodeKeyAction(w)
	return b[0], b[1], b[2], a, err
}
