// SPDX-License-Identifier: BSD-3-Clause

package vialproto

import (
	"encoding/binary"
	"fmt"
)

// DefChunkPayloadSize is how much of a GET_DEF response's 31 usable payload
// bytes actually carries keymap-definition-blob data; the rest of the
// payload budget goes to stock VIA/Vial clients that send a 4-byte offset
// and expect the response packed from byte 0.
const DefChunkPayloadSize = 28

// KeymapDefSize reports the size of a compile-time LZMA-compressed keymap
// definition blob (GET_SIZE), as a little-endian uint32.
func KeymapDefSize(def []byte) [4]byte {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], uint32(len(def)))
	return b
}

// GetDefChunk returns the DefChunkPayloadSize-byte slice of def starting at
// offset, zero-padded if it runs past the end. Vial requests def in fixed-
// size chunks by offset rather than index; offset must be a multiple of
// DefChunkPayloadSize only by convention of well-behaved clients, but this
// function accepts any in-range offset.
func GetDefChunk(def []byte, offset uint32) ([DefChunkPayloadSize]byte, error) {
	var out [DefChunkPayloadSize]byte
	if int(offset) > len(def) {
		return out, fmt.Errorf("%w: offset %d exceeds def length %d", ErrBadChunkIndex, offset, len(def))
	}
	n := copy(out[:], def[offset:])
	_ = n
	return out, nil
}
