// SPDX-License-Identifier: BSD-3-Clause

package vialproto

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vialcore/vialcore/pkg/kbid"
)

func TestProtocolVersionReply(t *testing.T) {
	f, err := ProtocolVersionReply()
	require.NoError(t, err)
	require.Equal(t, byte(CmdVIAGetProtocolVersion), f.Command())
	require.Equal(t, VialProtocolVersion, binary.LittleEndian.Uint32(f.Payload()[:4]))
}

func TestKeyboardIDReply(t *testing.T) {
	var id kbid.KeyboardID
	copy(id[:], []byte{1, 2, 3, 4, 5, 6, 7, 8})
	f, err := KeyboardIDReply(id)
	require.NoError(t, err)
	require.Equal(t, id[:], f.Payload()[:8])
}

func TestUnknownCommandReply(t *testing.T) {
	f, err := UnknownCommandReply()
	require.NoError(t, err)
	require.Equal(t, UnknownReply, f.Command())
}

func TestUnlockStatusReplyEncodesFields(t *testing.T) {
	f, err := UnlockStatusReply(Unlocking, 1, 3)
	require.NoError(t, err)
	require.Equal(t, byte(0), f.Payload()[0])
	require.Equal(t, byte(1), f.Payload()[1])
	require.Equal(t, byte(3), f.Payload()[2])

	f, err = UnlockStatusReply(Unlocked, 3, 3)
	require.NoError(t, err)
	require.Equal(t, byte(1), f.Payload()[0])
}
