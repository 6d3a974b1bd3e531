// SPDX-License-Identifier: BSD-3-Clause

package vialproto

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vialcore/vialcore/pkg/action"
)

func TestEncodeDecodeKeyActionRoundTrip(t *testing.T) {
	cases := []action.KeyAction{
		action.No(),
		action.Transparent(),
		action.Single(0x04),
		action.WithModifier(0x04, action.ModSet{Mods: action.ModCtrl | action.ModShift}),
		action.LayerOn(2),
		action.LayerToggle(3),
		action.OneShotLayer(1),
		action.OneShotMod(action.ModSet{Mods: action.ModGui, Side: action.SideRight}),
		action.ModTap(0x06, action.ModSet{Mods: action.ModAlt}),
		action.LayerTap(4, 0x05),
		action.TapHold(0x07, 0x08),
		action.Macro(0x1234),
		action.MouseKey(action.MouseAction{Op: action.MouseOpMoveX, Delta: -50}),
		action.Consumer(0x00E9),
		action.System(0x01),
	}

	for _, want := range cases {
		w := EncodeKeyAction(want)
		got, err := DecodeKeyAction(w)
		require.NoError(t, err)
		require.Equal(t, want, got)
	}
}

func TestDecodeKeyActionUnknownKind(t *testing.T) {
	_, err := DecodeKeyAction(WireKeycode{0xff, 0, 0, 0})
	require.ErrorIs(t, err, ErrUnknownKind)
}

func TestGetDefChunkPadsTail(t *testing.T) {
	def := []byte{1, 2, 3}
	chunk, err := GetDefChunk(def, 0)
	require.NoError(t, err)
	require.Equal(t, byte(1), chunk[0])
	require.Equal(t, byte(0), chunk[DefChunkPayloadSize-1])
}

func TestGetDefChunkRejectsOutOfRange(t *testing.T) {
	_, err := GetDefChunk([]byte{1, 2, 3}, 100)
	require.ErrorIs(t, err, ErrBadChunkIndex)
}
