// SPDX-License-Identifier: BSD-3-Clause

package vialproto

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vialcore/vialcore/pkg/action"
)

func TestEncodeDecodeKeymapCellRecordRoundTrip(t *testing.T) {
	want := action.ModTap(0x06, action.ModSet{Mods: action.ModAlt})
	rec := EncodeKeymapCellRecord(2, 3, 4, want)
	require.Len(t, rec, KeymapCellRecordSize)

	layer, row, col, got, err := DecodeKeymapCellRecord(rec)
	require.NoError(t, err)
	require.Equal(t, byte(2), layer)
	require.Equal(t, byte(3), row)
	require.Equal(t, byte(4), col)
	require.Equal(t, want, got)
}

func TestDecodeKeymapCellRecordRejectsBadSize(t *testing.T) {
	_, _, _, _, err := DecodeKeymapCellRecord([]byte{1, 2, 3})
	require.ErrorIs(t, err, ErrBadRecordSize)
}
