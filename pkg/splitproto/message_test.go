// SPDX-License-Identifier: BSD-3-Clause

package splitproto

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vialcore/vialcore/pkg/action"
)

func TestMessageRoundTrip(t *testing.T) {
	cases := []SplitMessage{
		Key(action.KeyEvent{Row: 2, Col: 5, Pressed: true}),
		ConnectionState(true),
		ConnectionState(false),
		LedIndicator(0x05),
		SyncRequest(),
	}

	for _, want := range cases {
		enc, err := want.Encode()
		require.NoError(t, err)
		got, n, err := DecodeMessage(enc)
		require.NoError(t, err)
		require.Equal(t, len(enc), n)
		require.Equal(t, want, got)
	}
}

func TestDecodeMessageUnknownKind(t *testing.T) {
	f := Frame{Kind: MessageKind(99)}
	enc, err := f.Encode()
	require.NoError(t, err)
	_, _, err = DecodeMessage(enc)
	require.ErrorIs(t, err, ErrUnknownKind)
}
