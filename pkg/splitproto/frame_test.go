// SPDX-License-Identifier: BSD-3-Clause

package splitproto

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFrameEncodeDecodeRoundTrip(t *testing.T) {
	f := Frame{Kind: KindKey, Payload: []byte{1, 2, 3}}
	enc, err := f.Encode()
	require.NoError(t, err)
	require.Equal(t, Magic, enc[0])

	got, n, err := DecodeFrame(enc)
	require.NoError(t, err)
	require.Equal(t, len(enc), n)
	require.Equal(t, f.Kind, got.Kind)
	require.Equal(t, f.Payload, got.Payload)
}

func TestDecodeFrameBadMagic(t *testing.T) {
	_, _, err := DecodeFrame([]byte{0x00, 1, 0, 0})
	require.ErrorIs(t, err, ErrBadMagic)
}

func TestDecodeFrameCRCMismatch(t *testing.T) {
	enc, err := Frame{Kind: KindSyncRequest}.Encode()
	require.NoError(t, err)
	enc[len(enc)-1] ^= 0xff
	_, _, err = DecodeFrame(enc)
	require.ErrorIs(t, err, ErrCRCMismatch)
}

func TestDecodeFrameShortRead(t *testing.T) {
	enc, err := Frame{Kind: KindKey, Payload: []byte{1, 2, 3}}.Encode()
	require.NoError(t, err)
	_, _, err = DecodeFrame(enc[:len(enc)-2])
	require.ErrorIs(t, err, ErrShortRead)
}

func TestEncodeRejectsOversizedPayload(t *testing.T) {
	_, err := Frame{Kind: KindKey, Payload: make([]byte, MaxPayload+1)}.Encode()
	require.ErrorIs(t, err, ErrPayloadTooLarge)
}
