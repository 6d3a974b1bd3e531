// SPDX-License-Identifier: BSD-3-Clause

package hidreport

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyboardMarshalRoundTrip(t *testing.T) {
	k := Keyboard{Modifiers: 0x02, Keys: [MaxKeys]byte{0x04, 0x05}}
	b, err := k.MarshalBinary()
	require.NoError(t, err)
	assert.Len(t, b, 8)

	var got Keyboard
	require.NoError(t, got.UnmarshalBinary(b))
	assert.Equal(t, k, got)
}

func TestKeyboardUnmarshalBadLength(t *testing.T) {
	var k Keyboard
	err := k.UnmarshalBinary([]byte{1, 2, 3})
	assert.ErrorIs(t, err, ErrBadLength)
}

func TestKeyboardAddKeyRolloverCap(t *testing.T) {
	var k Keyboard
	for i := byte(0); i < MaxKeys; i++ {
		assert.True(t, k.AddKey(0x04+i))
	}
	// Seventh distinct key is silently dropped, not phantom-reported.
	assert.False(t, k.AddKey(0x0a))
	for i := byte(0); i < MaxKeys; i++ {
		assert.True(t, k.HasKey(0x04+i))
	}
	assert.False(t, k.HasKey(0x0a))
}

func TestKeyboardAddKeyIdempotent(t *testing.T) {
	var k Keyboard
	assert.True(t, k.AddKey(0x04))
	assert.True(t, k.AddKey(0x04))
	count := 0
	for _, c := range k.Keys {
		if c == 0x04 {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestKeyboardRemoveKey(t *testing.T) {
	var k Keyboard
	k.AddKey(0x04)
	k.RemoveKey(0x04)
	assert.False(t, k.HasKey(0x04))
}

func TestDecodeLEDIndicator(t *testing.T) {
	got := DecodeLEDIndicator(0b00010110)
	assert.False(t, got.NumLock)
	assert.True(t, got.CapsLock)
	assert.True(t, got.ScrollLock)
	assert.False(t, got.Compose)
	assert.True(t, got.Kana)
}

func TestNewVialFrame(t *testing.T) {
	f, err := NewVialFrame(0x01, []byte{0xaa, 0xbb})
	require.NoError(t, err)
	assert.Equal(t, byte(0x01), f.Command())
	assert.Equal(t, byte(0xaa), f.Payload()[0])
	assert.Equal(t, byte(0xbb), f.Payload()[1])
	assert.Equal(t, byte(0x00), f.Payload()[2])
}

func TestNewVialFramePayloadTooLong(t *testing.T) {
	_, err := NewVialFrame(0x01, make([]byte, 32))
	assert.ErrorIs(t, err, ErrBadLength)
}
