// SPDX-License-Identifier: BSD-3-Clause

package keymap

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vialcore/vialcore/pkg/action"
)

func newTestMap(t *testing.T) *KeyMap {
	t.Helper()
	k := New(4, 2, 2)
	require.NoError(t, k.SetAction(0, 0, 0, action.Single(0x04)))
	require.NoError(t, k.SetAction(1, 0, 0, action.Single(0x05)))
	return k
}

func TestGetActionDefaultLayer(t *testing.T) {
	k := newTestMap(t)
	a, err := k.GetAction(0, 0)
	require.NoError(t, err)
	assert.Equal(t, byte(0x04), a.KeyCode)
}

func TestGetActionLayerOverride(t *testing.T) {
	k := newTestMap(t)
	require.NoError(t, k.PushLayer(1))
	a, err := k.GetAction(0, 0)
	require.NoError(t, err)
	assert.Equal(t, byte(0x05), a.KeyCode)
}

func TestGetActionTransparentFallsThrough(t *testing.T) {
	k := newTestMap(t)
	require.NoError(t, k.SetAction(2, 0, 0, action.Transparent()))
	require.NoError(t, k.PushLayer(1))
	require.NoError(t, k.PushLayer(2))
	a, err := k.GetAction(0, 0)
	require.NoError(t, err)
	assert.Equal(t, byte(0x05), a.KeyCode, "layer 2 is transparent, should fall through to layer 1")
}

func TestSetActionRejectsTransparentOnBaseLayer(t *testing.T) {
	k := New(2, 1, 1)
	err := k.SetAction(0, 0, 0, action.Transparent())
	assert.ErrorIs(t, err, ErrTransparentOnBaseLayer)
}

func TestPushPopLayerIdempotent(t *testing.T) {
	k := New(2, 1, 1)
	require.NoError(t, k.PushLayer(1))
	require.NoError(t, k.PushLayer(1))
	assert.Equal(t, uint32(0b10), k.ActiveLayers())

	require.NoError(t, k.PopLayer(1))
	require.NoError(t, k.PopLayer(1))
	assert.Equal(t, uint32(0), k.ActiveLayers())
}

func TestSetDefaultLayer(t *testing.T) {
	k := New(2, 1, 1)
	require.NoError(t, k.SetDefaultLayer(1))
	assert.Equal(t, byte(1), k.DefaultLayer())
}

func TestOutOfRange(t *testing.T) {
	k := New(2, 2, 2)
	_, err := k.GetAction(5, 0)
	assert.ErrorIs(t, err, ErrOutOfRange)
	assert.ErrorIs(t, k.PushLayer(9), ErrOutOfRange)
}

func TestOneShotModArmAndTake(t *testing.T) {
	k := New(1, 1, 1)
	_, ok := k.TakeOneShotMod()
	assert.False(t, ok)

	k.ArmOneShotMod(action.ModSet{Mods: action.ModShift})
	mods, ok := k.TakeOneShotMod()
	require.True(t, ok)
	assert.Equal(t, action.ModShift, mods.Mods)

	_, ok = k.TakeOneShotMod()
	assert.False(t, ok, "one-shot should be consumed exactly once")
}

func TestOneShotLayerArmAndTake(t *testing.T) {
	k := New(3, 1, 1)
	require.NoError(t, k.ArmOneShotLayer(2))
	layer, ok := k.TakeOneShotLayer()
	require.True(t, ok)
	assert.Equal(t, byte(2), layer)

	_, ok = k.TakeOneShotLayer()
	assert.False(t, ok)
}

func TestOneShotModClearsAfterTimeout(t *testing.T) {
	k := New(1, 1, 1)
	k.SetOneShotTimeout(10 * time.Millisecond)

	k.ArmOneShotMod(action.ModSet{Mods: action.ModShift})
	time.Sleep(50 * time.Millisecond)

	_, ok := k.TakeOneShotMod()
	assert.False(t, ok, "one-shot mod should have cleared on its own")
}

func TestOneShotModDoubleTapLocks(t *testing.T) {
	k := New(1, 1, 1)
	k.SetOneShotTimeout(time.Second)
	mods := action.ModSet{Mods: action.ModShift}

	k.ArmOneShotMod(mods)
	k.ArmOneShotMod(mods) // double-tap within the window: locks

	for i := 0; i < 3; i++ {
		got, ok := k.TakeOneShotMod()
		require.True(t, ok, "locked mod should keep applying")
		assert.Equal(t, action.ModShift, got.Mods)
	}

	k.ArmOneShotMod(mods) // third press: unlocks
	_, ok := k.TakeOneShotMod()
	assert.False(t, ok, "mod should be cleared after unlock")
}

func TestOneShotLayerClearsAfterTimeout(t *testing.T) {
	k := New(3, 1, 1)
	k.SetOneShotTimeout(10 * time.Millisecond)

	require.NoError(t, k.ArmOneShotLayer(2))
	assert.Equal(t, uint32(0b100), k.ActiveLayers())

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, uint32(0), k.ActiveLayers(), "layer should auto-pop once the one-shot clears")

	_, ok := k.TakeOneShotLayer()
	assert.False(t, ok)
}

func TestOneShotLayerDoubleTapLocks(t *testing.T) {
	k := New(3, 1, 1)
	k.SetOneShotTimeout(time.Second)

	require.NoError(t, k.ArmOneShotLayer(2))
	require.NoError(t, k.ArmOneShotLayer(2)) // double-tap: locks

	for i := 0; i < 3; i++ {
		_, ok := k.TakeOneShotLayer()
		assert.False(t, ok, "locked layer stays pushed instead of being taken")
		assert.Equal(t, uint32(0b100), k.ActiveLayers())
	}

	require.NoError(t, k.ArmOneShotLayer(2)) // third press: unlocks
	assert.Equal(t, uint32(0), k.ActiveLayers())
}

func TestOnMutateHookFires(t *testing.T) {
	k := New(1, 1, 1)
	var gotLayer, gotRow, gotCol byte
	var gotAction action.KeyAction
	k.SetOnMutate(func(layer, row, col byte, a action.KeyAction) {
		gotLayer, gotRow, gotCol, gotAction = layer, row, col, a
	})
	require.NoError(t, k.SetAction(0, 0, 0, action.Single(0x06)))
	assert.Equal(t, byte(0), gotLayer)
	assert.Equal(t, byte(0), gotRow)
	assert.Equal(t, byte(0), gotCol)
	assert.Equal(t, action.Single(0x06), gotAction)
}

func TestGetActionAtIgnoresActiveLayers(t *testing.T) {
	k := newTestMap(t)
	require.NoError(t, k.PushLayer(1))

	a, err := k.GetActionAt(0, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, byte(0x04), a.KeyCode)

	a, err = k.GetActionAt(1, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, byte(0x05), a.KeyCode)
}
