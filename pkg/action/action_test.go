// SPDX-License-Identifier: BSD-3-Clause

package action

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestModSetByteRoundTrip(t *testing.T) {
	m := ModSet{Mods: ModCtrl | ModShift, Side: SideRight}
	got := ModSetFromByte(m.Byte())
	assert.Equal(t, m, got)
}

func TestModSetByteLeftDefault(t *testing.T) {
	m := ModSet{Mods: ModGui}
	assert.Equal(t, byte(0x08), m.Byte())
}

func TestHIDModifierBit(t *testing.T) {
	assert.Equal(t, byte(0x01), ModSet{Mods: ModCtrl, Side: SideLeft}.HIDModifierBit())
	assert.Equal(t, byte(0x10), ModSet{Mods: ModCtrl, Side: SideRight}.HIDModifierBit())
	assert.Equal(t, byte(0x02), ModSet{Mods: ModShift, Side: SideLeft}.HIDModifierBit())
}

func TestHIDModifierByteCombines(t *testing.T) {
	b := HIDModifierByte(
		ModSet{Mods: ModCtrl, Side: SideLeft},
		ModSet{Mods: ModShift, Side: SideRight},
	)
	assert.Equal(t, byte(0x01|0x20), b)
}

func TestKeyActionConstructors(t *testing.T) {
	assert.Equal(t, KindNo, No().Kind)
	assert.Equal(t, KindTransparent, Transparent().Kind)

	s := Single(0x04)
	assert.Equal(t, KindSingle, s.Kind)
	assert.Equal(t, byte(0x04), s.KeyCode)

	wm := WithModifier(0x06, ModSet{Mods: ModShift})
	assert.Equal(t, KindWithModifier, wm.Kind)
	assert.Equal(t, ModSet{Mods: ModShift}, wm.Modifiers)

	th := TapHold(0x04, 0xe0)
	assert.Equal(t, KindTapHold, th.Kind)
	assert.Equal(t, byte(0x04), th.KeyCode)
	assert.Equal(t, byte(0xe0), th.HoldCode)

	lt := LayerTap(2, 0x2c)
	assert.Equal(t, KindLayerTap, lt.Kind)
	assert.Equal(t, byte(2), lt.Layer)
	assert.Equal(t, byte(0x2c), lt.KeyCode)

	mt := ModTap(0xe1, ModSet{Mods: ModShift})
	assert.Equal(t, KindModTap, mt.Kind)

	m := Macro(MacroID(7))
	assert.Equal(t, KindMacro, m.Kind)
	assert.Equal(t, MacroID(7), m.MacroID)

	osl := OneShotLayer(1)
	assert.Equal(t, KindOneShotLayer, osl.Kind)
	assert.Equal(t, byte(1), osl.Layer)

	osm := OneShotMod(ModSet{Mods: ModGui})
	assert.Equal(t, KindOneShotMod, osm.Kind)

	mk := MouseKey(MouseAction{Op: MouseOpButton1})
	assert.Equal(t, KindMouse, mk.Kind)

	c := Consumer(0x00e9)
	assert.Equal(t, KindConsumer, c.Kind)
	assert.Equal(t, uint16(0x00e9), c.Usage16)

	sys := System(0x81)
	assert.Equal(t, KindSystem, sys.Kind)
	assert.Equal(t, uint8(0x81), sys.Usage8)
}
