// SPDX-License-Identifier: BSD-3-Clause

package action

import "time"

// Mod is a single modifier bit.
type Mod uint8

const (
	ModCtrl Mod = 1 << iota
	ModShift
	ModAlt
	ModGui
)

// Side distinguishes the left/right half of a modifier pair.
type Side uint8

const (
	SideLeft Side = iota
	SideRight
)

// ModSet packs the four modifier bits plus a side bit into one byte, as
// spec §3 requires ("Pack to one byte").
type ModSet struct {
	Mods Mod
	Side Side
}

// Byte packs the ModSet into the single wire byte VIA/Vial keymaps use:
// bits 0-3 are the modifier set, bit 4 is the side.
func (m ModSet) Byte() byte {
	b := byte(m.Mods)
	if m.Side == SideRight {
		b |= 1 << 4
	}
	return b
}

// ModSetFromByte unpacks a ModSet from its wire byte.
func ModSetFromByte(b byte) ModSet {
	side := SideLeft
	if b&(1<<4) != 0 {
		side = SideRight
	}
	return ModSet{Mods: Mod(b & 0x0f), Side: side}
}

// HIDModifierBit returns the bit this ModSet sets in the HID keyboard
// report's modifier byte (boot keyboard layout: left mods bits 0-3, right
// mods bits 4-7, in Ctrl/Shift/Alt/Gui order).
func (m ModSet) HIDModifierBit() byte {
	var bit byte
	switch {
	case m.Mods&ModCtrl != 0:
		bit = 0x01
	case m.Mods&ModShift != 0:
		bit = 0x02
	case m.Mods&ModAlt != 0:
		bit = 0x04
	case m.Mods&ModGui != 0:
		bit = 0x08
	}
	if m.Side == SideRight {
		bit <<= 4
	}
	return bit
}

// HIDModifierByte ORs together the HID modifier bits for every mod set in
// m, for callers holding more than one simultaneously-active ModSet (e.g.
// sticky + ephemeral).
func HIDModifierByte(sets ...ModSet) byte {
	var b byte
	for _, s := range sets {
		mods := s.Mods
		side := s.Side
		for _, mod := range []Mod{ModCtrl, ModShift, ModAlt, ModGui} {
			if mods&mod == 0 {
				continue
			}
			single := ModSet{Mods: mod, Side: side}
			b |= single.HIDModifierBit()
		}
	}
	return b
}

// Kind discriminates the KeyAction tagged variant. Dispatch on Kind is a
// plain switch — no dynamic dispatch (design note §9).
type Kind uint8

const (
	KindNo Kind = iota
	KindTransparent
	KindSingle
	KindWithModifier
	KindLayerOn
	KindLayerToggle
	KindLayerTo
	KindLayerDefault
	KindLayerTapToggle
	KindOneShotLayer
	KindOneShotMod
	KindModTap
	KindLayerTap
	KindTapHold
	KindMacro
	KindMouse
	KindConsumer
	KindSystem
)

// MouseOp identifies which field of a composite mouse report a Mouse action
// drives.
type MouseOp uint8

const (
	MouseOpMoveX MouseOp = iota
	MouseOpMoveY
	MouseOpWheel
	MouseOpPan
	MouseOpButton1
	MouseOpButton2
	MouseOpButton3
)

// MouseAction describes a mouse sub-action: either a button (held while the
// key is held) or a motion axis whose Delta is reported once on press and
// cleared on release; motion does not accumulate while the key is held.
type MouseAction struct {
	Op    MouseOp
	Delta int8 // used for motion ops; ignored for button ops
}

// MacroID identifies a stored macro slot.
type MacroID uint16

// KeyAction is the tagged variant of spec §3. Only the fields relevant to
// Kind are meaningful; this mirrors a Rust-style tagged union as a flat Go
// struct, matching the "tagged variant switch, no dynamic dispatch" design
// note.
type KeyAction struct {
	Kind Kind

	KeyCode   byte    // Single, WithModifier, ModTap.KeyCode, TapHold.Tap
	HoldCode  byte    // TapHold.Hold
	Modifiers ModSet  // WithModifier, ModTap, OneShotMod
	Layer     byte    // LayerOn/Toggle/To/Default/TapToggle, LayerTap, OneShotLayer
	MacroID   MacroID // Macro
	Mouse     MouseAction
	Usage16   uint16 // Consumer
	Usage8    uint8  // System
}

// No is the inert action: nothing happens on press or release.
func No() KeyAction { return KeyAction{Kind: KindNo} }

// Transparent falls through to the next lower active layer.
func Transparent() KeyAction { return KeyAction{Kind: KindTransparent} }

// Single emits a plain keycode.
func Single(kc byte) KeyAction { return KeyAction{Kind: KindSingle, KeyCode: kc} }

// WithModifier emits a keycode with the given modifiers held for the
// duration of the press.
func WithModifier(kc byte, mods ModSet) KeyAction {
	return KeyAction{Kind: KindWithModifier, KeyCode: kc, Modifiers: mods}
}

// LayerOn pushes layer n momentarily while held.
func LayerOn(n byte) KeyAction { return KeyAction{Kind: KindLayerOn, Layer: n} }

// LayerToggle flips layer n's membership in the active-layer bitmask on
// press.
func LayerToggle(n byte) KeyAction { return KeyAction{Kind: KindLayerToggle, Layer: n} }

// LayerTo sets the default layer to n on press.
func LayerTo(n byte) KeyAction { return KeyAction{Kind: KindLayerTo, Layer: n} }

// LayerDefault is an alias some layouts use for LayerTo; kept distinct so a
// keymap can tell "this key always resets the base layer" apart from a
// one-off jump.
func LayerDefault(n byte) KeyAction { return KeyAction{Kind: KindLayerDefault, Layer: n} }

// LayerTapToggle pushes layer n while held and pops it on release, exactly
// like LayerOn; repeated taps do not toggle the layer on.
func LayerTapToggle(n byte) KeyAction { return KeyAction{Kind: KindLayerTapToggle, Layer: n} }

// OneShotLayer activates layer n for exactly the next key press.
func OneShotLayer(n byte) KeyAction { return KeyAction{Kind: KindOneShotLayer, Layer: n} }

// OneShotMod activates mods for exactly the next non-modifier key press.
func OneShotMod(mods ModSet) KeyAction { return KeyAction{Kind: KindOneShotMod, Modifiers: mods} }

// ModTap resolves to mods held if tapped-and-held past TappingTerm (or
// another key intervenes), otherwise emits kc as a tap.
func ModTap(kc byte, mods ModSet) KeyAction {
	return KeyAction{Kind: KindModTap, KeyCode: kc, Modifiers: mods}
}

// LayerTap resolves to layer n held or kc tapped, by the same
// disambiguation as ModTap.
func LayerTap(n byte, kc byte) KeyAction {
	return KeyAction{Kind: KindLayerTap, Layer: n, KeyCode: kc}
}

// TapHold resolves to holdCode held or tapCode tapped.
func TapHold(tapCode, holdCode byte) KeyAction {
	return KeyAction{Kind: KindTapHold, KeyCode: tapCode, HoldCode: holdCode}
}

// Macro schedules macro id to run.
func Macro(id MacroID) KeyAction { return KeyAction{Kind: KindMacro, MacroID: id} }

// MouseKey drives one field of the composite mouse report.
func MouseKey(m MouseAction) KeyAction { return KeyAction{Kind: KindMouse, Mouse: m} }

// Consumer emits a consumer-page usage.
func Consumer(usage uint16) KeyAction { return KeyAction{Kind: KindConsumer, Usage16: usage} }

// System emits a system-page usage.
func System(usage uint8) KeyAction { return KeyAction{Kind: KindSystem, Usage8: usage} }

// Resolution is the outcome of tap/hold disambiguation.
type Resolution uint8

const (
	ResolutionPending Resolution = iota
	ResolutionAsTap
	ResolutionAsHold
)

// PressRecord is the per-physical-key state kept while a key is held (spec
// §3). Release edges consult this record rather than re-reading the
// keymap, so a layer change mid-hold never alters what a release does.
type PressRecord struct {
	Action    KeyAction
	PressedAt time.Time
	Resolved  Resolution
	// EphemeralMods are the modifier bits this press itself contributes to
	// the outgoing report (WithModifier/ModTap-as-hold), tracked here so
	// release can remove exactly what press added.
	EphemeralMods ModSet
	HasEphemeral  bool
}

// MaxPendingPresses is the HID rollover cap plus room for mod/layer keys
// (spec §3).
const MaxPendingPresses = 6

// KeyEvent is a single matrix transition in logical row/col coordinates,
// independent of electrical col2row orientation.
type KeyEvent struct {
	Row     byte
	Col     byte
	Pressed bool
}
