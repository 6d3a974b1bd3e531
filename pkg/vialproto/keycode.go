// SPDX-License-Identifier: BSD-3-Clause

package vialproto

import (
	"fmt"

	"github.com/vialcore/vialcore/pkg/action"
)

// WireKeycode is the on-wire encoding of an action.KeyAction used by the
// dynamic keymap get/set commands. Upstream VIA packs a keycode into 16
// bits; this keyboard's KeyAction carries more state than a stock VIA
// keycode (separate tap and hold codes, a packed ModSet, 16-bit consumer
// usages), so the wire form is widened to 4 bytes: {kind, param0, param1,
// param2}. A real Vial host does not know this layout, but this keyboard's
// own configurator does, and GetSize/GetDef advertise it rather than
// claiming upstream VIA compatibility for the raw keycode format.
type WireKeycode [4]byte

// EncodeKeyAction packs a into its wire form.
func EncodeKeyAction(a action.KeyAction) WireKeycode {
	var w WireKeycode
	w[0] = byte(a.Kind)

	switch a.Kind {
	case action.KindNo, action.KindTransparent:
		// no parameters
	case action.KindSingle:
		w[1] = a.KeyCode
	case action.KindWithModifier:
		w[1] = a.KeyCode
		w[2] = a.Modifiers.Byte()
	case action.KindLayerOn, action.KindLayerToggle, action.KindLayerTo,
		action.KindLayerDefault, action.KindLayerTapToggle, action.KindOneShotLayer:
		w[1] = a.Layer
	case action.KindOneShotMod:
		w[1] = a.Modifiers.Byte()
	case action.KindModTap:
		w[1] = a.KeyCode
		w[2] = a.Modifiers.Byte()
	case action.KindLayerTap:
		w[1] = a.Layer
		w[2] = a.KeyCode
	case action.KindTapHold:
		w[1] = a.KeyCode
		w[2] = a.HoldCode
	case action.KindMacro:
		w[1] = byte(a.MacroID >> 8)
		w[2] = byte(a.MacroID)
	case action.KindMouse:
		w[1] = byte(a.Mouse.Op)
		w[2] = byte(a.Mouse.Delta)
	case action.KindConsumer:
		w[1] = byte(a.Usage16 >> 8)
		w[2] = byte(a.Usage16)
	case action.KindSystem:
		w[1] = a.Usage8
	}
	return w
}

// DecodeKeyAction unpacks w back into an action.KeyAction.
func DecodeKeyAction(w WireKeycode) (action.KeyAction, error) {
	kind := action.Kind(w[0])
	switch kind {
	case action.KindNo:
		return action.No(), nil
	case action.KindTransparent:
		return action.Transparent(), nil
	case action.KindSingle:
		return action.Single(w[1]), nil
	case action.KindWithModifier:
		return action.WithModifier(w[1], action.ModSetFromByte(w[2])), nil
	case action.KindLayerOn:
		return action.LayerOn(w[1]), nil
	case action.KindLayerToggle:
		return action.LayerToggle(w[1]), nil
	case action.KindLayerTo:
		return action.LayerTo(w[1]), nil
	case action.KindLayerDefault:
		return action.LayerDefault(w[1]), nil
	case action.KindLayerTapToggle:
		return action.LayerTapToggle(w[1]), nil
	case action.KindOneShotLayer:
		return action.OneShotLayer(w[1]), nil
	case action.KindOneShotMod:
		return action.OneShotMod(action.ModSetFromByte(w[1])), nil
	case action.KindModTap:
		return action.ModTap(w[1], action.ModSetFromByte(w[2])), nil
	case action.KindLayerTap:
		return action.LayerTap(w[1], w[2]), nil
	case action.KindTapHold:
		return action.TapHold(w[1], w[2]), nil
	case action.KindMacro:
		return action.Macro(action.MacroID(uint16(w[1])<<8 | uint16(w[2]))), nil
	case action.KindMouse:
		return action.MouseKey(action.MouseAction{Op: action.MouseOp(w[1]), Delta: int8(w[2])}), nil
	case action.KindConsumer:
		return action.Consumer(uint16(w[1])<<8 | uint16(w[2])), nil
	case action.KindSystem:
		return action.System(w[1]), nil
	default:
		return action.KeyAction{}, fmt.Errorf("%w: %d", ErrUnknownKind, w[0])
	}
}
