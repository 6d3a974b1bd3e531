// SPDX-License-Identifier: BSD-3-Clause

package macro

import (
	"time"

	"github.com/vialcore/vialcore/pkg/action"
)

// ItemKind discriminates a MacroItem.
type ItemKind uint8

const (
	KindTap ItemKind = iota
	KindPress
	KindRelease
	KindDelay
	KindText
)

// Item is one step of a macro (spec §3 Macro).
type Item struct {
	Kind    ItemKind
	KeyCode byte
	Delay   time.Duration
	Text    string
}

// Tap synthesizes a press immediately followed by a release.
func Tap(kc byte) Item { return Item{Kind: KindTap, KeyCode: kc} }

// Press synthesizes a press with no matching release until a later Release
// item.
func Press(kc byte) Item { return Item{Kind: KindPress, KeyCode: kc} }

// Release synthesizes a release of a previously pressed keycode.
func Release(kc byte) Item { return Item{Kind: KindRelease, KeyCode: kc} }

// DelayItem pauses the runner for d before the next item.
func DelayItem(d time.Duration) Item { return Item{Kind: KindDelay, Delay: d} }

// Text synthesizes a tap for each rune of s, resolved through a
// TextEncoder at run time.
func Text(s string) Item { return Item{Kind: KindText, Text: s} }

// Macro is a named, ordered sequence of items bound to a MacroID for
// lookup from a KeyAction.Macro trigger.
type Macro struct {
	ID    action.MacroID
	Items []Item
}
