// SPDX-License-Identifier: BSD-3-Clause

package keymap

import (
	"fmt"
	"sync"
	"time"

	"github.com/vialcore/vialcore/pkg/action"
)

// DefaultOneShotTimeout is the ONESHOT_TIMEOUT spec §6 default: how long an
// armed one-shot mod/layer waits for a following key before it clears
// itself.
const DefaultOneShotTimeout = 500 * time.Millisecond

// MutateFunc is called after every action-mutating operation, with the
// layer/row/col of the cell that changed and its new value. Breaks the
// cyclic KeyMap<->Storage ownership via callback injection rather than a
// back-pointer; in the current wiring the hook goes unused because
// service/vialsrv (the sole writer) publishes a storage mutation onto the
// ipcbus itself after each SetAction, keeping KeyMap decoupled from
// transport the same way every other inter-service edge in this tree is.
type MutateFunc func(layer, row, col byte, a action.KeyAction)

// KeyMap is the layer-aware lookup grid of spec §4.3. All methods are safe
// for concurrent use; keyboardsrv reads on every scan tick while vialsrv
// writes on configuration changes.
type KeyMap struct {
	mu sync.RWMutex

	layers int
	rows   int
	cols   int

	grid [][][]action.KeyAction

	activeLayers uint32 // bitmask, bit n set means layer n is momentarily on
	defaultLayer byte

	oneShotTimeout time.Duration

	oneShotMods   action.ModSet
	hasOneShot    bool
	modLocked     bool
	lockedMods    action.ModSet
	lastModArmAt  time.Time
	oneShotModTmr *time.Timer

	oneShotLayer   byte
	hasOneShotLy   bool
	layerLocked    bool
	lockedLayer    byte
	lastLayerArmAt time.Time
	oneShotLyTmr   *time.Timer

	onMutate MutateFunc
}

// SetOneShotTimeout overrides ONESHOT_TIMEOUT (default DefaultOneShotTimeout).
// Intended to be called once, before the KeyMap is shared across goroutines.
func (k *KeyMap) SetOneShotTimeout(d time.Duration) {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.oneShotTimeout = d
}

func (k *KeyMap) oneShotTimeoutLocked() time.Duration {
	if k.oneShotTimeout <= 0 {
		return DefaultOneShotTimeout
	}
	return k.oneShotTimeout
}

// New constructs a KeyMap with layers*rows*cols cells, every one initialized
// to action.No() (the zero KeyAction), so layer 0 never starts out holding
// Transparent; callers populate the cells with concrete actions before use.
func New(layers, rows, cols int) *KeyMap {
	grid := make([][][]action.KeyAction, layers)
	for l := range grid {
		grid[l] = make([][]action.KeyAction, rows)
		for r := range grid[l] {
			grid[l][r] = make([]action.KeyAction, cols)
			if l == 0 {
				for c := range grid[l][r] {
					grid[l][r][c] = action.No()
				}
			}
		}
	}
	return &KeyMap{layers: layers, rows: rows, cols: cols, grid: grid}
}

// SetOnMutate installs the callback invoked after every write. Intended to
// be called once, before the KeyMap is shared across goroutines.
func (k *KeyMap) SetOnMutate(fn MutateFunc) {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.onMutate = fn
}

func (k *KeyMap) checkBounds(layer, row, col int) error {
	if layer < 0 || layer >= k.layers || row < 0 || row >= k.rows || col < 0 || col >= k.cols {
		return fmt.Errorf("%w: layer=%d row=%d col=%d (dims %dx%dx%d)",
			ErrOutOfRange, layer, row, col, k.layers, k.rows, k.cols)
	}
	return nil
}

// GetAction evaluates the active-layer stack top-down (highest bit first)
// down to the default layer, returning the first non-Transparent action
// found (spec §4.3 lookup rule).
func (k *KeyMap) GetAction(row, col byte) (action.KeyAction, error) {
	k.mu.RLock()
	defer k.mu.RUnlock()

	if err := k.checkBounds(0, int(row), int(col)); err != nil {
		return action.KeyAction{}, err
	}

	for l := k.layers - 1; l > int(k.defaultLayer); l-- {
		if k.activeLayers&(1<<uint(l)) == 0 {
			continue
		}
		a := k.grid[l][row][col]
		if a.Kind != action.KindTransparent {
			return a, nil
		}
	}
	return k.grid[k.defaultLayer][row][col], nil
}

// GetActionAt reads a single cell directly, bypassing the active-layer
// lookup rule GetAction applies. Used by vialsrv's dynamic keymap editor,
// which addresses a specific layer rather than resolving through the
// currently active stack.
func (k *KeyMap) GetActionAt(layer, row, col byte) (action.KeyAction, error) {
	k.mu.RLock()
	defer k.mu.RUnlock()

	if err := k.checkBounds(int(layer), int(row), int(col)); err != nil {
		return action.KeyAction{}, err
	}
	return k.grid[layer][row][col], nil
}

// SetAction mutates a single cell and fires the mutate hook. Layer 0 may
// never hold a Transparent action.
func (k *KeyMap) SetAction(layer, row, col byte, a action.KeyAction) error {
	k.mu.Lock()
	defer k.mu.Unlock()

	if err := k.checkBounds(int(layer), int(row), int(col)); err != nil {
		return err
	}
	if layer == 0 && a.Kind == action.KindTransparent {
		return ErrTransparentOnBaseLayer
	}

	k.grid[layer][row][col] = a
	if k.onMutate != nil {
		k.onMutate(layer, row, col, a)
	}
	return nil
}

// PushLayer activates layer n momentarily. Idempotent: pushing an already
// active layer is a no-op.
func (k *KeyMap) PushLayer(n byte) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.pushLayerLocked(n)
}

func (k *KeyMap) pushLayerLocked(n byte) error {
	if err := k.checkBounds(int(n), 0, 0); err != nil {
		return err
	}
	k.activeLayers |= 1 << uint(n)
	return nil
}

// PopLayer deactivates layer n. Idempotent: popping an inactive layer is a
// no-op.
func (k *KeyMap) PopLayer(n byte) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.popLayerLocked(n)
}

func (k *KeyMap) popLayerLocked(n byte) error {
	if err := k.checkBounds(int(n), 0, 0); err != nil {
		return err
	}
	k.activeLayers &^= 1 << uint(n)
	return nil
}

// ToggleLayer flips layer n's membership in the momentary bitmask.
func (k *KeyMap) ToggleLayer(n byte) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	if err := k.checkBounds(int(n), 0, 0); err != nil {
		return err
	}
	k.activeLayers ^= 1 << uint(n)
	return nil
}

// SetDefaultLayer changes the base layer under the momentary stack.
func (k *KeyMap) SetDefaultLayer(n byte) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	if err := k.checkBounds(int(n), 0, 0); err != nil {
		return err
	}
	k.defaultLayer = n
	return nil
}

// DefaultLayer returns the current base layer.
func (k *KeyMap) DefaultLayer() byte {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return k.defaultLayer
}

// ActiveLayers returns the momentary-layer bitmask.
func (k *KeyMap) ActiveLayers() uint32 {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return k.activeLayers
}

// ArmOneShotMod arms a one-shot modifier set, consumed by the next
// non-modifier keypress. If no key follows within ONESHOT_TIMEOUT the mods
// clear on their own (spec §4.4). Pressing the same one-shot mod key again
// within that window locks the mods on until the key is pressed a third
// time to unlock.
func (k *KeyMap) ArmOneShotMod(mods action.ModSet) {
	k.mu.Lock()
	defer k.mu.Unlock()

	if k.modLocked && k.lockedMods == mods {
		k.modLocked = false
		k.hasOneShot = false
		k.oneShotMods = action.ModSet{}
		return
	}

	now := time.Now()
	doubleTap := k.hasOneShot && k.oneShotMods == mods && now.Sub(k.lastModArmAt) <= k.oneShotTimeoutLocked()

	if k.oneShotModTmr != nil {
		k.oneShotModTmr.Stop()
	}

	k.oneShotMods = mods
	k.hasOneShot = true
	k.lastModArmAt = now

	if doubleTap {
		k.modLocked = true
		k.lockedMods = mods
		return
	}

	k.oneShotModTmr = time.AfterFunc(k.oneShotTimeoutLocked(), func() {
		k.mu.Lock()
		defer k.mu.Unlock()
		if k.modLocked || k.oneShotMods != mods {
			return
		}
		k.hasOneShot = false
		k.oneShotMods = action.ModSet{}
	})
}

// ArmOneShotLayer arms a one-shot layer and pushes it onto the active-layer
// stack, consumed (popped) by the next keypress. Clearing and
// double-tap-lock behavior mirror ArmOneShotMod; on the unlocking press the
// layer is popped instead of pushed again.
func (k *KeyMap) ArmOneShotLayer(layer byte) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	if err := k.checkBounds(int(layer), 0, 0); err != nil {
		return err
	}

	if k.layerLocked && k.lockedLayer == layer {
		k.layerLocked = false
		k.hasOneShotLy = false
		return k.popLayerLocked(layer)
	}

	now := time.Now()
	doubleTap := k.hasOneShotLy && k.oneShotLayer == layer && now.Sub(k.lastLayerArmAt) <= k.oneShotTimeoutLocked()

	if k.oneShotLyTmr != nil {
		k.oneShotLyTmr.Stop()
	}

	k.oneShotLayer = layer
	k.hasOneShotLy = true
	k.lastLayerArmAt = now
	if err := k.pushLayerLocked(layer); err != nil {
		return err
	}

	if doubleTap {
		k.layerLocked = true
		k.lockedLayer = layer
		return nil
	}

	k.oneShotLyTmr = time.AfterFunc(k.oneShotTimeoutLocked(), func() {
		k.mu.Lock()
		if k.layerLocked || k.oneShotLayer != layer || !k.hasOneShotLy {
			k.mu.Unlock()
			return
		}
		k.hasOneShotLy = false
		k.mu.Unlock()
		_ = k.PopLayer(layer)
	})
	return nil
}

// TakeOneShotMod consumes the armed one-shot modifier set, if any. A
// double-tap-locked mod set is returned but left armed, so it keeps
// applying to every following key until ArmOneShotMod unlocks it.
func (k *KeyMap) TakeOneShotMod() (action.ModSet, bool) {
	k.mu.Lock()
	defer k.mu.Unlock()
	if !k.hasOneShot {
		return action.ModSet{}, false
	}
	mods := k.oneShotMods
	if k.modLocked {
		return mods, true
	}
	k.hasOneShot = false
	k.oneShotMods = action.ModSet{}
	if k.oneShotModTmr != nil {
		k.oneShotModTmr.Stop()
	}
	return mods, true
}

// TakeOneShotLayer consumes the armed one-shot layer, if any. A
// double-tap-locked layer is reported as not-consumed so the caller leaves
// it pushed until ArmOneShotLayer unlocks it.
func (k *KeyMap) TakeOneShotLayer() (byte, bool) {
	k.mu.Lock()
	defer k.mu.Unlock()
	if !k.hasOneShotLy || k.layerLocked {
		return 0, false
	}
	layer := k.oneShotLayer
	k.hasOneShotLy = false
	if k.oneShotLyTmr != nil {
		k.oneShotLyTmr.Stop()
	}
	return layer, true
}

// Dimensions returns the configured (layers, rows, cols) of the grid.
func (k *KeyMap) Dimensions() (layers, rows, cols int) {
	return k.layers, k.rows, k.cols
}
