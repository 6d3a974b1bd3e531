// SPDX-License-Identifier: BSD-3-Clause

package vialproto

import (
	"context"
	"fmt"
	"sync"

	"github.com/qmuntal/stateless"
)

// UnlockState is one of the three unlock handshake states of spec §4.7:
// the host sends UNLOCK_START with a bitmap of required matrix positions,
// the user physically holds them, and UNLOCK_POLL reports progress until
// every required position is simultaneously held.
type UnlockState int

const (
	Locked UnlockState = iota
	Unlocking
	Unlocked
)

func (s UnlockState) String() string {
	switch s {
	case Locked:
		return "locked"
	case Unlocking:
		return "unlocking"
	case Unlocked:
		return "unlocked"
	default:
		return "unknown"
	}
}

// MatrixPos is a single logical matrix position, as used by the unlock
// bitmap and by the split-link key event payload.
type MatrixPos struct {
	Row byte
	Col byte
}

type unlockTrigger int

const (
	triggerUnlockStart unlockTrigger = iota
	triggerAllHeld
	triggerLock
)

// Unlock is the UNLOCK_START/UNLOCK_POLL/LOCK handshake state machine,
// wrapping a github.com/qmuntal/stateless.StateMachine the same way
// pkg/tapstate.Machine wraps one over its own typed states.
type Unlock struct {
	mu       sync.Mutex
	machine  *stateless.StateMachine
	required map[MatrixPos]bool
	held     map[MatrixPos]bool
}

// NewUnlock builds a Locked Unlock machine.
func NewUnlock() *Unlock {
	u := &Unlock{}
	u.configure()
	return u
}

func (u *Unlock) configure() {
	u.machine = stateless.NewStateMachine(Locked)

	u.machine.Configure(Locked).
		Permit(triggerUnlockStart, Unlocking)

	u.machine.Configure(Unlocking).
		PermitIf(triggerAllHeld, Unlocked, func(context.Context, ...any) bool {
			return u.allRequiredHeld()
		}).
		Permit(triggerLock, Locked)

	u.machine.Configure(Unlocked).
		Permit(triggerLock, Locked)
}

// Start begins an unlock sequence requiring every position in required to
// be held simultaneously. It resets any in-progress sequence.
func (u *Unlock) Start(required []MatrixPos) error {
	u.mu.Lock()
	defer u.mu.Unlock()

	u.required = make(map[MatrixPos]bool, len(required))
	for _, p := range required {
		u.required[p] = true
	}
	u.held = make(map[MatrixPos]bool)

	if u.machine.MustState() != Locked {
		u.configure()
	}
	if err := u.machine.Fire(triggerUnlockStart); err != nil {
		return fmt.Errorf("vialproto: unlock start: %w", err)
	}
	return nil
}

// Observe updates the held set with a matrix position's current press
// state and advances to Unlocked once every required position is held.
// Callers should feed every KeyEvent into Observe while Unlocking; calls
// outside that state are ignored.
func (u *Unlock) Observe(pos MatrixPos, pressed bool) {
	u.mu.Lock()
	defer u.mu.Unlock()

	if u.machine.MustState() != Unlocking {
		return
	}
	if pressed {
		u.held[pos] = true
	} else {
		delete(u.held, pos)
	}
	if ok, _ := u.machine.CanFire(triggerAllHeld); ok {
		_ = u.machine.Fire(triggerAllHeld)
	}
}

// allRequiredHeld reports whether every required position is currently
// held. Called under u.mu by the PermitIf guard above.
func (u *Unlock) allRequiredHeld() bool {
	if len(u.required) == 0 {
		return false
	}
	for p := range u.required {
		if !u.held[p] {
			return false
		}
	}
	return true
}

// Poll reports the current state and how many of the required positions
// are currently held, for UNLOCK_POLL/GET_UNLOCK_STATUS.
func (u *Unlock) Poll() (state UnlockState, held, total int) {
	u.mu.Lock()
	defer u.mu.Unlock()

	n := 0
	for p := range u.required {
		if u.held[p] {
			n++
		}
	}
	return u.machine.MustState().(UnlockState), n, len(u.required)
}

// Lock resets the machine to Locked from any state, for LOCK.
func (u *Unlock) Lock() error {
	u.mu.Lock()
	defer u.mu.Unlock()

	if u.machine.MustState() == Locked {
		return nil
	}
	if err := u.machine.Fire(triggerLock); err != nil {
		return fmt.Errorf("vialproto: lock: %w", err)
	}
	return nil
}
