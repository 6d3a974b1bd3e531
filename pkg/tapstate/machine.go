// SPDX-License-Identifier: BSD-3-Clause

package tapstate

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/qmuntal/stateless"
)

// State is one of the four tap/hold disambiguation states.
type State int

const (
	Idle State = iota
	Pending
	ResolvedTap
	ResolvedHold
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Pending:
		return "pending"
	case ResolvedTap:
		return "resolved_tap"
	case ResolvedHold:
		return "resolved_hold"
	default:
		return "unknown"
	}
}

// Trigger is a tap/hold disambiguation input event.
type Trigger int

const (
	triggerOwnPress Trigger = iota
	TriggerOtherKeyPress
	TriggerOtherKeyRelease
	TriggerOwnRelease
	TriggerTimerFired
)

// Machine disambiguates a single ModTap/LayerTap/TapHold key's press into a
// Tap or Hold resolution (spec §4.4), wrapping a
// github.com/qmuntal/stateless.StateMachine over typed states and triggers.
type Machine struct {
	mu sync.Mutex

	cfg          *Config
	machine      *stateless.StateMachine
	otherKeyDown bool
	timer        *time.Timer
}

// New builds an idle Machine with the given config. A nil config uses
// defaults (PermissiveHold, 200ms tapping term).
func New(cfg *Config) *Machine {
	if cfg == nil {
		cfg = NewConfig()
	}
	m := &Machine{cfg: cfg}
	m.configure()
	return m
}

func (m *Machine) configure() {
	m.machine = stateless.NewStateMachine(Idle)

	m.machine.Configure(Idle).
		Permit(triggerOwnPress, Pending)

	m.machine.Configure(Pending).
		OnEntryFrom(triggerOwnPress, func(context.Context, ...any) error {
			m.otherKeyDown = false
			return nil
		}).
		OnEntryFrom(TriggerOtherKeyPress, func(context.Context, ...any) error {
			m.otherKeyDown = true
			return nil
		}).
		PermitIf(TriggerOtherKeyPress, ResolvedHold, func(context.Context, ...any) bool {
			return m.cfg.Mode == HoldOnOtherKeyPress
		}).
		PermitReentryIf(TriggerOtherKeyPress, func(context.Context, ...any) bool {
			return m.cfg.Mode == PermissiveHold
		}).
		PermitIf(TriggerOtherKeyRelease, ResolvedHold, func(context.Context, ...any) bool {
			return m.cfg.Mode == PermissiveHold && m.otherKeyDown
		}).
		Permit(TriggerOwnRelease, ResolvedTap).
		Permit(TriggerTimerFired, ResolvedHold)

	m.machine.Configure(ResolvedTap)
	m.machine.Configure(ResolvedHold)
}

// Start transitions Idle -> Pending and arms the tapping-term timer; onTimeout
// is invoked (from a separate goroutine) if the term elapses before the
// machine resolves by other means. Calling Start twice without an
// intervening Reset is a no-op.
func (m *Machine) Start(onTimeout func()) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.machine.MustState() != Idle {
		return nil
	}
	if err := m.machine.Fire(triggerOwnPress); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidTrigger, err)
	}
	m.timer = time.AfterFunc(m.cfg.TappingTerm, func() {
		if m.fireLocked(TriggerTimerFired) == nil && onTimeout != nil {
			onTimeout()
		}
	})
	return nil
}

// OtherKeyPress reports that a different key was pressed while this
// machine is Pending.
func (m *Machine) OtherKeyPress() error { return m.fireLocked(TriggerOtherKeyPress) }

// OtherKeyRelease reports that the intervening key from OtherKeyPress was
// released while this machine is Pending.
func (m *Machine) OtherKeyRelease() error { return m.fireLocked(TriggerOtherKeyRelease) }

// OwnRelease reports the tap-hold key's own release.
func (m *Machine) OwnRelease() error {
	m.mu.Lock()
	if m.timer != nil {
		m.timer.Stop()
	}
	m.mu.Unlock()
	return m.fireLocked(TriggerOwnRelease)
}

func (m *Machine) fireLocked(trig Trigger) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	state := m.machine.MustState().(State)
	if state == ResolvedTap || state == ResolvedHold {
		return ErrAlreadyResolved
	}
	if ok, _ := m.machine.CanFire(trig); !ok {
		return nil
	}
	if err := m.machine.Fire(trig); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidTrigger, err)
	}
	return nil
}

// State returns the machine's current state.
func (m *Machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.machine.MustState().(State)
}

// Reset returns the machine to Idle, stopping any pending timer, so it can
// be reused for the next press of the same physical key.
func (m *Machine) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
	m.otherKeyDown = false
	m.configure()
}
