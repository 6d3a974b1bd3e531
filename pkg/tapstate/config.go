// SPDX-License-Identifier: BSD-3-Clause

package tapstate

import "time"

// Mode selects how a Machine resolves a hold when another key intervenes
// before TappingTerm elapses (spec §4.4 Open Question, resolved to
// PermissiveHold as the default).
type Mode uint8

const (
	// PermissiveHold resolves as Hold once the intervening key has been
	// both pressed and released while the tap-hold key is still down.
	PermissiveHold Mode = iota
	// HoldOnOtherKeyPress resolves as Hold as soon as another key is
	// pressed while the tap-hold key is still down, without waiting for
	// its release.
	HoldOnOtherKeyPress
)

// DefaultTappingTerm is the decision window of spec §4.4.
const DefaultTappingTerm = 200 * time.Millisecond

// Config holds per-Machine tap/hold policy, built with functional options
// in the teacher's configuration idiom.
type Config struct {
	Mode         Mode
	TappingTerm  time.Duration
}

// Option configures a Config.
type Option interface {
	apply(*Config)
}

type modeOption struct{ mode Mode }

func (o modeOption) apply(c *Config) { c.Mode = o.mode }

// WithMode selects permissive-hold or hold-on-other-key-press resolution.
func WithMode(m Mode) Option { return modeOption{mode: m} }

type tappingTermOption struct{ d time.Duration }

func (o tappingTermOption) apply(c *Config) { c.TappingTerm = o.d }

// WithTappingTerm overrides the decision window.
func WithTappingTerm(d time.Duration) Option { return tappingTermOption{d: d} }

// NewConfig builds a Config from options, defaulting to PermissiveHold and
// DefaultTappingTerm.
func NewConfig(opts ...Option) *Config {
	cfg := &Config{Mode: PermissiveHold, TappingTerm: DefaultTappingTerm}
	for _, opt := range opts {
		opt.apply(cfg)
	}
	if cfg.TappingTerm <= 0 {
		cfg.TappingTerm = DefaultTappingTerm
	}
	return cfg
}
