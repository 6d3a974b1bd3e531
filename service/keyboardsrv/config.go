// SPDX-License-Identifier: BSD-3-Clause

package keyboardsrv

import (
	"time"

	"github.com/vialcore/vialcore/pkg/keymap"
	"github.com/vialcore/vialcore/pkg/macro"
	"github.com/vialcore/vialcore/pkg/tapstate"
)

const (
	DefaultServiceName = "keyboardsrv"
)

type config struct {
	serviceName    string
	km             *keymap.KeyMap
	tapCfg         *tapstate.Config
	macroSet       []macro.Macro
	encoder        macro.TextEncoder
	oneShotTimeout time.Duration
}

// Option configures a keyboardsrv config.
type Option interface {
	apply(*config)
}

type serviceNameOption struct{ name string }

func (o serviceNameOption) apply(c *config) { c.serviceName = o.name }

// WithServiceName overrides the service's Name().
func WithServiceName(name string) Option { return serviceNameOption{name: name} }

type keyMapOption struct{ km *keymap.KeyMap }

func (o keyMapOption) apply(c *config) { c.km = o.km }

// WithKeyMap supplies the layer-aware lookup grid to dispatch against.
func WithKeyMap(km *keymap.KeyMap) Option { return keyMapOption{km: km} }

type tapConfigOption struct{ cfg *tapstate.Config }

func (o tapConfigOption) apply(c *config) { c.tapCfg = o.cfg }

// WithTapConfig overrides the tap/hold disambiguation policy shared by
// every ModTap/LayerTap/TapHold key.
func WithTapConfig(cfg *tapstate.Config) Option { return tapConfigOption{cfg: cfg} }

type macrosOption struct{ macros []macro.Macro }

func (o macrosOption) apply(c *config) { c.macroSet = o.macros }

// WithMacros supplies the stored macro table, looked up by action.MacroID.
func WithMacros(macros []macro.Macro) Option { return macrosOption{macros: macros} }

type textEncoderOption struct{ enc macro.TextEncoder }

func (o textEncoderOption) apply(c *config) { c.encoder = o.enc }

// WithTextEncoder supplies the rune-to-keycode mapping used by macro Text
// items. May be omitted if no macro uses a Text item.
func WithTextEncoder(enc macro.TextEncoder) Option { return textEncoderOption{enc: enc} }

type oneShotTimeoutOption struct{ d time.Duration }

func (o oneShotTimeoutOption) apply(c *config) { c.oneShotTimeout = o.d }

// WithOneShotTimeout overrides ONESHOT_TIMEOUT (spec §6), the window an
// armed OneShotMod/OneShotLayer waits for a following key before clearing.
// Defaults to keymap.DefaultOneShotTimeout.
func WithOneShotTimeout(d time.Duration) Option { return oneShotTimeoutOption{d: d} }

func newConfig(opts ...Option) *config {
	cfg := &config{serviceName: DefaultServiceName}
	for _, opt := range opts {
		opt.apply(cfg)
	}
	return cfg
}
