// SPDX-License-Identifier: BSD-3-Clause

package supervisor

import (
	"log/slog"
	"time"

	"github.com/vialcore/vialcore/pkg/keymap"
	"github.com/vialcore/vialcore/service"
	"github.com/vialcore/vialcore/service/hidsrv"
	"github.com/vialcore/vialcore/service/ipcbus"
	"github.com/vialcore/vialcore/service/keyboardsrv"
	"github.com/vialcore/vialcore/service/lightsrv"
	"github.com/vialcore/vialcore/service/matrixsrv"
	"github.com/vialcore/vialcore/service/splitsrv"
	"github.com/vialcore/vialcore/service/storagesrv"
	"github.com/vialcore/vialcore/service/vialsrv"
)

// DefaultLayers, DefaultRows and DefaultCols size the shared KeyMap when no
// board-specific dimensions are supplied via WithKeyMapDims or WithKeyMap.
const (
	DefaultLayers = 4
	DefaultRows   = 5
	DefaultCols   = 15
)

// DefaultTimeout bounds how long the supervisor waits for a child to add to
// the tree before giving up.
const DefaultTimeout = 10 * time.Second

type config struct {
	name        string
	disableLogo bool
	customLogo  string
	logger      *slog.Logger
	timeout     time.Duration

	keyMap       *keymap.KeyMap
	keymapLayers int
	keymapRows   int
	keymapCols   int

	bus *ipcbus.IPCBus

	// Everything of type service.Service needs to be exported for the
	// reflect-based registration loop in Run.
	Matrixsrv    service.Service
	Hidsrv       service.Service
	Lightsrv     service.Service
	Splitsrv     service.Service
	Keyboardsrv  service.Service
	Vialsrv      service.Service
	Storagesrv   service.Service

	// Keyboardsrv, Vialsrv and Storagesrv all share the supervisor's
	// KeyMap, so they are constructed in Run once the KeyMap is settled
	// rather than eagerly in New.
	keyboardOpts []keyboardsrv.Option
	vialOpts     []vialsrv.Option
	storageOpts  []storagesrv.Option

	// keyboardsrv, vialsrv and storagesrv are otherwise always
	// constructed in Run; a split keyboard's peripheral half, which has
	// no USB connection to the host, opts out of them with these flags.
	noKeyboardsrv bool
	noVialsrv     bool
	noStoragesrv  bool

	extraServices []service.Service
}

// Option configures the supervisor.
type Option interface {
	apply(*config)
}

type nameOption struct{ name string }

func (o nameOption) apply(c *config) { c.name = o.name }

// WithName sets the supervisor's own service name.
func WithName(name string) Option { return nameOption{name: name} }

type disableLogoOption struct{ disableLogo bool }

func (o disableLogoOption) apply(c *config) { c.disableLogo = o.disableLogo }

// WithDisableLogo suppresses the startup banner.
func WithDisableLogo(disableLogo bool) Option { return disableLogoOption{disableLogo: disableLogo} }

type customLogoOption struct{ logo string }

func (o customLogoOption) apply(c *config) { c.customLogo = o.logo }

// WithCustomLogo replaces the default startup banner with logo.
func WithCustomLogo(logo string) Option { return customLogoOption{logo: logo} }

type loggerOption struct{ logger *slog.Logger }

func (o loggerOption) apply(c *config) { c.logger = o.logger }

// WithLogger sets the structured logger used for supervisor-level messages.
func WithLogger(logger *slog.Logger) Option { return loggerOption{logger: logger} }

type timeoutOption struct{ d time.Duration }

func (o timeoutOption) apply(c *config) { c.timeout = o.d }

// WithTimeout sets the per-child add timeout.
func WithTimeout(d time.Duration) Option { return timeoutOption{d: d} }

type keyMapOption struct{ km *keymap.KeyMap }

func (o keyMapOption) apply(c *config) { c.keyMap = o.km }

// WithKeyMap injects an already-built KeyMap instead of letting the
// supervisor build one from WithKeyMapDims.
func WithKeyMap(km *keymap.KeyMap) Option { return keyMapOption{km: km} }

type keymapDimsOption struct{ layers, rows, cols int }

func (o keymapDimsOption) apply(c *config) {
	c.keymapLayers, c.keymapRows, c.keymapCols = o.layers, o.rows, o.cols
}

// WithKeyMapDims sizes the KeyMap the supervisor builds for
// keyboardsrv/vialsrv/storagesrv when no explicit WithKeyMap is given.
func WithKeyMapDims(layers, rows, cols int) Option {
	return keymapDimsOption{layers: layers, rows: rows, cols: cols}
}

type ipcBusOption struct{ opts []ipcbus.Option }

func (o ipcBusOption) apply(c *config) { c.bus = ipcbus.New(o.opts...) }

// WithIPCBus configures the embedded NATS bus the rest of the tree connects
// through.
func WithIPCBus(opts ...ipcbus.Option) Option { return ipcBusOption{opts: opts} }

type matrixsrvOption struct{ opts []matrixsrv.Option }

func (o matrixsrvOption) apply(c *config) { c.Matrixsrv = matrixsrv.New(o.opts...) }

// WithMatrixsrv configures the matrix scanner service.
func WithMatrixsrv(opts ...matrixsrv.Option) Option { return matrixsrvOption{opts: opts} }

type keyboardsrvOption struct{ opts []keyboardsrv.Option }

func (o keyboardsrvOption) apply(c *config) { c.keyboardOpts = o.opts }

// WithKeyboardsrv configures the keyboard logic service. The shared KeyMap
// is prepended automatically; do not pass keyboardsrv.WithKeyMap here.
func WithKeyboardsrv(opts ...keyboardsrv.Option) Option { return keyboardsrvOption{opts: opts} }

type hidsrvOption struct{ opts []hidsrv.Option }

func (o hidsrvOption) apply(c *config) { c.Hidsrv = hidsrv.New(o.opts...) }

// WithHidsrv configures the USB HID transport service.
func WithHidsrv(opts ...hidsrv.Option) Option { return hidsrvOption{opts: opts} }

type lightsrvOption struct{ opts []lightsrv.Option }

func (o lightsrvOption) apply(c *config) { c.Lightsrv = lightsrv.New(o.opts...) }

// WithLightsrv configures the indicator LED service.
func WithLightsrv(opts ...lightsrv.Option) Option { return lightsrvOption{opts: opts} }

type vialsrvOption struct{ opts []vialsrv.Option }

func (o vialsrvOption) apply(c *config) { c.vialOpts = o.opts }

// WithVialsrv configures the Vial/VIA protocol service. The shared KeyMap
// is prepended automatically; do not pass vialsrv.WithKeyMap here.
func WithVialsrv(opts ...vialsrv.Option) Option { return vialsrvOption{opts: opts} }

type storagesrvOption struct{ opts []storagesrv.Option }

func (o storagesrvOption) apply(c *config) { c.storageOpts = o.opts }

// WithStoragesrv configures the flash persistence service. The shared
// KeyMap is prepended automatically; do not pass storagesrv.WithKeyMap here.
func WithStoragesrv(opts ...storagesrv.Option) Option { return storagesrvOption{opts: opts} }

type splitsrvOption struct{ opts []splitsrv.Option }

func (o splitsrvOption) apply(c *config) { c.Splitsrv = splitsrv.New(o.opts...) }

// WithSplitsrv enables and configures the split-keyboard link service. A
// keyboard with no split link simply omits this option.
func WithSplitsrv(opts ...splitsrv.Option) Option { return splitsrvOption{opts: opts} }

type withoutHidsrvOption struct{}

func (o withoutHidsrvOption) apply(c *config) { c.Hidsrv = nil }

// WithoutHidsrv disables the USB HID transport service. A split keyboard's
// peripheral half, which has no USB connection to the host, uses this.
func WithoutHidsrv() Option { return withoutHidsrvOption{} }

type withoutKeyboardsrvOption struct{}

func (o withoutKeyboardsrvOption) apply(c *config) { c.noKeyboardsrv = true }

// WithoutKeyboardsrv disables the keyboard logic service. A split
// keyboard's peripheral half, which only scans its own matrix and
// forwards raw events to Central, uses this.
func WithoutKeyboardsrv() Option { return withoutKeyboardsrvOption{} }

type withoutVialsrvOption struct{}

func (o withoutVialsrvOption) apply(c *config) { c.noVialsrv = true }

// WithoutVialsrv disables the Vial/VIA protocol service.
func WithoutVialsrv() Option { return withoutVialsrvOption{} }

type withoutStoragesrvOption struct{}

func (o withoutStoragesrvOption) apply(c *config) { c.noStoragesrv = true }

// WithoutStoragesrv disables the flash persistence service.
func WithoutStoragesrv() Option { return withoutStoragesrvOption{} }

type withoutLightsrvOption struct{}

func (o withoutLightsrvOption) apply(c *config) { c.Lightsrv = nil }

// WithoutLightsrv disables the indicator LED service, for a half with no
// physical indicator LEDs wired to it.
func WithoutLightsrv() Option { return withoutLightsrvOption{} }

type extraServicesOption struct{ services []service.Service }

func (o extraServicesOption) apply(c *config) { c.extraServices = o.services }

// WithExtraServices adds additional custom services to the supervision tree.
func WithExtraServices(services ...service.Service) Option {
	return extraServicesOption{services: services}
}

func newConfig(opts ...Option) *config {
	c := &config{
		name:         "supervisor",
		logger:       nil,
		timeout:      DefaultTimeout,
		keymapLayers: DefaultLayers,
		keymapRows:   DefaultRows,
		keymapCols:   DefaultCols,
		bus:          ipcbus.New(),
		Matrixsrv:    matrixsrv.New(),
		Hidsrv:       hidsrv.New(),
		Lightsrv:     lightsrv.New(),
	}
	for _, opt := range opts {
		opt.apply(c)
	}
	return c
}
