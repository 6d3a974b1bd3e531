// SPDX-License-Identifier: BSD-3-Clause

package hidsrv

import (
	"time"

	"github.com/vialcore/vialcore/pkg/usbhid"
)

const (
	DefaultServiceName     = "hidsrv"
	DefaultKeyboardDevice  = "/dev/hidg0"
	DefaultExtraDevice     = "/dev/hidg1"
	DefaultVialDevice      = "/dev/hidg2"
	DefaultLEDPollInterval = 10 * time.Millisecond
	DefaultVialTimeout     = 2 * time.Second
)

type config struct {
	serviceName     string
	keyboardDevice  string
	extraDevice     string
	vialDevice      string
	gadgetCfg       *usbhid.GadgetConfig
	ledPollInterval time.Duration
	vialTimeout     time.Duration
}

// Option configures a hidsrv config.
type Option interface {
	apply(*config)
}

type serviceNameOption struct{ name string }

func (o serviceNameOption) apply(c *config) { c.serviceName = o.name }

// WithServiceName overrides the service's Name().
func WithServiceName(name string) Option { return serviceNameOption{name: name} }

type keyboardDeviceOption struct{ path string }

func (o keyboardDeviceOption) apply(c *config) { c.keyboardDevice = o.path }

// WithKeyboardDevice overrides the boot keyboard hidg device path.
func WithKeyboardDevice(path string) Option { return keyboardDeviceOption{path: path} }

type extraDeviceOption struct{ path string }

func (o extraDeviceOption) apply(c *config) { c.extraDevice = o.path }

// WithExtraDevice overrides the mouse/consumer/system hidg device path.
func WithExtraDevice(path string) Option { return extraDeviceOption{path: path} }

type vialDeviceOption struct{ path string }

func (o vialDeviceOption) apply(c *config) { c.vialDevice = o.path }

// WithVialDevice overrides the Vial raw HID hidg device path.
func WithVialDevice(path string) Option { return vialDeviceOption{path: path} }

type vialTimeoutOption struct{ d time.Duration }

func (o vialTimeoutOption) apply(c *config) { c.vialTimeout = o.d }

// WithVialTimeout overrides how long hidsrv waits for vialsrv's reply to a
// Vial raw HID request before giving up on that request.
func WithVialTimeout(d time.Duration) Option { return vialTimeoutOption{d: d} }

type gadgetConfigOption struct{ cfg *usbhid.GadgetConfig }

func (o gadgetConfigOption) apply(c *config) { c.gadgetCfg = o.cfg }

// WithGadgetConfig has hidsrv create and bind the USB gadget itself on
// startup. If omitted, hidsrv assumes the gadget was already configured
// externally and only talks to the resulting /dev/hidgN devices.
func WithGadgetConfig(cfg *usbhid.GadgetConfig) Option { return gadgetConfigOption{cfg: cfg} }

type ledPollIntervalOption struct{ d time.Duration }

func (o ledPollIntervalOption) apply(c *config) { c.ledPollInterval = o.d }

// WithLEDPollInterval overrides the delay between LED output report polls.
func WithLEDPollInterval(d time.Duration) Option { return ledPollIntervalOption{d: d} }

func newConfig(opts ...Option) *config {
	cfg := &config{
		serviceName:     DefaultServiceName,
		keyboardDevice:  DefaultKeyboardDevice,
		extraDevice:     DefaultExtraDevice,
		vialDevice:      DefaultVialDevice,
		ledPollInterval: DefaultLEDPollInterval,
		vialTimeout:     DefaultVialTimeout,
	}
	for _, opt := range opts {
		opt.apply(cfg)
	}
	return cfg
}
