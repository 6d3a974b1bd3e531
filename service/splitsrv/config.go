// SPDX-License-Identifier: BSD-3-Clause

package splitsrv

import (
	"time"

	"github.com/vialcore/vialcore/pkg/splitproto"
)

// Role selects which half of the split link a SplitSrv instance plays.
type Role byte

const (
	// RoleCentral is the USB-attached half: it re-publishes the peer's key
	// events (offset-adjusted) onto the local bus and forwards the local
	// LED indicator state to the peer.
	RoleCentral Role = iota
	// RolePeripheral forwards its own local key events to Central and
	// applies whatever LED state Central forwards back.
	RolePeripheral
)

func (r Role) String() string {
	switch r {
	case RoleCentral:
		return "central"
	case RolePeripheral:
		return "peripheral"
	default:
		return "unknown"
	}
}

const DefaultServiceName = "splitsrv"

// DefaultBaudRate matches the serial rate split keyboard firmwares
// conventionally use between halves.
const DefaultBaudRate = 115200

// DefaultHeartbeatInterval is how often a KindConnectionState heartbeat is
// sent to the peer.
const DefaultHeartbeatInterval = 250 * time.Millisecond

// DefaultStaleAfter bounds how long without any inbound message before the
// peer is considered disconnected.
const DefaultStaleAfter = 3 * DefaultHeartbeatInterval

type config struct {
	serviceName string
	role        Role

	transport splitproto.Transport

	uartDevice string
	uartBaud   int

	natsSendSubject string
	natsRecvSubject string

	rowOffset byte
	colOffset byte

	heartbeatInterval time.Duration
	staleAfter        time.Duration
}

// Option configures a splitsrv config.
type Option interface {
	apply(*config)
}

type serviceNameOption struct{ name string }

func (o serviceNameOption) apply(c *config) { c.serviceName = o.name }

// WithServiceName overrides the service's Name().
func WithServiceName(name string) Option { return serviceNameOption{name: name} }

type roleOption struct{ role Role }

func (o roleOption) apply(c *config) { c.role = o.role }

// WithRole sets whether this instance plays Central or Peripheral.
func WithRole(role Role) Option { return roleOption{role: role} }

type transportOption struct{ t splitproto.Transport }

func (o transportOption) apply(c *config) { c.transport = o.t }

// WithTransport injects a ready-made Transport directly, bypassing the
// UART/NATS construction in Run. Mainly for tests.
func WithTransport(t splitproto.Transport) Option { return transportOption{t: t} }

type uartOption struct {
	device string
	baud   int
}

func (o uartOption) apply(c *config) {
	c.uartDevice = o.device
	c.uartBaud = o.baud
}

// WithUART configures a serial device to dial in Run, wrapped as a
// splitproto.StreamTransport. A baud of 0 uses DefaultBaudRate.
func WithUART(device string, baud int) Option { return uartOption{device: device, baud: baud} }

type natsLinkOption struct {
	send string
	recv string
}

func (o natsLinkOption) apply(c *config) {
	c.natsSendSubject = o.send
	c.natsRecvSubject = o.recv
}

// WithNATSLink configures an in-process ipcbus transport addressed by a
// pair of subjects, used for single-board simulation and split-over-
// network testing in place of a real UART.
func WithNATSLink(sendSubject, recvSubject string) Option {
	return natsLinkOption{send: sendSubject, recv: recvSubject}
}

type coordOffsetOption struct{ row, col byte }

func (o coordOffsetOption) apply(c *config) { c.rowOffset, c.colOffset = o.row, o.col }

// WithCoordOffset sets the compile-time (row, col) constant Central adds
// to a Peripheral-reported key event before republishing it locally. No-op
// in the Peripheral role.
func WithCoordOffset(row, col byte) Option { return coordOffsetOption{row: row, col: col} }

type heartbeatOption struct{ d time.Duration }

func (o heartbeatOption) apply(c *config) { c.heartbeatInterval = o.d }

// WithHeartbeatInterval overrides DefaultHeartbeatInterval.
func WithHeartbeatInterval(d time.Duration) Option { return heartbeatOption{d: d} }

type staleAfterOption struct{ d time.Duration }

func (o staleAfterOption) apply(c *config) { c.staleAfter = o.d }

// WithStaleAfter overrides DefaultStaleAfter.
func WithStaleAfter(d time.Duration) Option { return staleAfterOption{d: d} }

func newConfig(opts ...Option) *config {
	cfg := &config{
		serviceName:       DefaultServiceName,
		uartBaud:          DefaultBaudRate,
		heartbeatInterval: DefaultHeartbeatInterval,
		staleAfter:        DefaultStaleAfter,
	}
	for _, opt := range opts {
		opt.apply(cfg)
	}
	if cfg.uartBaud == 0 {
		cfg.uartBaud = DefaultBaudRate
	}
	return cfg
}
