// SPDX-License-Identifier: BSD-3-Clause

package ipcbus

import (
	"fmt"
	"time"

	"github.com/nats-io/nats-server/v2/server"
)

const (
	DefaultServiceName    = "ipcbus"
	DefaultServerName     = "vialcore-ipcbus"
	DefaultStoreDir       = "/var/lib/vialcore/ipcbus"
	DefaultStartupTimeout = 5 * time.Second
	DefaultShutdownTimeout = 2 * time.Second
	DefaultMaxPayload     = 65536
)

type config struct {
	serviceName     string
	serverName      string
	storeDir        string
	enableJetStream bool
	startupTimeout  time.Duration
	shutdownTimeout time.Duration
	maxPayload      int32
}

// Validate checks the configuration is well-formed.
func (c *config) Validate() error {
	if c.serviceName == "" {
		return fmt.Errorf("%w: service name cannot be empty", ErrInvalidConfiguration)
	}
	if c.enableJetStream && c.storeDir == "" {
		return fmt.Errorf("%w: jetstream enabled but store dir is empty", ErrInvalidConfiguration)
	}
	if c.startupTimeout <= 0 {
		return fmt.Errorf("%w: startup timeout must be positive", ErrInvalidConfiguration)
	}
	return nil
}

// ToServerOptions translates c into NATS server options: no external
// listener (dontListen), in-process connections only.
func (c *config) ToServerOptions() *server.Options {
	return &server.Options{
		ServerName:  c.serverName,
		DontListen:  true,
		JetStream:   c.enableJetStream,
		StoreDir:    c.storeDir,
		MaxPayload:  c.maxPayload,
		NoSigs:      true,
		NoLog:       false,
	}
}

// Option configures a Config.
type Option interface {
	apply(*config)
}

type serviceNameOption struct{ name string }

func (o serviceNameOption) apply(c *config) { c.serviceName = o.name }

// WithServiceName overrides the service's Name().
func WithServiceName(name string) Option { return serviceNameOption{name: name} }

type storeDirOption struct{ dir string }

func (o storeDirOption) apply(c *config) { c.storeDir = o.dir }

// WithStoreDir overrides the JetStream storage directory.
func WithStoreDir(dir string) Option { return storeDirOption{dir: dir} }

type jetStreamOption struct{ enabled bool }

func (o jetStreamOption) apply(c *config) { c.enableJetStream = o.enabled }

// WithJetStream enables or disables JetStream persistence. KeyMap/Storage
// mutation events don't need replay, but enabling it lets a future
// consumer (e.g. a diagnostic log tailer) subscribe after the fact.
func WithJetStream(enabled bool) Option { return jetStreamOption{enabled: enabled} }

type startupTimeoutOption struct{ d time.Duration }

func (o startupTimeoutOption) apply(c *config) { c.startupTimeout = o.d }

// WithStartupTimeout overrides how long Run waits for the server to
// become ready before failing.
func WithStartupTimeout(d time.Duration) Option { return startupTimeoutOption{d: d} }

func newConfig(opts ...Option) *config {
	cfg := &config{
		serviceName:     DefaultServiceName,
		serverName:      DefaultServerName,
		storeDir:        DefaultStoreDir,
		enableJetStream: false,
		startupTimeout:  DefaultStartupTimeout,
		shutdownTimeout: DefaultShutdownTimeout,
		maxPayload:      DefaultMaxPayload,
	}
	for _, opt := range opts {
		opt.apply(cfg)
	}
	return cfg
}
