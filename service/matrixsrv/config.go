// SPDX-License-Identifier: BSD-3-Clause

package matrixsrv

import (
	"time"

	"github.com/vialcore/vialcore/pkg/matrixio"
)

const (
	DefaultServiceName  = "matrixsrv"
	DefaultPollInterval = time.Millisecond
)

type config struct {
	serviceName  string
	matrixCfg    *matrixio.Config
	pollInterval time.Duration
}

// Option configures a matrixsrv config.
type Option interface {
	apply(*config)
}

type serviceNameOption struct{ name string }

func (o serviceNameOption) apply(c *config) { c.serviceName = o.name }

// WithServiceName overrides the service's Name().
func WithServiceName(name string) Option { return serviceNameOption{name: name} }

type matrixConfigOption struct{ cfg *matrixio.Config }

func (o matrixConfigOption) apply(c *config) { c.matrixCfg = o.cfg }

// WithMatrixConfig supplies the electrical matrix configuration.
func WithMatrixConfig(cfg *matrixio.Config) Option { return matrixConfigOption{cfg: cfg} }

type pollIntervalOption struct{ d time.Duration }

func (o pollIntervalOption) apply(c *config) { c.pollInterval = o.d }

// WithPollInterval overrides the delay before the next scan after a scan
// that produced no event, in either scan mode.
func WithPollInterval(d time.Duration) Option { return pollIntervalOption{d: d} }

func newConfig(opts ...Option) *config {
	cfg := &config{
		serviceName:  DefaultServiceName,
		pollInterval: DefaultPollInterval,
	}
	for _, opt := range opts {
		opt.apply(cfg)
	}
	return cfg
}
