// SPDX-License-Identifier: BSD-3-Clause

//go:build linux
// +build linux

package storagesrv

import (
	"github.com/vialcore/vialcore/pkg/flashsim"
	"github.com/vialcore/vialcore/pkg/keymap"
)

const DefaultServiceName = "storagesrv"

type config struct {
	serviceName string
	dir         string
	numSectors  int
	sectorSize  int
	minFree     int
	km          *keymap.KeyMap
}

// Option configures a storagesrv config.
type Option interface {
	apply(*config)
}

type serviceNameOption struct{ name string }

func (o serviceNameOption) apply(c *config) { c.serviceName = o.name }

// WithServiceName overrides the service's Name().
func WithServiceName(name string) Option { return serviceNameOption{name: name} }

type dirOption struct{ dir string }

func (o dirOption) apply(c *config) { c.dir = o.dir }

// WithDir sets the directory the flash log's sector files live under.
// Required; Run fails without one.
func WithDir(dir string) Option { return dirOption{dir: dir} }

type numSectorsOption struct{ n int }

func (o numSectorsOption) apply(c *config) { c.numSectors = o.n }

// WithNumSectors overrides flashsim.DefaultNumSectors.
func WithNumSectors(n int) Option { return numSectorsOption{n: n} }

type sectorSizeOption struct{ n int }

func (o sectorSizeOption) apply(c *config) { c.sectorSize = o.n }

// WithSectorSize overrides flashsim.DefaultSectorSize.
func WithSectorSize(n int) Option { return sectorSizeOption{n: n} }

type minFreeOption struct{ n int }

func (o minFreeOption) apply(c *config) { c.minFree = o.n }

// WithMinFreeBytes overrides flashsim.DefaultMinFreeBytes.
func WithMinFreeBytes(n int) Option { return minFreeOption{n: n} }

type keyMapOption struct{ km *keymap.KeyMap }

func (o keyMapOption) apply(c *config) { c.km = o.km }

// WithKeyMap supplies the KeyMap that KindKeymapCell records are replayed
// into at startup. Later SubjectStorageMutate messages of that kind are
// only appended to the log; they are not applied to the KeyMap. Required;
// Run fails without one.
func WithKeyMap(km *keymap.KeyMap) Option { return keyMapOption{km: km} }

func newConfig(opts ...Option) *config {
	cfg := &config{
		serviceName: DefaultServiceName,
		numSectors:  flashsim.DefaultNumSectors,
		sectorSize:  flashsim.DefaultSectorSize,
		minFree:     flashsim.DefaultMinFreeBytes,
	}
	for _, opt := range opts {
		opt.apply(cfg)
	}
	return cfg
}
