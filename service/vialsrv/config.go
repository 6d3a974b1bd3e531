// SPDX-License-Identifier: BSD-3-Clause

package vialsrv

import (
	"time"

	"github.com/vialcore/vialcore/pkg/kbid"
	"github.com/vialcore/vialcore/pkg/keymap"
)

const DefaultServiceName = "vialsrv"

// DefaultStorageTimeout bounds how long a command that mutates the KeyMap
// waits for storagesrv's append confirmation before giving up and replying
// anyway (spec.md §4.7 requires the reply to follow the durable write, but
// a wedged storage layer must not hang the Vial channel forever).
const DefaultStorageTimeout = 500 * time.Millisecond

type config struct {
	serviceName    string
	km             *keymap.KeyMap
	keyboardID     kbid.KeyboardID
	keymapDef      []byte
	storageTimeout time.Duration
}

// Option configures a vialsrv config.
type Option interface {
	apply(*config)
}

type serviceNameOption struct{ name string }

func (o serviceNameOption) apply(c *config) { c.serviceName = o.name }

// WithServiceName overrides the service's Name().
func WithServiceName(name string) Option { return serviceNameOption{name: name} }

type keyMapOption struct{ km *keymap.KeyMap }

func (o keyMapOption) apply(c *config) { c.km = o.km }

// WithKeyMap sets the KeyMap vialsrv dispatches dynamic keymap commands
// against. Required; Run fails without one.
func WithKeyMap(km *keymap.KeyMap) Option { return keyMapOption{km: km} }

type keyboardIDOption struct{ id kbid.KeyboardID }

func (o keyboardIDOption) apply(c *config) { c.keyboardID = o.id }

// WithKeyboardID sets the fixed 8-byte identifier returned by GET_KEYBOARD_ID.
func WithKeyboardID(id kbid.KeyboardID) Option { return keyboardIDOption{id: id} }

type keymapDefOption struct{ def []byte }

func (o keymapDefOption) apply(c *config) { c.keymapDef = o.def }

// WithKeymapDef sets the compile-time LZMA-compressed keymap definition
// blob served chunked by GET_SIZE/GET_DEF.
func WithKeymapDef(def []byte) Option { return keymapDefOption{def: def} }

type storageTimeoutOption struct{ d time.Duration }

func (o storageTimeoutOption) apply(c *config) { c.storageTimeout = o.d }

// WithStorageTimeout overrides DefaultStorageTimeout.
func WithStorageTimeout(d time.Duration) Option { return storageTimeoutOption{d: d} }

func newConfig(opts ...Option) *config {
	cfg := &config{
		serviceName:    DefaultServiceName,
		storageTimeout: DefaultStorageTimeout,
	}
	for _, opt := range opts {
		opt.apply(cfg)
	}
	return cfg
}
