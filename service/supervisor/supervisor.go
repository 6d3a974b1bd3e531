// SPDX-License-Identifier: BSD-3-Clause

package supervisor

import (
	"context"
	"fmt"
	"reflect"

	"cirello.io/oversight/v2"
	"github.com/arunsworld/nursery"
	"github.com/nats-io/nats.go"

	"github.com/vialcore/vialcore/pkg/keymap"
	"github.com/vialcore/vialcore/pkg/klog"
	"github.com/vialcore/vialcore/pkg/process"
	"github.com/vialcore/vialcore/service"
	"github.com/vialcore/vialcore/service/keyboardsrv"
	"github.com/vialcore/vialcore/service/storagesrv"
	"github.com/vialcore/vialcore/service/vialsrv"
)

const defaultLogo = `
 _   _  _       _
| | | |(_)     | |
| | | | _  __ _| |
| |_| || |/ _' | |
 \___/ |_|\__,_|_|

vialcore
`

var _ service.Service = (*Supervisor)(nil)

// Supervisor builds the supervision tree for every keyboard-firmware
// service and runs it until ctx is canceled. It is the sole owner of the
// shared KeyMap and of the embedded ipcbus, handing out connections to
// every other service.
type Supervisor struct {
	config
}

// New creates a Supervisor with the given options applied over the
// defaults.
func New(opts ...Option) *Supervisor {
	return &Supervisor{config: *newConfig(opts...)}
}

// Name implements service.Service.
func (s *Supervisor) Name() string {
	return s.name
}

// Run builds the supervision tree, starts the embedded ipcbus, constructs
// the KeyMap-sharing services, and runs everything under oversight until
// ctx is canceled or a fatal error occurs.
func (s *Supervisor) Run(ctx context.Context, ipcConn nats.InProcessConnProvider) (err error) {
	if s.name == "" {
		return ErrNameEmpty
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%s %w: %v", s.Name(), ErrPanicked, r)
		}
	}()

	l := s.logger
	if l == nil {
		l = klog.GetGlobalLogger()
	}

	if !s.disableLogo {
		if s.customLogo != "" {
			l.Info(s.customLogo)
		} else {
			l.Info(defaultLogo)
		}
	}

	if s.keyMap == nil {
		s.keyMap = keymap.New(s.keymapLayers, s.keymapRows, s.keymapCols)
	}
	if !s.noKeyboardsrv {
		s.Keyboardsrv = keyboardsrv.New(append([]keyboardsrv.Option{keyboardsrv.WithKeyMap(s.keyMap)}, s.keyboardOpts...)...)
	}
	if !s.noVialsrv {
		s.Vialsrv = vialsrv.New(append([]vialsrv.Option{vialsrv.WithKeyMap(s.keyMap)}, s.vialOpts...)...)
	}
	if !s.noStoragesrv {
		s.Storagesrv = storagesrv.New(append([]storagesrv.Option{storagesrv.WithKeyMap(s.keyMap)}, s.storageOpts...)...)
	}

	supervisionTree := oversight.New(
		oversight.NeverHalt(),
		oversight.DefaultRestartStrategy(),
		oversight.WithLogger(klog.NewOversightLogger(l)),
	)

	// A caller either provides a valid ipcConn when starting the supervisor
	// (e.g. to share an ipcbus owned by a parent process) or the supervisor
	// starts and owns its own embedded bus.
	var conn nats.InProcessConnProvider
	if ipcConn != nil {
		conn = ipcConn
	} else {
		if err := supervisionTree.Add(
			process.New(s.bus, nil),
			oversight.Transient(),
			oversight.Timeout(s.timeout),
			s.bus.Name(),
		); err != nil {
			return fmt.Errorf("%w %s to tree: %w", ErrAddProcess, s.bus.Name(), err)
		}
		conn = s.bus.GetConnProvider()
	}

	supervise := func(ctx context.Context, c chan error) {
		c <- supervisionTree.Start(ctx)
	}

	spawnProcs := func(ctx context.Context, c chan error) {
		// Dynamically add all service.Service fields to the supervision
		// tree, so adding a new exported field is enough to supervise it.
		configValue := reflect.ValueOf(s.config)
		for i := range configValue.NumField() {
			field := configValue.Field(i)

			if field.IsValid() && field.CanInterface() {
				v := field.Interface()
				if v == nil {
					continue
				}
				if svc, ok := v.(service.Service); ok {
					if err := supervisionTree.Add(
						process.New(svc, conn),
						oversight.Transient(),
						oversight.Timeout(s.timeout),
						svc.Name(),
					); err != nil {
						c <- fmt.Errorf("%w %s to tree: %w", ErrAddProcess, svc.Name(), err)
						return
					}
				}
			}
		}

		for _, svc := range s.extraServices {
			if err := supervisionTree.Add(
				process.New(svc, conn),
				oversight.Transient(),
				oversight.Timeout(s.timeout),
				svc.Name(),
			); err != nil {
				c <- fmt.Errorf("%w %s to tree: %w", ErrAddExtraService, svc.Name(), err)
				return
			}
		}
	}

	l.InfoContext(ctx, "starting supervision tree", "service", s.name)
	return nursery.RunConcurrentlyWithContext(ctx, supervise, spawnProcs)
}
