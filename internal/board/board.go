// SPDX-License-Identifier: BSD-3-Clause

// Package board builds the per-board supervisor.Config for each of this
// repo's physical keyboard layouts, so the hardwired firmware entrypoints
// under targets/keyboards and the flag-driven cmd/keyboard dev entrypoint
// share one definition instead of three copies.
package board

import (
	"context"
	"fmt"

	"github.com/vialcore/vialcore/service/splitsrv"
)

// Name identifies which physical board layout to run.
type Name string

const (
	Standard   Name = "standard"
	SplitLeft  Name = "split-left"
	SplitRight Name = "split-right"
)

// Config overrides a board's compiled-in defaults. The zero value for any
// field means "use the board's hardwired default".
type Config struct {
	// StorageDir overrides where the keyboard's persistent ID and keymap
	// log live. Only Standard and SplitLeft own storage; SplitRight has no
	// storage service to direct.
	StorageDir string
	// UART overrides the split-link serial device. Ignored for Standard.
	UART string
	// SplitRole overrides the split role baked into SplitLeft/SplitRight;
	// the zero value (splitsrv.RoleCentral) is also SplitLeft's default, so
	// an explicit override only matters for flipping SplitRight to Central
	// during bring-up testing, or vice versa.
	SplitRole    splitsrv.Role
	OverrideRole bool
}

const (
	defaultStorageDir = "/var/lib/vialcore"
	defaultUART       = "/dev/ttyS1"
)

// Run builds and starts the named board's supervisor, blocking until ctx
// is canceled or a service fails.
func Run(ctx context.Context, name Name, cfg Config) error {
	if cfg.StorageDir == "" {
		cfg.StorageDir = defaultStorageDir
	}
	if cfg.UART == "" {
		cfg.UART = defaultUART
	}

	switch name {
	case Standard:
		return runStandard(ctx, cfg)
	case SplitLeft:
		return runSplitLeft(ctx, cfg)
	case SplitRight:
		return runSplitRight(ctx, cfg)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownBoard, name)
	}
}
