// SPDX-License-Identifier: BSD-3-Clause

package board

import (
	"context"
	"runtime/debug"

	"github.com/vialcore/vialcore/pkg/matrixio"
	"github.com/vialcore/vialcore/service/matrixsrv"
	"github.com/vialcore/vialcore/service/splitsrv"
	"github.com/vialcore/vialcore/service/supervisor"
)

// runSplitRight is the Peripheral half of a split keyboard: it scans its
// own matrix and forwards raw key events to the Central half over UART.
// Central owns keymap resolution, USB HID, Vial, storage and LEDs, so this
// half runs nothing but the matrix scanner and the split link.
func runSplitRight(ctx context.Context, cfg Config) error {
	debug.SetMemoryLimit(32 * 1024 * 1024)

	role := splitsrv.RolePeripheral
	if cfg.OverrideRole {
		role = cfg.SplitRole
	}

	matrixConfig := matrixio.NewConfig(
		matrixio.WithChip("/dev/gpiochip0"),
		matrixio.WithRowOffsets(17, 18, 27, 22, 23),
		matrixio.WithColOffsets(5, 6, 13, 19, 26, 12, 16, 20, 21),
		matrixio.WithScanMode(matrixio.Polled),
		matrixio.WithDebounceKind(matrixio.DebounceDefault),
	)

	return supervisor.New(
		supervisor.WithName("keyboard-right"),
		supervisor.WithMatrixsrv(
			matrixsrv.WithMatrixConfig(matrixConfig),
		),
		supervisor.WithoutHidsrv(),
		supervisor.WithoutKeyboardsrv(),
		supervisor.WithoutVialsrv(),
		supervisor.WithoutStoragesrv(),
		supervisor.WithoutLightsrv(),
		supervisor.WithSplitsrv(
			splitsrv.WithRole(role),
			splitsrv.WithUART(cfg.UART, splitsrv.DefaultBaudRate),
			splitsrv.WithCoordOffset(0, 9),
			splitsrv.WithHeartbeatInterval(splitsrv.DefaultHeartbeatInterval),
			splitsrv.WithStaleAfter(splitsrv.DefaultStaleAfter),
		),
	).Run(ctx, nil)
}
