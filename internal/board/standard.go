// SPDX-License-Identifier: BSD-3-Clause

package board

import (
	"context"
	"runtime/debug"
	"time"

	"github.com/vialcore/vialcore/pkg/kbid"
	"github.com/vialcore/vialcore/pkg/keymap"
	"github.com/vialcore/vialcore/pkg/matrixio"
	"github.com/vialcore/vialcore/pkg/usbhid"
	"github.com/vialcore/vialcore/pkg/tapstate"
	"github.com/vialcore/vialcore/service/hidsrv"
	"github.com/vialcore/vialcore/service/keyboardsrv"
	"github.com/vialcore/vialcore/service/lightsrv"
	"github.com/vialcore/vialcore/service/matrixsrv"
	"github.com/vialcore/vialcore/service/storagesrv"
	"github.com/vialcore/vialcore/service/supervisor"
	"github.com/vialcore/vialcore/service/vialsrv"
)

// runStandard is the unsplit keyboard: every service runs on one SBC.
func runStandard(ctx context.Context, cfg Config) error {
	debug.SetMemoryLimit(64 * 1024 * 1024)

	persistentUUID, err := kbid.GetOrCreatePersistentID("keyboard-id", cfg.StorageDir)
	if err != nil {
		return err
	}
	keyboardID, err := kbid.DeriveKeyboardID(persistentUUID)
	if err != nil {
		return err
	}

	matrixConfig := matrixio.NewConfig(
		matrixio.WithChip("/dev/gpiochip0"),
		matrixio.WithRowOffsets(17, 18, 27, 22, 23),
		matrixio.WithColOffsets(5, 6, 13, 19, 26, 12, 16, 20, 21, 7, 8, 25, 24, 9, 11),
		matrixio.WithScanMode(matrixio.Polled),
		matrixio.WithDebounceKind(matrixio.DebounceDefault),
	)

	gadgetConfig := &usbhid.GadgetConfig{
		Name:         "vialcore",
		VendorID:     "0x1d6b",
		ProductID:    "0x0104",
		Manufacturer: "vialcore",
		Product:      "vialcore keyboard",
		MaxPower:     usbhid.DefaultMaxPower,
		EnableExtra:  true,
		EnableVial:   true,
	}

	return supervisor.New(
		supervisor.WithName("keyboard"),
		supervisor.WithKeyMapDims(supervisor.DefaultLayers, supervisor.DefaultRows, supervisor.DefaultCols),
		supervisor.WithMatrixsrv(
			matrixsrv.WithMatrixConfig(matrixConfig),
			matrixsrv.WithPollInterval(matrixsrv.DefaultPollInterval),
		),
		supervisor.WithKeyboardsrv(
			keyboardsrv.WithTapConfig(tapstate.NewConfig()),
			keyboardsrv.WithOneShotTimeout(keymap.DefaultOneShotTimeout),
		),
		supervisor.WithHidsrv(
			hidsrv.WithGadgetConfig(gadgetConfig),
			hidsrv.WithLEDPollInterval(hidsrv.DefaultLEDPollInterval),
			hidsrv.WithVialTimeout(2*time.Second),
		),
		supervisor.WithLightsrv(
			lightsrv.WithLED(lightsrv.IndicatorCapsLock, "/dev/gpiochip0", "4", false),
			lightsrv.WithLED(lightsrv.IndicatorNumLock, "/dev/gpiochip0", "14", false),
		),
		supervisor.WithVialsrv(
			vialsrv.WithKeyboardID(keyboardID),
		),
		supervisor.WithStoragesrv(
			storagesrv.WithDir(cfg.StorageDir),
		),
	).Run(ctx, nil)
}
