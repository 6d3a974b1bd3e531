// SPDX-License-Identifier: BSD-3-Clause

// Peripheral half of a split keyboard: scans its own matrix and forwards
// raw key events to the Central half over a UART link. Central owns
// keymap resolution, USB HID, Vial, storage and the LED indicators, so
// this half runs nothing but the matrix scanner and the split link. See
// internal/board for the service wiring.
package main

import (
	"context"

	"github.com/vialcore/vialcore/internal/board"
	"github.com/vialcore/vialcore/pkg/klog"
)

func main() {
	klog.SetGlobalLogger(klog.NewDefaultLogger())
	if err := board.Run(context.Background(), board.SplitRight, board.Config{}); err != nil {
		panic(err)
	}
}
