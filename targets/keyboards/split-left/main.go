// SPDX-License-Identifier: BSD-3-Clause

// Central half of a split keyboard: the USB-attached half. It owns the
// shared KeyMap, USB HID gadget, Vial protocol, flash storage and LED
// indicators, and merges in the Peripheral half's matrix events over a
// UART link, offset-adjusted into this keyboard's combined coordinate
// space. See internal/board for the service wiring.
package main

import (
	"context"

	"github.com/vialcore/vialcore/internal/board"
	"github.com/vialcore/vialcore/pkg/klog"
)

func main() {
	klog.SetGlobalLogger(klog.NewDefaultLogger())
	if err := board.Run(context.Background(), board.SplitLeft, board.Config{}); err != nil {
		panic(err)
	}
}
