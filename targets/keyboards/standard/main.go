// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"context"

	"github.com/vialcore/vialcore/internal/board"
	"github.com/vialcore/vialcore/pkg/klog"
)

func main() {
	klog.SetGlobalLogger(klog.NewDefaultLogger())
	if err := board.Run(context.Background(), board.Standard, board.Config{}); err != nil {
		panic(err)
	}
}
