// SPDX-License-Identifier: BSD-3-Clause

// Command keyboard is a flag-driven entrypoint for any of this repo's
// board layouts, for bring-up and bench testing without reflashing a
// board-specific binary.
package main

import (
	"context"

	"github.com/alecthomas/kong"

	"github.com/vialcore/vialcore/internal/board"
	"github.com/vialcore/vialcore/pkg/klog"
	"github.com/vialcore/vialcore/service/splitsrv"
)

type cli struct {
	Board      string `help:"Board layout to run." enum:"standard,split-left,split-right" default:"standard"`
	StorageDir string `help:"Directory for the persistent keyboard ID and keymap log." placeholder:"PATH"`
	UART       string `help:"Split-link serial device (split-left/split-right only)." placeholder:"DEV"`
	SplitRole  string `help:"Override the board's split role." enum:",central,peripheral" default:""`
}

func (c *cli) Run() error {
	cfg := board.Config{
		StorageDir: c.StorageDir,
		UART:       c.UART,
	}
	switch c.SplitRole {
	case "central":
		cfg.OverrideRole = true
		cfg.SplitRole = splitsrv.RoleCentral
	case "peripheral":
		cfg.OverrideRole = true
		cfg.SplitRole = splitsrv.RolePeripheral
	}

	klog.SetGlobalLogger(klog.NewDefaultLogger())
	return board.Run(context.Background(), board.Name(c.Board), cfg)
}

func main() {
	var c cli
	ctx := kong.Parse(&c,
		kong.Name("keyboard"),
		kong.Description("Run a vialcore keyboard board from the command line."),
		kong.UsageOnError(),
	)
	ctx.FatalIfErrorf(ctx.Run())
}
