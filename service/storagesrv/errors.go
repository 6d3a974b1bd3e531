// SPDX-License-Identifier: BSD-3-Clause

//go:build linux
// +build linux

package storagesrv

import "errors"

var (
	// ErrNoKeyMap indicates storagesrv was started without a KeyMap to
	// replay keymap cell records into.
	ErrNoKeyMap = errors.New("storagesrv: no keymap configured")
	// ErrLogOpenFailed indicates the flashsim log could not be opened.
	ErrLogOpenFailed = errors.New("storagesrv: failed to open flash log")
	// ErrReplayFailed indicates Load could not replay the flash log at startup.
	ErrReplayFailed = errors.New("storagesrv: failed to replay flash log")
	// ErrNATSConnectFailed indicates the ipcbus connection could not be established.
	ErrNATSConnectFailed = errors.New("storagesrv: failed to connect to ipc bus")
	// ErrSubscribeFailed indicates a required subscription could not be established.
	ErrSubscribeFailed = errors.New("storagesrv: failed to subscribe")
)
