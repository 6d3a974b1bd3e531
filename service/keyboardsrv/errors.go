// SPDX-License-Identifier: BSD-3-Clause

package keyboardsrv

import "errors"

var (
	// ErrNoKeyMap indicates no keymap.KeyMap was supplied.
	ErrNoKeyMap = errors.New("keyboardsrv: no keymap supplied")
	// ErrNATSConnectFailed indicates the ipcbus connection could not be established.
	ErrNATSConnectFailed = errors.New("keyboardsrv: failed to connect to ipc bus")
	// ErrSubscribeFailed indicates the KeyEvent subscription could not be established.
	ErrSubscribeFailed = errors.New("keyboardsrv: failed to subscribe to key events")
	// ErrNewRunnerFailed indicates the macro runner could not be constructed.
	ErrNewRunnerFailed = errors.New("keyboardsrv: failed to construct macro runner")
)
