// SPDX-License-Identifier: BSD-3-Clause

package vialsrv

import "errors"

var (
	// ErrNoKeyMap indicates vialsrv was started without a KeyMap to dispatch against.
	ErrNoKeyMap = errors.New("vialsrv: no keymap configured")
	// ErrNATSConnectFailed indicates the ipcbus connection could not be established.
	ErrNATSConnectFailed = errors.New("vialsrv: failed to connect to ipc bus")
	// ErrSubscribeFailed indicates a required subscription could not be established.
	ErrSubscribeFailed = errors.New("vialsrv: failed to subscribe")
	// ErrStorageTimeout indicates storagesrv did not confirm a mutation was
	// durably appended within the configured storage timeout.
	ErrStorageTimeout = errors.New("vialsrv: timed out waiting for storage to confirm append")
)
