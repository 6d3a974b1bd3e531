// SPDX-License-Identifier: BSD-3-Clause

package lightsrv

import "errors"

var (
	// ErrLineRequestFailed indicates a configured GPIO line could not be requested.
	ErrLineRequestFailed = errors.New("lightsrv: failed to request gpio line")
	// ErrNATSConnectFailed indicates the ipcbus connection could not be established.
	ErrNATSConnectFailed = errors.New("lightsrv: failed to connect to ipc bus")
	// ErrSubscribeFailed indicates the indicator subscription could not be established.
	ErrSubscribeFailed = errors.New("lightsrv: failed to subscribe to led indicator")
)
