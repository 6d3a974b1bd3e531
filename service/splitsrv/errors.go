// SPDX-License-Identifier: BSD-3-Clause

package splitsrv

import "errors"

var (
	// ErrNoTransport indicates Run was called without a Transport, a UART
	// device, or a pair of NATS link subjects configured.
	ErrNoTransport = errors.New("splitsrv: no transport configured")
	// ErrUARTOpenFailed indicates the configured serial device could not
	// be opened.
	ErrUARTOpenFailed = errors.New("splitsrv: failed to open uart device")
	// ErrNATSConnectFailed indicates the ipcbus connection could not be established.
	ErrNATSConnectFailed = errors.New("splitsrv: failed to connect to ipc bus")
	// ErrSubscribeFailed indicates a required subscription could not be established.
	ErrSubscribeFailed = errors.New("splitsrv: failed to subscribe")
	// ErrUnknownRole indicates Role holds a value other than RoleCentral
	// or RolePeripheral.
	ErrUnknownRole = errors.New("splitsrv: unknown role")
)
