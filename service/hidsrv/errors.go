// SPDX-License-Identifier: BSD-3-Clause

package hidsrv

import "errors"

var (
	// ErrGadgetSetupFailed indicates the configured USB gadget could not be created or bound.
	ErrGadgetSetupFailed = errors.New("hidsrv: failed to set up usb gadget")
	// ErrNATSConnectFailed indicates the ipcbus connection could not be established.
	ErrNATSConnectFailed = errors.New("hidsrv: failed to connect to ipc bus")
	// ErrSubscribeFailed indicates the outgoing-report subscription could not be established.
	ErrSubscribeFailed = errors.New("hidsrv: failed to subscribe to hid reports")
	// ErrVialRequestFailed indicates vialsrv did not reply to a forwarded request in time.
	ErrVialRequestFailed = errors.New("hidsrv: vial request forwarding failed")
)
