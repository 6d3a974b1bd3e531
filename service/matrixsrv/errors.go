// SPDX-License-Identifier: BSD-3-Clause

package matrixsrv

import "errors"

var (
	// ErrNoMatrixConfig indicates no matrix configuration was supplied.
	ErrNoMatrixConfig = errors.New("matrixsrv: no matrix configuration supplied")
	// ErrMatrixOpenFailed indicates the underlying Matrix could not be opened.
	ErrMatrixOpenFailed = errors.New("matrixsrv: failed to open matrix")
	// ErrNATSConnectFailed indicates the ipcbus connection could not be established.
	ErrNATSConnectFailed = errors.New("matrixsrv: failed to connect to ipc bus")
	// ErrPublishFailed indicates a KeyEvent could not be published.
	ErrPublishFailed = errors.New("matrixsrv: failed to publish key event")
)
