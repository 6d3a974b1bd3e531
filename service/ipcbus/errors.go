// SPDX-License-Identifier: BSD-3-Clause

package ipcbus

import "errors"

var (
	// ErrExistingConnProvided indicates Run was called with a non-nil
	// ipcConn; IPCBus provides the bus, it does not consume one.
	ErrExistingConnProvided = errors.New("ipcbus: existing IPC connection provided, ipcbus provides the bus itself")
	// ErrInvalidConfiguration indicates the service configuration is invalid.
	ErrInvalidConfiguration = errors.New("ipcbus: invalid configuration")
	// ErrServerCreationFailed indicates NATS server creation failed.
	ErrServerCreationFailed = errors.New("ipcbus: failed to create NATS server")
	// ErrServerTimeout indicates the server did not become ready in time.
	ErrServerTimeout = errors.New("ipcbus: server not ready within startup timeout")
	// ErrConnectionNotAvailable indicates GetConnProvider was called, or a
	// connection was requested, before the server started.
	ErrConnectionNotAvailable = errors.New("ipcbus: connection not available, server not started")
	// ErrServerNotReady indicates the server did not reach a ready state
	// before InProcessConn's timeout elapsed.
	ErrServerNotReady = errors.New("ipcbus: server not ready for connections")
	// ErrInProcessConnFailed indicates the underlying in-process dial failed.
	ErrInProcessConnFailed = errors.New("ipcbus: failed to create in-process connection")
)
