// SPDX-License-Identifier: BSD-3-Clause

// Package matrixsrv supervises a pkg/matrixio.Matrix, scanning it in a
// loop and publishing each debounced action.KeyEvent onto the ipcbus for
// keyboardsrv to consume. After a scan that yields no event it sleeps the
// configured poll interval; this is the same in Polled and AsyncWait mode,
// and no edge-triggered wait on the inputs takes place.
package matrixsrv
