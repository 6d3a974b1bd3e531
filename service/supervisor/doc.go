// SPDX-License-Identifier: BSD-3-Clause

// Package supervisor is the orchestrator that wires every keyboard service
// together under a single oversight.Tree and runs it to completion. It owns
// the shared ipcbus connection and the shared keymap.KeyMap instance that
// keyboardsrv, vialsrv, and storagesrv all operate on, and restarts any
// service that returns an error rather than letting the whole firmware die
// with it.
package supervisor
