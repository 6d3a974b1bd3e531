// SPDX-License-Identifier: BSD-3-Clause

// Package busapi defines the NATS subjects and message shapes services
// exchange over service/ipcbus. Payloads are JSON: the teacher's
// protobuf/connect-RPC surface has no counterpart here (Vial's own wire
// protocol is raw HID, not RPC — see DESIGN.md), so plain JSON-marshaled
// structs are the simplest idiomatic substitute for cross-service
// notifications that never leave the process.
package busapi
