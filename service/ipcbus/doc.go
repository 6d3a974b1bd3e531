// SPDX-License-Identifier: BSD-3-Clause

// Package ipcbus provides the embedded NATS server used as the cross-
// service bus between this keyboard's services: Storage<->KeyMap mutation
// events, LightService LED updates, and SplitLink connection-state
// broadcasts all travel as NATS subjects over an in-process connection,
// exactly as the teacher's own IPC service wires its BMC subsystems
// together, minus the network listener (this bus never leaves the
// process).
package ipcbus
