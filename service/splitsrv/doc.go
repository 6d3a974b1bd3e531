// SPDX-License-Identifier: BSD-3-Clause

// Package splitsrv relays key events, LED state, and connection-liveness
// heartbeats across a split keyboard's two halves over a pkg/splitproto
// Transport, in either the Central (USB-attached) or Peripheral role.
package splitsrv
