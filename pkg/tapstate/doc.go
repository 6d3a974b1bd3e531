// SPDX-License-Identifier: BSD-3-Clause

// Package tapstate implements the tap/hold disambiguation state machine
// shared by ModTap, LayerTap, and TapHold actions (spec §4.4). Each pending
// key owns one Machine, driven by a github.com/qmuntal/stateless state
// machine over four states, four exported triggers, and one internal
// trigger that starts the machine.
package tapstate
