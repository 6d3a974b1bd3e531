// SPDX-License-Identifier: BSD-3-Clause

//go:build linux
// +build linux

// Package storagesrv owns the wear-leveled flash log of spec §4.5, replays
// it into a shared KeyMap at startup, and serializes every subsequent
// mutation from the ipcbus behind a single goroutine so concurrent writers
// (vialsrv today, pkg/macro updates later) never race a flashsim.Log.
package storagesrv
