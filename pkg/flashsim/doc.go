// SPDX-License-Identifier: BSD-3-Clause

//go:build linux
// +build linux

// Package flashsim emulates the wear-leveled append-only flash log of
// spec §4.5 over ordinary files, one per sector, under a configured
// directory. Each sector is flock'd exclusively while open. A snapshot is
// written straight into the next sector file; only the manifest.log
// rotation hint goes through the atomic-rename helper
// pkg/file.AtomicUpdateFile.
package flashsim
