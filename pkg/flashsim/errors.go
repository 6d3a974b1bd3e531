// SPDX-License-Identifier: BSD-3-Clause

//go:build linux
// +build linux

package flashsim

import "errors"

var (
	// ErrInvalidConfig indicates a malformed Config.
	ErrInvalidConfig = errors.New("flashsim: invalid configuration")
	// ErrSectorFull indicates a record does not fit in any sector, even
	// after rotation (it exceeds the sector size).
	ErrSectorFull = errors.New("flashsim: record too large for a sector")
	// ErrLogFull indicates every sector is full and compaction did not
	// free enough space.
	ErrLogFull = errors.New("flashsim: log has no free sectors")
	// ErrCRCMismatch indicates a record's stored CRC does not match its
	// payload; replay stops at the first such record per sector.
	ErrCRCMismatch = errors.New("flashsim: record failed crc check")
	// ErrBadMagic indicates a sector or record header's magic number is
	// wrong, meaning either uninitialized (erased) space or corruption.
	ErrBadMagic = errors.New("flashsim: bad magic number")
	// ErrSectorLocked indicates flock could not acquire exclusive access
	// to a sector file, meaning another process holds it.
	ErrSectorLocked = errors.New("flashsim: sector locked by another process")
)
