// SPDX-License-Identifier: BSD-3-Clause

package vialproto

import "errors"

var (
	// ErrUnknownKind indicates a WireKeycode's Kind byte does not name a
	// known action.Kind.
	ErrUnknownKind = errors.New("vialproto: unknown keycode kind")
	// ErrBadChunkIndex indicates a GET_DEF chunk request past the end of
	// the keymap definition blob.
	ErrBadChunkIndex = errors.New("vialproto: chunk index out of range")
	// ErrUnlockNotInProgress indicates UNLOCK_POLL or LOCK was sent while
	// no unlock sequence was started.
	ErrUnlockNotInProgress = errors.New("vialproto: no unlock in progress")
	// ErrBadRecordSize indicates a storage record payload was not the
	// expected fixed size for its kind.
	ErrBadRecordSize = errors.New("vialproto: storage record has unexpected size")
)
