// SPDX-License-Identifier: BSD-3-Clause

package splitproto

import "errors"

var (
	// ErrBadMagic indicates a frame's magic byte did not match, meaning
	// the transport lost byte alignment.
	ErrBadMagic = errors.New("splitproto: bad magic byte")
	// ErrCRCMismatch indicates a frame's trailing CRC8 did not match its
	// header and payload.
	ErrCRCMismatch = errors.New("splitproto: crc8 mismatch")
	// ErrPayloadTooLarge indicates a message's payload exceeds MaxPayload.
	ErrPayloadTooLarge = errors.New("splitproto: payload exceeds maximum frame size")
	// ErrUnknownKind indicates a frame's kind byte does not name a known
	// MessageKind.
	ErrUnknownKind = errors.New("splitproto: unknown message kind")
	// ErrShortRead indicates a transport returned fewer bytes than a
	// frame's declared length, meaning the link dropped bytes mid-frame.
	ErrShortRead = errors.New("splitproto: short frame read")
)
