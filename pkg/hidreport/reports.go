// SPDX-License-Identifier: BSD-3-Clause

package hidreport

import "fmt"

// MaxKeys is the HID boot keyboard rollover cap: at most six distinct
// non-modifier keycodes may be reported at once (spec §3 Rollover cap).
const MaxKeys = 6

// Keyboard is the standard 8-byte HID boot keyboard report.
type Keyboard struct {
	Modifiers byte
	Reserved  byte
	Keys      [MaxKeys]byte
}

// MarshalBinary encodes the report to its 8-byte wire form.
func (k Keyboard) MarshalBinary() ([]byte, error) {
	b := make([]byte, 8)
	b[0] = k.Modifiers
	b[1] = k.Reserved
	copy(b[2:8], k.Keys[:])
	return b, nil
}

// UnmarshalBinary decodes an 8-byte boot keyboard report.
func (k *Keyboard) UnmarshalBinary(b []byte) error {
	if len(b) != 8 {
		return fmt.Errorf("%w: keyboard report must be 8 bytes, got %d", ErrBadLength, len(b))
	}
	k.Modifiers = b[0]
	k.Reserved = b[1]
	copy(k.Keys[:], b[2:8])
	return nil
}

// Equal reports whether two keyboard reports are byte-identical; Keyboard
// emits a new report only when it differs from the last one sent (spec §4.4
// "Repeats are suppressed").
func (k Keyboard) Equal(o Keyboard) bool {
	return k == o
}

// HasKey reports whether code is already present among the non-modifier
// keys.
func (k Keyboard) HasKey(code byte) bool {
	for _, c := range k.Keys {
		if c == code {
			return true
		}
	}
	return false
}

// AddKey inserts code into the first empty slot. Returns false without
// mutating the report if all six slots are occupied and code isn't already
// present — spec §3: "additional presses are silently dropped (no phantom
// rollover)".
func (k *Keyboard) AddKey(code byte) bool {
	if k.HasKey(code) {
		return true
	}
	for i, c := range k.Keys {
		if c == 0 {
			k.Keys[i] = code
			return true
		}
	}
	return false
}

// RemoveKey clears code from the key array, if present.
func (k *Keyboard) RemoveKey(code byte) {
	for i, c := range k.Keys {
		if c == code {
			k.Keys[i] = 0
		}
	}
}

// Mouse is the report-ID 1 sub-report of the composite HID interface.
type Mouse struct {
	Buttons byte
	X       int8
	Y       int8
	Wheel   int8
	Pan     int8
}

// MarshalBinary encodes the mouse sub-report, report ID included.
func (m Mouse) MarshalBinary() ([]byte, error) {
	return []byte{0x01, m.Buttons, byte(m.X), byte(m.Y), byte(m.Wheel), byte(m.Pan)}, nil
}

// Consumer is the report-ID 2 sub-report carrying a single consumer usage.
type Consumer struct {
	UsageID uint16
}

// MarshalBinary encodes the consumer sub-report, report ID included.
func (c Consumer) MarshalBinary() ([]byte, error) {
	return []byte{0x02, byte(c.UsageID), byte(c.UsageID >> 8)}, nil
}

// System is the report-ID 3 sub-report carrying a single system usage.
type System struct {
	UsageID uint8
}

// MarshalBinary encodes the system sub-report, report ID included.
func (s System) MarshalBinary() ([]byte, error) {
	return []byte{0x03, s.UsageID}, nil
}

// LEDIndicator decodes the host's 1-byte LED indicator output report.
type LEDIndicator struct {
	NumLock    bool
	CapsLock   bool
	ScrollLock bool
	Compose    bool
	Kana       bool
}

// DecodeLEDIndicator unpacks the indicator bitmask of spec §6.
func DecodeLEDIndicator(b byte) LEDIndicator {
	return LEDIndicator{
		NumLock:    b&(1<<0) != 0,
		CapsLock:   b&(1<<1) != 0,
		ScrollLock: b&(1<<2) != 0,
		Compose:    b&(1<<3) != 0,
		Kana:       b&(1<<4) != 0,
	}
}

// VialFrameSize is the fixed length of every Vial raw HID request/response.
const VialFrameSize = 32

// VialFrame is a single 32-byte Vial raw HID message: byte 0 is the command
// ID, bytes 1..31 are the command payload, zero-padded.
type VialFrame [VialFrameSize]byte

// Command returns the frame's command ID (byte 0).
func (f VialFrame) Command() byte { return f[0] }

// Payload returns the frame's payload bytes (bytes 1..31).
func (f VialFrame) Payload() []byte { return f[1:] }

// NewVialFrame builds a zero-padded 32-byte frame from a command ID and a
// payload no longer than 31 bytes.
func NewVialFrame(cmd byte, payload []byte) (VialFrame, error) {
	var f VialFrame
	if len(payload) > VialFrameSize-1 {
		return f, fmt.Errorf("%w: vial payload of %d bytes exceeds %d", ErrBadLength, len(payload), VialFrameSize-1)
	}
	f[0] = cmd
	copy(f[1:], payload)
	return f, nil
}
