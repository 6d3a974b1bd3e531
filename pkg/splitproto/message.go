// SPDX-License-Identifier: BSD-3-Clause

package splitproto

import (
	"fmt"

	"github.com/vialcore/vialcore/pkg/action"
)

// SplitMessage is the decoded, typed form of a Frame. Only the fields
// relevant to Kind are meaningful, following the same flat-tagged-variant
// style as action.KeyAction.
type SplitMessage struct {
	Kind MessageKind

	Key       action.KeyEvent // KindKey
	Connected bool            // KindConnectionState
	LEDState  byte            // KindLedIndicator
}

// Key builds a KindKey message from a peripheral-local key event. Central
// applies the peripheral's coordinate offset before publishing it onward
// (spec §4.9's "compile-time constant added to peripheral-local (row,col)").
func Key(ev action.KeyEvent) SplitMessage {
	return SplitMessage{Kind: KindKey, Key: ev}
}

// ConnectionState builds a KindConnectionState heartbeat message.
func ConnectionState(connected bool) SplitMessage {
	return SplitMessage{Kind: KindConnectionState, Connected: connected}
}

// LedIndicator builds a KindLedIndicator message carrying the raw 1-byte
// HID LED indicator report.
func LedIndicator(state byte) SplitMessage {
	return SplitMessage{Kind: KindLedIndicator, LEDState: state}
}

// SyncRequest builds a KindSyncRequest message (no payload).
func SyncRequest() SplitMessage {
	return SplitMessage{Kind: KindSyncRequest}
}

// Encode packs m into a Frame's wire bytes.
func (m SplitMessage) Encode() ([]byte, error) {
	var payload []byte
	switch m.Kind {
	case KindKey:
		pressed := byte(0)
		if m.Key.Pressed {
			pressed = 1
		}
		payload = []byte{m.Key.Row, m.Key.Col, pressed}
	case KindConnectionState:
		connected := byte(0)
		if m.Connected {
			connected = 1
		}
		payload = []byte{connected}
	case KindLedIndicator:
		payload = []byte{m.LEDState}
	case KindSyncRequest:
		payload = nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownKind, m.Kind)
	}
	return Frame{Kind: m.Kind, Payload: payload}.Encode()
}

// DecodeMessage parses one SplitMessage from the front of buf, returning
// the number of bytes consumed.
func DecodeMessage(buf []byte) (SplitMessage, int, error) {
	f, n, err := DecodeFrame(buf)
	if err != nil {
		return SplitMessage{}, n, err
	}

	switch f.Kind {
	case KindKey:
		if len(f.Payload) < 3 {
			return SplitMessage{}, n, fmt.Errorf("%w: short key payload", ErrShortRead)
		}
		return SplitMessage{
			Kind: KindKey,
			Key: action.KeyEvent{
				Row:     f.Payload[0],
				Col:     f.Payload[1],
				Pressed: f.Payload[2] != 0,
			},
		}, n, nil
	case KindConnectionState:
		if len(f.Payload) < 1 {
			return SplitMessage{}, n, fmt.Errorf("%w: short connection-state payload", ErrShortRead)
		}
		return SplitMessage{Kind: KindConnectionState, Connected: f.Payload[0] != 0}, n, nil
	case KindLedIndicator:
		if len(f.Payload) < 1 {
			return SplitMessage{}, n, fmt.Errorf("%w: short led payload", ErrShortRead)
		}
		return SplitMessage{Kind: KindLedIndicator, LEDState: f.Payload[0]}, n, nil
	case KindSyncRequest:
		return SplitMessage{Kind: KindSyncRequest}, n, nil
	default:
		return SplitMessage{}, n, fmt.Errorf("%w: %d", ErrUnknownKind, f.Kind)
	}
}
