// SPDX-License-Identifier: BSD-3-Clause

package busapi

import (
	"encoding/json"

	"github.com/vialcore/vialcore/pkg/action"
)

// KeyEventMessage is the SubjectKeyEvent payload.
type KeyEventMessage struct {
	Event action.KeyEvent
}

// Marshal encodes m as the NATS message payload.
func (m KeyEventMessage) Marshal() ([]byte, error) { return json.Marshal(m) }

// UnmarshalKeyEvent decodes a SubjectKeyEvent payload.
func UnmarshalKeyEvent(data []byte) (KeyEventMessage, error) {
	var m KeyEventMessage
	err := json.Unmarshal(data, &m)
	return m, err
}

// HIDReportMessage is the SubjectHIDReport payload: a pre-marshaled boot
// keyboard report ready to write to the HID transport.
type HIDReportMessage struct {
	Report []byte
}

func (m HIDReportMessage) Marshal() ([]byte, error) { return json.Marshal(m) }

func UnmarshalHIDReport(data []byte) (HIDReportMessage, error) {
	var m HIDReportMessage
	err := json.Unmarshal(data, &m)
	return m, err
}

// LEDIndicatorMessage is the SubjectLEDIndicator payload: the raw 1-byte
// indicator report as received from the host.
type LEDIndicatorMessage struct {
	Byte byte
}

func (m LEDIndicatorMessage) Marshal() ([]byte, error) { return json.Marshal(m) }

func UnmarshalLEDIndicator(data []byte) (LEDIndicatorMessage, error) {
	var m LEDIndicatorMessage
	err := json.Unmarshal(data, &m)
	return m, err
}

// StorageMutateMessage is the SubjectStorageMutate payload: one flash log
// record to append, keyed by the mutation's logical coordinates.
type StorageMutateMessage struct {
	Kind    byte
	Payload []byte
}

func (m StorageMutateMessage) Marshal() ([]byte, error) { return json.Marshal(m) }

func UnmarshalStorageMutate(data []byte) (StorageMutateMessage, error) {
	var m StorageMutateMessage
	err := json.Unmarshal(data, &m)
	return m, err
}

// StorageAppendedMessage is the SubjectStorageAppended payload, published
// once a mutation is durably on disk.
type StorageAppendedMessage struct {
	Kind byte
}

func (m StorageAppendedMessage) Marshal() ([]byte, error) { return json.Marshal(m) }

func UnmarshalStorageAppended(data []byte) (StorageAppendedMessage, error) {
	var m StorageAppendedMessage
	err := json.Unmarshal(data, &m)
	return m, err
}

// SplitConnStateMessage is the SubjectSplitConnState payload.
type SplitConnStateMessage struct {
	Connected bool
}

func (m SplitConnStateMessage) Marshal() ([]byte, error) { return json.Marshal(m) }

func UnmarshalSplitConnState(data []byte) (SplitConnStateMessage, error) {
	var m SplitConnStateMessage
	err := json.Unmarshal(data, &m)
	return m, err
}
