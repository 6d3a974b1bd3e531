// SPDX-License-Identifier: BSD-3-Clause

package busapi

// Subject names carried over the ipcbus. Each is published by exactly one
// service and may be subscribed by several.
const (
	// SubjectKeyEvent carries action.KeyEvent from matrixsrv (and, on a
	// split keyboard, splitsrv's Central role) to keyboardsrv.
	SubjectKeyEvent = "vialcore.keyevent"
	// SubjectHIDReport carries an outgoing boot keyboard report from
	// keyboardsrv to hidsrv.
	SubjectHIDReport = "vialcore.hidreport"
	// SubjectLEDIndicator carries the host's 1-byte LED indicator output
	// report from hidsrv to lightsrv.
	SubjectLEDIndicator = "vialcore.led.indicator"
	// SubjectStorageMutate carries a KeyMap mutation from keyboardsrv/
	// vialsrv to storagesrv, to be appended to the flash log.
	SubjectStorageMutate = "vialcore.storage.mutate"
	// SubjectStorageAppended is republished by storagesrv once a mutation
	// is durably appended, so vialsrv can block a Vial response until
	// the write is visible (spec.md §4.7).
	SubjectStorageAppended = "vialcore.storage.appended"
	// SubjectSplitConnState carries split-link connection-state changes
	// from splitsrv to any interested service (e.g. lightsrv, for a
	// connection-status indicator).
	SubjectSplitConnState = "vialcore.split.connstate"
	// SubjectVialRequest is a NATS request/reply subject: hidsrv publishes
	// a raw 32-byte hidreport.VialFrame read from the host as the request
	// payload, and vialsrv's reply payload is the 32-byte response frame
	// to write back.
	SubjectVialRequest = "vialcore.vial.request"
)
