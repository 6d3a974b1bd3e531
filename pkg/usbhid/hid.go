// SPDX-License-Identifier: BSD-3-Clause

//go:build linux
// +build linux

package usbhid

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// writeDeadline bounds how long a hidg write may block before the caller
// gives up, matching the scan-tick latency budget the rest of the
// firmware holds to.
const writeDeadline = 10 * time.Millisecond

// readDeadline bounds a poll of the keyboard function's LED output report.
const readDeadline = 100 * time.Millisecond

// keyboardReportDescriptor is the standard USB HID boot keyboard report
// descriptor: an 8-byte input report (modifier byte, reserved byte, six
// keycodes) and a 1-byte LED output report, byte-for-byte compatible with
// pkg/hidreport.Keyboard's wire format.
var keyboardReportDescriptor = []byte{
	0x05, 0x01, // Usage Page (Generic Desktop)
	0x09, 0x06, // Usage (Keyboard)
	0xa1, 0x01, // Collection (Application)
	0x05, 0x07, //   Usage Page (Keyboard)
	0x19, 0xe0, //   Usage Minimum (LeftControl)
	0x29, 0xe7, //   Usage Maximum (Right GUI)
	0x15, 0x00, //   Logical Minimum (0)
	0x25, 0x01, //   Logical Maximum (1)
	0x75, 0x01, //   Report Size (1)
	0x95, 0x08, //   Report Count (8)
	0x81, 0x02, //   Input (Data,Var,Abs)
	0x95, 0x01, //   Report Count (1)
	0x75, 0x08, //   Report Size (8)
	0x81, 0x03, //   Input (Cnst,Var,Abs)
	0x95, 0x05, //   Report Count (5)
	0x75, 0x01, //   Report Size (1)
	0x05, 0x08, //   Usage Page (LEDs)
	0x19, 0x01, //   Usage Minimum (Num Lock)
	0x29, 0x05, //   Usage Maximum (Kana)
	0x91, 0x02, //   Output (Data,Var,Abs)
	0x95, 0x01, //   Report Count (1)
	0x75, 0x03, //   Report Size (3)
	0x91, 0x03, //   Output (Cnst,Var,Abs)
	0x95, 0x06, //   Report Count (6)
	0x75, 0x08, //   Report Size (8)
	0x15, 0x00, //   Logical Minimum (0)
	0x25, 0x65, //   Logical Maximum (101)
	0x05, 0x07, //   Usage Page (Keyboard)
	0x19, 0x00, //   Usage Minimum (Reserved)
	0x29, 0x65, //   Usage Maximum (Keyboard Application)
	0x81, 0x00, //   Input (Data,Ary,Abs)
	0xc0, // End Collection
}

// extraReportDescriptor is a composite descriptor carrying the three
// non-keyboard sub-reports of pkg/hidreport, distinguished by report ID:
// ID 1 is a relative mouse (buttons, X, Y, wheel, pan), ID 2 a 16-bit
// consumer-page usage, ID 3 an 8-bit system-page usage.
var extraReportDescriptor = []byte{
	0x05, 0x01, // Usage Page (Generic Desktop)
	0x09, 0x02, // Usage (Mouse)
	0xa1, 0x01, //   Collection (Application)
	0x85, 0x01, //     Report ID (1)
	0x09, 0x01, //     Usage (Pointer)
	0xa1, 0x00, //     Collection (Physical)
	0x05, 0x09, //       Usage Page (Button)
	0x19, 0x01, //       Usage Minimum (1)
	0x29, 0x03, //       Usage Maximum (3)
	0x15, 0x00, //       Logical Minimum (0)
	0x25, 0x01, //       Logical Maximum (1)
	0x95, 0x03, //       Report Count (3)
	0x75, 0x01, //       Report Size (1)
	0x81, 0x02, //       Input (Data,Var,Abs)
	0x95, 0x01, //       Report Count (1)
	0x75, 0x05, //       Report Size (5)
	0x81, 0x03, //       Input (Cnst,Var,Abs)
	0x05, 0x01, //       Usage Page (Generic Desktop)
	0x09, 0x30, //       Usage (X)
	0x09, 0x31, //       Usage (Y)
	0x09, 0x38, //       Usage (Wheel)
	0x15, 0x81, //       Logical Minimum (-127)
	0x25, 0x7f, //       Logical Maximum (127)
	0x75, 0x08, //       Report Size (8)
	0x95, 0x03, //       Report Count (3)
	0x81, 0x06, //       Input (Data,Var,Rel)
	0x05, 0x0c, //       Usage Page (Consumer)
	0x0a, 0x38, 0x02, //  Usage (AC Pan)
	0x75, 0x08, //       Report Size (8)
	0x95, 0x01, //       Report Count (1)
	0x81, 0x06, //       Input (Data,Var,Rel)
	0xc0, //           End Collection
	0xc0, //         End Collection
	0x05, 0x0c, // Usage Page (Consumer)
	0x09, 0x01, // Usage (Consumer Control)
	0xa1, 0x01, //   Collection (Application)
	0x85, 0x02, //     Report ID (2)
	0x19, 0x00, //     Usage Minimum (0)
	0x2a, 0xff, 0x03, //  Usage Maximum (0x3ff)
	0x15, 0x00, //     Logical Minimum (0)
	0x26, 0xff, 0x03, //  Logical Maximum (0x3ff)
	0x75, 0x10, //     Report Size (16)
	0x95, 0x01, //     Report Count (1)
	0x81, 0x00, //     Input (Data,Ary,Abs)
	0xc0, //         End Collection
	0x05, 0x01, // Usage Page (Generic Desktop)
	0x09, 0x80, // Usage (System Control)
	0xa1, 0x01, //   Collection (Application)
	0x85, 0x03, //     Report ID (3)
	0x19, 0x81, //     Usage Minimum (System Power Down)
	0x29, 0x83, //     Usage Maximum (System Wake Up)
	0x15, 0x00, //     Logical Minimum (0)
	0x25, 0x01, //     Logical Maximum (1)
	0x75, 0x01, //     Report Size (1)
	0x95, 0x03, //     Report Count (3)
	0x81, 0x02, //     Input (Data,Var,Abs)
	0x95, 0x05, //     Report Count (5)
	0x81, 0x03, //     Input (Cnst,Var,Abs)
	0xc0, //         End Collection
}

// vialReportDescriptor is a 32-byte-in/32-byte-out vendor-defined report on
// usage page 0xFF60, no report ID, matching pkg/hidreport.VialFrame exactly.
var vialReportDescriptor = []byte{
	0x06, 0x60, 0xff, // Usage Page (Vendor Defined 0xFF60)
	0x09, 0x61, //       Usage (0x61)
	0xa1, 0x01, //       Collection (Application)
	0x09, 0x62, //         Usage (0x62)
	0x15, 0x00, //         Logical Minimum (0)
	0x26, 0xff, 0x00, //    Logical Maximum (255)
	0x95, 0x20, //         Report Count (32)
	0x75, 0x08, //         Report Size (8)
	0x81, 0x02, //         Input (Data,Var,Abs)
	0x09, 0x63, //         Usage (0x63)
	0x95, 0x20, //         Report Count (32)
	0x75, 0x08, //         Report Size (8)
	0x91, 0x02, //         Output (Data,Var,Abs)
	0xc0, // End Collection
}

func createVialFunction(gadgetDir, configDir string) error {
	return createHIDFunction(gadgetDir, configDir, "hid.usb2", hidFunctionAttrs{
		protocol:      "0",
		subclass:      "0",
		reportLength:  "32",
		noOutEndpoint: "0",
	}, vialReportDescriptor)
}

func createKeyboardFunction(gadgetDir, configDir string) error {
	return createHIDFunction(gadgetDir, configDir, "hid.usb0", hidFunctionAttrs{
		protocol:      "1",
		subclass:      "1",
		reportLength:  "8",
		noOutEndpoint: "0",
	}, keyboardReportDescriptor)
}

func createExtraFunction(gadgetDir, configDir string) error {
	return createHIDFunction(gadgetDir, configDir, "hid.usb1", hidFunctionAttrs{
		protocol:      "0",
		subclass:      "0",
		reportLength:  "7",
		noOutEndpoint: "1",
	}, extraReportDescriptor)
}

type hidFunctionAttrs struct {
	protocol      string
	subclass      string
	reportLength  string
	noOutEndpoint string
}

func createHIDFunction(gadgetDir, configDir, fn string, attrs hidFunctionAttrs, reportDesc []byte) error {
	functionDir := filepath.Join(gadgetDir, "functions", fn)
	if err := os.MkdirAll(functionDir, 0755); err != nil {
		return wrapFSErr(err, "create "+fn+" function directory")
	}

	kv := map[string]string{
		"protocol":        attrs.protocol,
		"subclass":        attrs.subclass,
		"report_length":   attrs.reportLength,
		"no_out_endpoint": attrs.noOutEndpoint,
	}
	for attr, value := range kv {
		if err := writeFile(filepath.Join(functionDir, attr), value); err != nil {
			return fmt.Errorf("write %s %s: %w", fn, attr, err)
		}
	}

	if err := os.WriteFile(filepath.Join(functionDir, "report_desc"), reportDesc, 0644); err != nil {
		return fmt.Errorf("write %s report descriptor: %w", fn, err)
	}
	if err := os.Symlink(functionDir, filepath.Join(configDir, fn)); err != nil {
		return fmt.Errorf("link %s to configuration: %w", fn, err)
	}
	return nil
}

// WriteReport writes a pre-marshaled HID report to devicePath (e.g.
// /dev/hidg0). report must already be in the device's wire format,
// including any leading report-ID byte.
func WriteReport(devicePath string, report []byte) error {
	if _, err := os.Stat(devicePath); os.IsNotExist(err) {
		return ErrHIDDeviceNotFound
	}
	f, err := os.OpenFile(devicePath, os.O_WRONLY, 0)
	if err != nil {
		return wrapFSErr(err, "open "+devicePath)
	}
	defer f.Close()

	if err := f.SetWriteDeadline(time.Now().Add(writeDeadline)); err != nil {
		return fmt.Errorf("set write deadline: %w", err)
	}
	if _, err := f.Write(report); err != nil {
		if os.IsTimeout(err) {
			return ErrOperationTimeout
		}
		return ErrHIDOperationFailed
	}
	return nil
}

// ReadVialFrame reads one 32-byte Vial raw HID request from devicePath,
// blocking up to readDeadline. Callers should treat ErrOperationTimeout as
// "no request pending" and keep polling.
func ReadVialFrame(devicePath string) ([32]byte, error) {
	var frame [32]byte
	if _, err := os.Stat(devicePath); os.IsNotExist(err) {
		return frame, ErrHIDDeviceNotFound
	}
	f, err := os.OpenFile(devicePath, os.O_RDONLY, 0)
	if err != nil {
		return frame, wrapFSErr(err, "open "+devicePath)
	}
	defer f.Close()

	if err := f.SetReadDeadline(time.Now().Add(readDeadline)); err != nil {
		return frame, fmt.Errorf("set read deadline: %w", err)
	}
	if _, err := f.Read(frame[:]); err != nil {
		if os.IsTimeout(err) {
			return frame, ErrOperationTimeout
		}
		return frame, ErrHIDOperationFailed
	}
	return frame, nil
}

// ReadOutputReport reads the single-byte LED indicator output report from
// the keyboard function's device, blocking up to readDeadline.
func ReadOutputReport(devicePath string) (byte, error) {
	if _, err := os.Stat(devicePath); os.IsNotExist(err) {
		return 0, ErrHIDDeviceNotFound
	}
	f, err := os.OpenFile(devicePath, os.O_RDONLY, 0)
	if err != nil {
		return 0, wrapFSErr(err, "open "+devicePath)
	}
	defer f.Close()

	if err := f.SetReadDeadline(time.Now().Add(readDeadline)); err != nil {
		return 0, fmt.Errorf("set read deadline: %w", err)
	}
	buf := make([]byte, 1)
	if _, err := f.Read(buf); err != nil {
		if os.IsTimeout(err) {
			return 0, ErrOperationTimeout
		}
		return 0, ErrHIDOperationFailed
	}
	return buf[0], nil
}
