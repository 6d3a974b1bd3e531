// SPDX-License-Identifier: BSD-3-Clause

//go:build linux
// +build linux

package usbhid

// GadgetConfig describes the USB HID gadget this firmware presents to the
// host: a boot-protocol keyboard interface, plus an optional composite
// interface carrying the mouse/consumer/system sub-reports of pkg/hidreport.
type GadgetConfig struct {
	// Name is the gadget's unique configfs directory name.
	Name string
	// VendorID and ProductID are the USB vid/pid, formatted like "0x1d6b".
	VendorID  string
	ProductID string
	// SerialNumber, Manufacturer, and Product are the USB string descriptors.
	SerialNumber string
	Manufacturer string
	Product      string
	// MaxPower is the configuration's max power draw in 2mA units.
	MaxPower int
	// EnableExtra adds the composite mouse/consumer/system interface on a
	// second /dev/hidgN device. A keyboard-only board may leave this false.
	EnableExtra bool
	// EnableVial adds the Vial raw HID interface (vendor usage page
	// 0xFF60, 32-byte in/out, no report ID) on a third /dev/hidgN device.
	EnableVial bool
}

// DefaultMaxPower is used when GadgetConfig.MaxPower is unset.
const DefaultMaxPower = 250

// GadgetStatus reports a gadget's current bind state.
type GadgetStatus struct {
	Name  string
	Bound bool
	UDC   string
	State string
}
