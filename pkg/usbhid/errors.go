// SPDX-License-Identifier: BSD-3-Clause

//go:build linux
// +build linux

package usbhid

import "errors"

var (
	// ErrConfigFSNotMounted indicates configfs is not mounted at /sys/kernel/config.
	ErrConfigFSNotMounted = errors.New("usbhid: configfs not mounted")
	// ErrGadgetExists indicates a gadget with the given name already exists.
	ErrGadgetExists = errors.New("usbhid: gadget already exists")
	// ErrGadgetNotFound indicates the named gadget does not exist.
	ErrGadgetNotFound = errors.New("usbhid: gadget not found")
	// ErrPermissionDenied indicates insufficient permissions for a gadget operation.
	ErrPermissionDenied = errors.New("usbhid: permission denied")
	// ErrInvalidConfig indicates an invalid GadgetConfig.
	ErrInvalidConfig = errors.New("usbhid: invalid gadget configuration")
	// ErrHIDDeviceNotFound indicates the /dev/hidgN device does not exist.
	ErrHIDDeviceNotFound = errors.New("usbhid: hid device not found")
	// ErrHIDOperationFailed indicates a read or write against a hidg device failed.
	ErrHIDOperationFailed = errors.New("usbhid: hid operation failed")
	// ErrUDCNotFound indicates no available USB Device Controller was found.
	ErrUDCNotFound = errors.New("usbhid: no UDC available")
	// ErrGadgetNotBound indicates the gadget is not currently bound to a UDC.
	ErrGadgetNotBound = errors.New("usbhid: gadget not bound")
	// ErrOperationTimeout indicates a read or write deadline elapsed.
	ErrOperationTimeout = errors.New("usbhid: operation timed out")
)
