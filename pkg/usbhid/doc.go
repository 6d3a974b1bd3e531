// SPDX-License-Identifier: BSD-3-Clause

//go:build linux
// +build linux

// Package usbhid drives a Linux USB HID gadget through configfs: creating
// the gadget's boot-keyboard and composite mouse/consumer/system
// interfaces, binding it to a UDC, and reading/writing raw HID reports
// against the resulting /dev/hidgN character devices. Report bytes are
// opaque to this package — pkg/hidreport owns their shape; usbhid only
// moves bytes between the ipcbus and the kernel gadget driver.
package usbhid
