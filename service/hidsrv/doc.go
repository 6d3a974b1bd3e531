// SPDX-License-Identifier: BSD-3-Clause

// Package hidsrv is the boundary between the ipcbus and the kernel's USB
// HID gadget. It writes every report keyboardsrv publishes to the
// appropriate /dev/hidgN device and polls the keyboard function's LED
// output report, republishing it onto the ipcbus whenever the host
// changes Num/Caps/Scroll Lock state.
package hidsrv
