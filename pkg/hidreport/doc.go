// SPDX-License-Identifier: BSD-3-Clause

// Package hidreport defines the wire shape of every HID report this
// firmware produces or consumes (spec §6): the 8-byte boot keyboard report,
// the report-IDed mouse/consumer/system composite report, the 1-byte LED
// indicator report, and the 32-byte Vial raw HID frame. Descriptor tables
// are kept byte-for-byte compatible with the USB HID boot keyboard class so
// a host's built-in boot-protocol driver can talk to a board with no
// Vial-aware driver installed.
package hidreport
