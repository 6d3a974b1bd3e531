// SPDX-License-Identifier: BSD-3-Clause

package hidreport

// KeyboardReportDescriptor is the standard USB HID boot keyboard report
// descriptor: 8 modifier bits, 1 reserved byte, 5 LED output bits, 6 key
// array slots. Boards in gadget mode hand this descriptor to the kernel's
// HID gadget function so the host's generic boot-keyboard driver works
// without any Vial-aware software on the host side.
var KeyboardReportDescriptor = []byte{
	0x05, 0x01, // USAGE_PAGE (Generic Desktop)
	0x09, 0x06, // USAGE (Keyboard)
	0xa1, 0x01, // COLLECTION (Application)
	0x05, 0x07, //   USAGE_PAGE (Keyboard)
	0x19, 0xe0, //   USAGE_MINIMUM (Keyboard LeftControl)
	0x29, 0xe7, //   USAGE_MAXIMUM (Keyboard Right GUI)
	0x15, 0x00, //   LOGICAL_MINIMUM (0)
	0x25, 0x01, //   LOGICAL_MAXIMUM (1)
	0x75, 0x01, //   REPORT_SIZE (1)
	0x95, 0x08, //   REPORT_COUNT (8)
	0x81, 0x02, //   INPUT (Data,Var,Abs)
	0x95, 0x01, //   REPORT_COUNT (1)
	0x75, 0x08, //   REPORT_SIZE (8)
	0x81, 0x03, //   INPUT (Cnst,Var,Abs)
	0x95, 0x05, //   REPORT_COUNT (5)
	0x75, 0x01, //   REPORT_SIZE (1)
	0x05, 0x08, //   USAGE_PAGE (LEDs)
	0x19, 0x01, //   USAGE_MINIMUM (Num Lock)
	0x29, 0x05, //   USAGE_MAXIMUM (Kana)
	0x91, 0x02, //   OUTPUT (Data,Var,Abs)
	0x95, 0x01, //   REPORT_COUNT (1)
	0x75, 0x03, //   REPORT_SIZE (3)
	0x91, 0x03, //   OUTPUT (Cnst,Var,Abs)
	0x95, 0x06, //   REPORT_COUNT (6)
	0x75, 0x08, //   REPORT_SIZE (8)
	0x15, 0x00, //   LOGICAL_MINIMUM (0)
	0x25, 0x65, //   LOGICAL_MAXIMUM (101)
	0x05, 0x07, //   USAGE_PAGE (Keyboard)
	0x19, 0x00, //   USAGE_MINIMUM (Reserved)
	0x29, 0x65, //   USAGE_MAXIMUM (Keyboard Application)
	0x81, 0x00, //   INPUT (Data,Ary,Abs)
	0xc0, // END_COLLECTION
}

// CompositeReportDescriptor multiplexes the mouse (report ID 1), consumer
// control (report ID 2), and system control (report ID 3) sub-reports of
// spec §6 onto a single HID interface.
var CompositeReportDescriptor = []byte{
	0x05, 0x01, //       Usage Page (Generic Desktop Ctrls)
	0x09, 0x02, //       Usage (Mouse)
	0xa1, 0x01, //       Collection (Application)
	0x85, 0x01, //           Report ID (1)
	0x09, 0x01, //           Usage (Pointer)
	0xa1, 0x00, //           Collection (Physical)
	0x05, 0x09, //               Usage Page (Button)
	0x19, 0x01, //               Usage Minimum (0x01)
	0x29, 0x03, //               Usage Maximum (0x03)
	0x15, 0x00, //               Logical Minimum (0)
	0x25, 0x01, //               Logical Maximum (1)
	0x75, 0x01, //               Report Size (1)
	0x95, 0x03, //               Report Count (3)
	0x81, 0x02, //               Input (Data,Var,Abs)
	0x95, 0x05, //               Report Count (5)
	0x75, 0x01, //               Report Size (1)
	0x81, 0x03, //               Input (Cnst,Var,Abs)
	0x05, 0x01, //               Usage Page (Generic Desktop Ctrls)
	0x09, 0x30, //               Usage (X)
	0x09, 0x31, //               Usage (Y)
	0x09, 0x38, //               Usage (Wheel)
	0x15, 0x81, //               Logical Minimum (-127)
	0x25, 0x7f, //               Logical Maximum (127)
	0x75, 0x08, //               Report Size (8)
	0x95, 0x03, //               Report Count (3)
	0x81, 0x06, //               Input (Data,Var,Rel)
	0x05, 0x0c, //               Usage Page (Consumer)
	0x0a, 0x38, 0x02, //         Usage (AC Pan)
	0x75, 0x08, //               Report Size (8)
	0x95, 0x01, //               Report Count (1)
	0x81, 0x06, //               Input (Data,Var,Rel)
	0xc0,       //           End Collection
	0xc0,       //       End Collection
	0x05, 0x0c, //       Usage Page (Consumer)
	0x09, 0x01, //       Usage (Consumer Control)
	0xa1, 0x01, //       Collection (Application)
	0x85, 0x02, //           Report ID (2)
	0x19, 0x00, //           Usage Minimum (Unassigned)
	0x2a, 0x3c, 0x02, //     Usage Maximum (0x023c)
	0x15, 0x00, //           Logical Minimum (0)
	0x26, 0x3c, 0x02, //     Logical Maximum (0x023c)
	0x75, 0x10, //           Report Size (16)
	0x95, 0x01, //           Report Count (1)
	0x81, 0x00, //           Input (Data,Ary,Abs)
	0xc0,       //       End Collection
	0x05, 0x01, //       Usage Page (Generic Desktop Ctrls)
	0x09, 0x80, //       Usage (System Control)
	0xa1, 0x01, //       Collection (Application)
	0x85, 0x03, //           Report ID (3)
	0x19, 0x81, //           Usage Minimum (System Power Down)
	0x29, 0x83, //           Usage Maximum (System Wake Up)
	0x15, 0x00, //           Logical Minimum (0)
	0x25, 0x02, //           Logical Maximum (2)
	0x75, 0x08, //           Report Size (8)
	0x95, 0x01, //           Report Count (1)
	0x81, 0x00, //           Input (Data,Ary,Abs)
	0xc0,       //       End Collection
}
