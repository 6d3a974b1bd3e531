// SPDX-License-Identifier: BSD-3-Clause

//go:build linux
// +build linux

// Package lightsrv drives GPIO-attached indicator LEDs (Num Lock, Caps Lock,
// Scroll Lock, and friends) from the host's HID LED output report. It
// subscribes to busapi.SubjectLEDIndicator, decodes the report byte with
// pkg/hidreport, and sets each configured GPIO line to match.
package lightsrv
