// SPDX-License-Identifier: BSD-3-Clause

// Package debounce implements the two matrix cell debounce strategies of
// spec §4.1: a fixed-window DefaultDebouncer and an asymmetric
// RapidDebouncer that commits presses after a shorter time window than
// releases. RapidDebouncer measures elapsed time; it does not count scans.
// Both share the Debouncer contract so
// service/matrixsrv can select one per build configuration without caring
// which.
package debounce
