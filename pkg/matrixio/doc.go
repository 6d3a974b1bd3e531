// SPDX-License-Identifier: BSD-3-Clause

// Package matrixio drives the physical key matrix: asserting row or column
// outputs, sampling the complementary input set, and feeding samples
// through a debounce.Bank to produce action.KeyEvent values in logical
// row/col coordinates (spec §4.2). It wraps pkg/gpio line requests and
// supports both Polled and Async-wait scan modes, selected by Config.Mode
// (a ScanModeKind).
package matrixio
