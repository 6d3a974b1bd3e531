// SPDX-License-Identifier: BSD-3-Clause

package debounce

import "time"

// Kind selects which Debouncer implementation a Bank instantiates per cell.
type Kind uint8

const (
	KindDefault Kind = iota
	KindRapid
)

// Bank owns one Debouncer per matrix cell, so service/matrixsrv can debounce
// a whole electrical matrix through a single object instead of wiring rows*cols
// individual instances by hand.
type Bank struct {
	cells [][]Debouncer
}

// NewBank allocates a rows*cols grid of debouncers of the given kind, using
// default timing windows.
func NewBank(kind Kind, rows, cols int) *Bank {
	cells := make([][]Debouncer, rows)
	for r := range cells {
		cells[r] = make([]Debouncer, cols)
		for c := range cells[r] {
			switch kind {
			case KindRapid:
				cells[r][c] = NewRapidDebouncer(0, 0)
			default:
				cells[r][c] = NewDefaultDebouncer(0)
			}
		}
	}
	return &Bank{cells: cells}
}

// Sample feeds one raw reading through the cell's debouncer, returning the
// filtered level and whether it just changed.
func (b *Bank) Sample(row, col int, raw bool, now time.Time) (pressed, changed bool) {
	return b.cells[row][col].Debounce(raw, now)
}
