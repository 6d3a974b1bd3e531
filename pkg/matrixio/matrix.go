// SPDX-License-Identifier: BSD-3-Clause

//go:build linux
// +build linux

package matrixio

import (
	"context"
	"fmt"
	"time"

	"github.com/warthog618/go-gpiocdev"

	"github.com/vialcore/vialcore/pkg/action"
	"github.com/vialcore/vialcore/pkg/debounce"
	"github.com/vialcore/vialcore/pkg/gpio"
)

// Matrix drives the electrical matrix of Config and turns raw level
// changes into debounced, logically-oriented KeyEvents (spec §4.2).
type Matrix struct {
	cfg *Config

	outputs *gpiocdev.Lines // driven pin set
	inputs  *gpiocdev.Lines // sampled pin set

	numOutputs int
	numInputs  int

	bank *debounce.Bank

	// raw caches the last sampled level per (output, input) cell so a
	// scan pass can diff against it without re-reading twice.
	raw [][]bool

	pending []action.KeyEvent
}

// New requests the GPIO lines described by cfg and builds a Matrix ready to
// scan. The electrical output set is columns unless Col2Row is set, in
// which case it is rows.
func New(cfg *Config) (*Matrix, error) {
	if cfg == nil {
		cfg = NewConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	outOffsets, inOffsets := cfg.ColOffsets, cfg.RowOffsets
	if cfg.Col2Row {
		outOffsets, inOffsets = cfg.RowOffsets, cfg.ColOffsets
	}

	outputs, err := gpio.RequestLines(cfg.ChipPath, outOffsets,
		gpio.WithDirection(gpio.DirectionOutput), gpio.WithConsumer("vialcore-matrix-out"))
	if err != nil {
		return nil, fmt.Errorf("%w: outputs: %w", ErrLineRequest, err)
	}

	inputs, err := gpio.RequestLines(cfg.ChipPath, inOffsets,
		gpio.WithDirection(gpio.DirectionInput), gpio.WithBias(gpio.BiasPullUp),
		gpio.WithConsumer("vialcore-matrix-in"))
	if err != nil {
		_ = outputs.Close()
		return nil, fmt.Errorf("%w: inputs: %w", ErrLineRequest, err)
	}

	rows, cols := len(cfg.RowOffsets), len(cfg.ColOffsets)
	kind := debounce.KindDefault
	if cfg.DebounceKind == DebounceRapid {
		kind = debounce.KindRapid
	}

	raw := make([][]bool, len(outOffsets))
	for i := range raw {
		raw[i] = make([]bool, len(inOffsets))
	}

	return &Matrix{
		cfg:        cfg,
		outputs:    outputs,
		inputs:     inputs,
		numOutputs: len(outOffsets),
		numInputs:  len(inOffsets),
		bank:       debounce.NewBank(kind, rows, cols),
		raw:        raw,
	}, nil
}

// Close releases the underlying GPIO lines.
func (m *Matrix) Close() error {
	errOut := m.outputs.Close()
	errIn := m.inputs.Close()
	if errOut != nil {
		return errOut
	}
	return errIn
}

// logicalRowCol maps an (output index, input index) electrical cell pair to
// logical {row, col}, accounting for Col2Row orientation.
func (m *Matrix) logicalRowCol(outIdx, inIdx int) (row, col int) {
	return orientRowCol(m.cfg.Col2Row, outIdx, inIdx)
}

// orientRowCol maps an electrical (output, input) pair to logical
// {row, col}. When col2Row is set, the electrical output set is rows and
// the input set is columns; otherwise the output set is columns and the
// input set is rows. Published events are always {row, col} regardless.
func orientRowCol(col2Row bool, outIdx, inIdx int) (row, col int) {
	if col2Row {
		return outIdx, inIdx
	}
	return inIdx, outIdx
}

// Scan advances the matrix by one sweep (the same read pass in Polled and
// AsyncWait mode), debounces every sampled cell, and returns the next
// pending KeyEvent. ok is false when the sweep produced no new debounced events.
func (m *Matrix) Scan(ctx context.Context) (action.KeyEvent, bool, error) {
	if len(m.pending) == 0 {
		if err := m.sweep(ctx); err != nil {
			return action.KeyEvent{}, false, err
		}
	}
	if len(m.pending) == 0 {
		return action.KeyEvent{}, false, nil
	}
	ev := m.pending[0]
	m.pending = m.pending[1:]
	return ev, true, nil
}

func (m *Matrix) sweep(ctx context.Context) error {
	switch m.cfg.Mode {
	case AsyncWait:
		return m.sweepAsync(ctx)
	default:
		return m.sweepPolled(ctx)
	}
}

// sweepPolled asserts each output in turn (driving it low while the others
// stay high), waits ScanDelay for settle, and reads all inputs, per spec
// §4.2 Polled mode. Inputs are pulled up, so an input read low is a pressed
// key on the asserted output.
func (m *Matrix) sweepPolled(ctx context.Context) error {
	now := time.Now()
	values := make([]int, m.numInputs)

	for o := 0; o < m.numOutputs; o++ {
		assertValues := make([]int, m.numOutputs)
		for i := range assertValues {
			assertValues[i] = 1
		}
		assertValues[o] = 0
		if err := m.outputs.SetValues(assertValues); err != nil {
			return fmt.Errorf("%w: assert output %d: %w", ErrScanFailed, o, err)
		}

		select {
		case <-time.After(m.cfg.ScanDelay):
		case <-ctx.Done():
			return ctx.Err()
		}

		if err := m.inputs.Values(values); err != nil {
			return fmt.Errorf("%w: read inputs: %w", ErrScanFailed, err)
		}

		deassert := make([]int, m.numOutputs)
		for i := range deassert {
			deassert[i] = 1
		}
		if err := m.outputs.SetValues(deassert); err != nil {
			return fmt.Errorf("%w: deassert output %d: %w", ErrScanFailed, o, err)
		}

		for i, v := range values {
			m.commit(o, i, v == 0, now)
		}
	}
	return nil
}

// sweepAsync performs the same per-output read pass as sweepPolled. Neither
// this package nor service/matrixsrv waits on input edges, so AsyncWait
// mode scans exactly as Polled mode does.
func (m *Matrix) sweepAsync(ctx context.Context) error {
	return m.sweepPolled(ctx)
}

func (m *Matrix) commit(outIdx, inIdx int, raw bool, now time.Time) {
	row, col := m.logicalRowCol(outIdx, inIdx)
	pressed, changed := m.bank.Sample(row, col, raw, now)
	if !changed {
		return
	}
	m.pending = append(m.pending, action.KeyEvent{Row: byte(row), Col: byte(col), Pressed: pressed})
}
