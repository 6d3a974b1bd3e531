// SPDX-License-Identifier: BSD-3-Clause

//go:build linux
// +build linux

package gpio

import (
	"errors"
	"fmt"
	"path/filepath"
	"syscall"

	"github.com/warthog618/go-gpiocdev"
)

// RequestLine requests a single GPIO line with the specified configuration options.
// Used for LED/indicator outputs, one line per call.
// Returns a *gpiocdev.Line that can be used directly with the underlying library.
func RequestLine(chip, lineName string, opts ...Option) (*gpiocdev.Line, error) {
	if chip == "" {
		return nil, fmt.Errorf("%w: chip path cannot be empty", ErrOperationFailed)
	}
	if lineName == "" {
		return nil, fmt.Errorf("%w: line name cannot be empty", ErrOperationFailed)
	}

	if err := gpiocdev.IsChip(chip); err != nil {
		return nil, mapGpiocdevError(err, fmt.Sprintf("invalid chip path '%s'", chip))
	}

	foundChip, offset, err := gpiocdev.FindLine(lineName)
	if err != nil {
		return nil, mapGpiocdevError(err, fmt.Sprintf("failed to find line '%s'", lineName))
	}
	// Normalize device identifiers (path vs basename) before comparing.
	if filepath.Base(foundChip) != filepath.Base(chip) {
		return nil, fmt.Errorf("%w: line '%s' not found on chip '%s'", ErrLineNotFound, lineName, chip)
	}

	// Default consumer, allow caller to override by placing their option last.
	defaultOpts := []gpiocdev.LineReqOption{gpiocdev.WithConsumer("vialcore")}
	gpiocdevOpts := append(defaultOpts, convertOptions(opts)...)

	line, err := gpiocdev.RequestLine(chip, offset, gpiocdevOpts...)
	if err != nil {
		return nil, mapGpiocdevError(err, fmt.Sprintf("failed to request line '%s' from chip '%s'", lineName, chip))
	}

	return line, nil
}

// RequestLines requests multiple GPIO lines at once, as a single gpiocdev.Lines
// handle that can be driven or read together. Used for matrix row/column banks.
// Accepts a slice of line offsets and configuration options shared by all of them.
func RequestLines(chip string, lineOffsets []int, opts ...Option) (*gpiocdev.Lines, error) {
	if chip == "" {
		return nil, fmt.Errorf("%w: chip path cannot be empty", ErrOperationFailed)
	}
	if len(lineOffsets) == 0 {
		return nil, fmt.Errorf("%w: at least one line offset must be specified", ErrInvalidValue)
	}

	for _, offset := range lineOffsets {
		if offset < 0 {
			return nil, fmt.Errorf("%w: line offset cannot be negative: %d", ErrInvalidValue, offset)
		}
	}

	defaultOpts := []gpiocdev.LineReqOption{gpiocdev.WithConsumer("vialcore")}
	gpiocdevOpts := append(defaultOpts, convertOptions(opts)...)

	lines, err := gpiocdev.RequestLines(chip, lineOffsets, gpiocdevOpts...)
	if err != nil {
		return nil, mapGpiocdevError(err, fmt.Sprintf("failed to request lines from chip '%s'", chip))
	}

	return lines, nil
}

// convertOptions turns our Option values into the gpiocdev.LineReqOption values
// the underlying driver actually understands.
func convertOptions(opts []Option) []gpiocdev.LineReqOption {
	lc := NewConfig(opts...).DefaultConfig

	gpiocdevOpts := make([]gpiocdev.LineReqOption, 0, 3)

	if lc.Direction == DirectionOutput {
		gpiocdevOpts = append(gpiocdevOpts, gpiocdev.AsOutput(lc.InitialValue))
	} else {
		gpiocdevOpts = append(gpiocdevOpts, gpiocdev.AsInput)
	}

	switch lc.Bias {
	case BiasPullUp:
		gpiocdevOpts = append(gpiocdevOpts, gpiocdev.WithPullUp)
	case BiasPullDown:
		gpiocdevOpts = append(gpiocdevOpts, gpiocdev.WithPullDown)
	case BiasDisabled:
		gpiocdevOpts = append(gpiocdevOpts, gpiocdev.WithBiasDisabled)
	}

	if lc.Consumer != "" {
		gpiocdevOpts = append(gpiocdevOpts, gpiocdev.WithConsumer(lc.Consumer))
	}

	return gpiocdevOpts
}

// mapGpiocdevError maps gpiocdev errors to our package errors.
func mapGpiocdevError(err error, details string) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, syscall.ENOENT):
		return fmt.Errorf("%w: %s", ErrChipNotFound, details)
	case errors.Is(err, syscall.EACCES) || errors.Is(err, syscall.EPERM):
		return fmt.Errorf("%w: %s", ErrPermissionDenied, details)
	case errors.Is(err, gpiocdev.ErrNotFound):
		return fmt.Errorf("%w: %s", ErrLineNotFound, details)
	case errors.Is(err, gpiocdev.ErrClosed):
		return fmt.Errorf("%w: %s", ErrLineClosed, details)
	default:
		return fmt.Errorf("%w: %s: %w", ErrOperationFailed, details, err)
	}
}
