// SPDX-License-Identifier: BSD-3-Clause

package matrixio

import (
	"fmt"
	"time"
)

// ScanModeKind selects between Polled and Async-wait scanning (spec §4.2).
type ScanModeKind uint8

const (
	// Polled asserts each output in turn and reads all inputs after a
	// settle delay.
	Polled ScanModeKind = iota
	// AsyncWait performs the same synchronous read pass as Polled; no
	// edge-triggered wait on the inputs takes place.
	AsyncWait
)

// DefaultScanDelay is the row/column settle delay of spec §4.2.
const DefaultScanDelay = 5 * time.Microsecond

// Config describes the electrical matrix: chip, pin sets, orientation, and
// scan timing.
type Config struct {
	ChipPath string

	// RowOffsets and ColOffsets are GPIO line offsets for the electrical
	// row/column sets, independent of logical row/col orientation.
	RowOffsets []int
	ColOffsets []int

	// Col2Row swaps which electrical pin set is driven (output) and which
	// is sampled (input); published events are always {row, col} in
	// logical coordinates regardless of this bit.
	Col2Row bool

	Mode      ScanModeKind
	ScanDelay time.Duration

	DebounceKind DebounceKind
}

// DebounceKind selects which debounce.Bank kind the Matrix constructs.
type DebounceKind uint8

const (
	DebounceDefault DebounceKind = iota
	DebounceRapid
)

// Option configures a Config.
type Option interface {
	apply(*Config)
}

type chipOption struct{ path string }

func (o chipOption) apply(c *Config) { c.ChipPath = o.path }

// WithChip sets the GPIO chip device path.
func WithChip(path string) Option { return chipOption{path: path} }

type rowsOption struct{ offsets []int }

func (o rowsOption) apply(c *Config) { c.RowOffsets = append([]int(nil), o.offsets...) }

// WithRowOffsets sets the electrical row line offsets.
func WithRowOffsets(offsets ...int) Option { return rowsOption{offsets: offsets} }

type colsOption struct{ offsets []int }

func (o colsOption) apply(c *Config) { c.ColOffsets = append([]int(nil), o.offsets...) }

// WithColOffsets sets the electrical column line offsets.
func WithColOffsets(offsets ...int) Option { return colsOption{offsets: offsets} }

type col2RowOption struct{ v bool }

func (o col2RowOption) apply(c *Config) { c.Col2Row = o.v }

// WithCol2Row swaps the driven/sampled pin sets.
func WithCol2Row(v bool) Option { return col2RowOption{v: v} }

type modeOption struct{ mode ScanModeKind }

func (o modeOption) apply(c *Config) { c.Mode = o.mode }

// WithScanMode selects Polled or AsyncWait.
func WithScanMode(m ScanModeKind) Option { return modeOption{mode: m} }

type scanDelayOption struct{ d time.Duration }

func (o scanDelayOption) apply(c *Config) { c.ScanDelay = o.d }

// WithScanDelay overrides the row/column settle delay.
func WithScanDelay(d time.Duration) Option { return scanDelayOption{d: d} }

type debounceKindOption struct{ k DebounceKind }

func (o debounceKindOption) apply(c *Config) { c.DebounceKind = o.k }

// WithDebounceKind selects the per-cell debounce strategy.
func WithDebounceKind(k DebounceKind) Option { return debounceKindOption{k: k} }

// NewConfig builds a Config with sane defaults, applying opts in order.
func NewConfig(opts ...Option) *Config {
	cfg := &Config{
		ChipPath:  "/dev/gpiochip0",
		Mode:      Polled,
		ScanDelay: DefaultScanDelay,
	}
	for _, opt := range opts {
		opt.apply(cfg)
	}
	return cfg
}

// Validate checks the configuration is well-formed.
func (c *Config) Validate() error {
	if c.ChipPath == "" {
		return fmt.Errorf("%w: chip path cannot be empty", ErrInvalidConfig)
	}
	if len(c.RowOffsets) == 0 {
		return fmt.Errorf("%w: at least one row offset required", ErrInvalidConfig)
	}
	if len(c.ColOffsets) == 0 {
		return fmt.Errorf("%w: at least one column offset required", ErrInvalidConfig)
	}
	if c.ScanDelay <= 0 {
		return fmt.Errorf("%w: scan delay must be positive", ErrInvalidConfig)
	}
	return nil
}
