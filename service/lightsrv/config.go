// SPDX-License-Identifier: BSD-3-Clause

package lightsrv

// Indicator names a bit of pkg/hidreport.LEDIndicator that can be wired to a
// GPIO line.
type Indicator string

const (
	IndicatorNumLock    Indicator = "num_lock"
	IndicatorCapsLock   Indicator = "caps_lock"
	IndicatorScrollLock Indicator = "scroll_lock"
	IndicatorCompose    Indicator = "compose"
	IndicatorKana       Indicator = "kana"
)

const DefaultServiceName = "lightsrv"

const DefaultChip = "/dev/gpiochip0"

// LEDLine identifies the GPIO line driving one indicator LED.
type LEDLine struct {
	Chip      string
	Line      string
	ActiveLow bool
}

type config struct {
	serviceName string
	lines       map[Indicator]LEDLine
}

// Option configures a lightsrv config.
type Option interface {
	apply(*config)
}

type serviceNameOption struct{ name string }

func (o serviceNameOption) apply(c *config) { c.serviceName = o.name }

// WithServiceName overrides the service's Name().
func WithServiceName(name string) Option { return serviceNameOption{name: name} }

type ledLineOption struct {
	indicator Indicator
	line      LEDLine
}

func (o ledLineOption) apply(c *config) { c.lines[o.indicator] = o.line }

// WithLED wires indicator to the named GPIO line on chip. If chip is empty,
// DefaultChip is used. An indicator with no wired line is simply ignored
// when its bit changes, so boards without a physical LED for it can omit it.
func WithLED(indicator Indicator, chip, line string, activeLow bool) Option {
	if chip == "" {
		chip = DefaultChip
	}
	return ledLineOption{indicator: indicator, line: LEDLine{Chip: chip, Line: line, ActiveLow: activeLow}}
}

func newConfig(opts ...Option) *config {
	cfg := &config{
		serviceName: DefaultServiceName,
		lines:       make(map[Indicator]LEDLine),
	}
	for _, opt := range opts {
		opt.apply(cfg)
	}
	return cfg
}
