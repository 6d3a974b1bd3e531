// SPDX-License-Identifier: BSD-3-Clause

//go:build linux
// +build linux

package gpio

import "fmt"

// Direction represents the GPIO line direction.
type Direction int

const (
	// DirectionInput configures the GPIO line as an input.
	DirectionInput Direction = iota
	// DirectionOutput configures the GPIO line as an output.
	DirectionOutput
)

// String returns the string representation of the Direction.
func (d Direction) String() string {
	switch d {
	case DirectionInput:
		return "Input"
	case DirectionOutput:
		return "Output"
	default:
		return fmt.Sprintf("Direction(%d)", d)
	}
}

// Bias represents the GPIO line bias setting.
type Bias int

const (
	// BiasDisabled disables internal pull-up/pull-down resistors.
	BiasDisabled Bias = iota
	// BiasPullUp enables internal pull-up resistor. Used for matrix inputs,
	// which float high until a pressed key connects them to the output being
	// driven low.
	BiasPullUp
	// BiasPullDown enables internal pull-down resistor.
	BiasPullDown
)

// String returns the string representation of the Bias.
func (b Bias) String() string {
	switch b {
	case BiasDisabled:
		return "Disabled"
	case BiasPullUp:
		return "Pull-Up"
	case BiasPullDown:
		return "Pull-Down"
	default:
		return fmt.Sprintf("Bias(%d)", b)
	}
}

// LineConfig holds configuration for a line request.
type LineConfig struct {
	// Direction specifies whether the line is an input or output.
	Direction Direction
	// InitialValue is the initial value for output lines (0 or 1).
	InitialValue int
	// Bias configures internal pull-up/pull-down resistors for input lines.
	Bias Bias
	// Consumer is the string the kernel reports for this line's owner.
	Consumer string
}

// Config holds the configuration for a RequestLine/RequestLines call.
type Config struct {
	// DefaultConfig is applied to every line in the request.
	DefaultConfig LineConfig
}

// Option represents a configuration option for GPIO line requests.
type Option interface {
	apply(*Config)
}

type directionOption struct {
	direction Direction
}

func (o *directionOption) apply(c *Config) {
	c.DefaultConfig.Direction = o.direction
}

// WithDirection sets the line direction.
func WithDirection(direction Direction) Option {
	return &directionOption{
		direction: direction,
	}
}

type initialValueOption struct {
	value int
}

func (o *initialValueOption) apply(c *Config) {
	c.DefaultConfig.InitialValue = o.value
}

// WithInitialValue sets the initial value for an output line.
func WithInitialValue(value int) Option {
	return &initialValueOption{
		value: value,
	}
}

type biasOption struct {
	bias Bias
}

func (o *biasOption) apply(c *Config) {
	c.DefaultConfig.Bias = o.bias
}

// WithBias sets the bias setting for an input line.
func WithBias(bias Bias) Option {
	return &biasOption{
		bias: bias,
	}
}

type consumerOption struct {
	consumer string
}

func (o *consumerOption) apply(c *Config) {
	c.DefaultConfig.Consumer = o.consumer
}

// WithConsumer overrides the default consumer string reported for this line.
func WithConsumer(consumer string) Option {
	return &consumerOption{
		consumer: consumer,
	}
}

// NewConfig creates a new Config with sane defaults and applies the provided options.
func NewConfig(opts ...Option) *Config {
	cfg := &Config{
		DefaultConfig: LineConfig{
			Direction:    DirectionOutput,
			InitialValue: 0,
			Bias:         BiasDisabled,
			Consumer:     "vialcore",
		},
	}

	for _, opt := range opts {
		opt.apply(cfg)
	}

	return cfg
}
