// SPDX-License-Identifier: BSD-3-Clause

//go:build linux
// +build linux

// Package gpio wraps github.com/warthog618/go-gpiocdev with the request
// shape the keyboard services need: one driven output line for an LED
// indicator, or a bank of row/column lines for matrix scanning.
//
// # Basic usage
//
//	led, err := gpio.RequestLine("/dev/gpiochip0", "4",
//		gpio.WithDirection(gpio.DirectionOutput),
//		gpio.WithConsumer("vialcore-lightsrv"),
//	)
//	if err != nil {
//		return err
//	}
//	defer led.Close()
//	led.SetValue(1)
//
//	cols, err := gpio.RequestLines("/dev/gpiochip0", []int{5, 6, 13},
//		gpio.WithDirection(gpio.DirectionInput),
//		gpio.WithBias(gpio.BiasPullUp),
//	)
//	if err != nil {
//		return err
//	}
//	defer cols.Close()
//
// # Error handling
//
//	switch {
//	case errors.Is(err, gpio.ErrChipNotFound):
//	case errors.Is(err, gpio.ErrLineNotFound):
//	case errors.Is(err, gpio.ErrPermissionDenied):
//	}
package gpio
