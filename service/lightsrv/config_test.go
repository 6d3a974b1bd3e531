// SPDX-License-Identifier: BSD-3-Clause

package lightsrv

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewConfigDefaults(t *testing.T) {
	cfg := newConfig()
	require.Equal(t, DefaultServiceName, cfg.serviceName)
	require.Empty(t, cfg.lines)
}

func TestNewConfigAppliesOptions(t *testing.T) {
	cfg := newConfig(
		WithServiceName("left-half-lights"),
		WithLED(IndicatorCapsLock, "", "CAPS_LED", true),
		WithLED(IndicatorNumLock, "/dev/gpiochip1", "NUM_LED", false),
	)
	require.Equal(t, "left-half-lights", cfg.serviceName)
	require.Equal(t, LEDLine{Chip: DefaultChip, Line: "CAPS_LED", ActiveLow: true}, cfg.lines[IndicatorCapsLock])
	require.Equal(t, LEDLine{Chip: "/dev/gpiochip1", Line: "NUM_LED", ActiveLow: false}, cfg.lines[IndicatorNumLock])
}
