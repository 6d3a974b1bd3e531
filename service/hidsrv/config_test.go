// SPDX-License-Identifier: BSD-3-Clause

package hidsrv

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNewConfigDefaults(t *testing.T) {
	cfg := newConfig()
	require.Equal(t, DefaultServiceName, cfg.serviceName)
	require.Equal(t, DefaultKeyboardDevice, cfg.keyboardDevice)
	require.Equal(t, DefaultExtraDevice, cfg.extraDevice)
	require.Equal(t, DefaultVialDevice, cfg.vialDevice)
	require.Equal(t, DefaultLEDPollInterval, cfg.ledPollInterval)
	require.Equal(t, DefaultVialTimeout, cfg.vialTimeout)
	require.Nil(t, cfg.gadgetCfg)
}

func TestNewConfigAppliesOptions(t *testing.T) {
	cfg := newConfig(
		WithServiceName("left-half-hid"),
		WithKeyboardDevice("/dev/hidg3"),
		WithExtraDevice("/dev/hidg4"),
		WithVialDevice("/dev/hidg5"),
		WithLEDPollInterval(5*time.Millisecond),
		WithVialTimeout(time.Second),
	)
	require.Equal(t, "left-half-hid", cfg.serviceName)
	require.Equal(t, "/dev/hidg3", cfg.keyboardDevice)
	require.Equal(t, "/dev/hidg4", cfg.extraDevice)
	require.Equal(t, "/dev/hidg5", cfg.vialDevice)
	require.Equal(t, 5*time.Millisecond, cfg.ledPollInterval)
	require.Equal(t, time.Second, cfg.vialTimeout)
}
