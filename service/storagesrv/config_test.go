// SPDX-License-Identifier: BSD-3-Clause

//go:build linux
// +build linux

package storagesrv

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vialcore/vialcore/pkg/flashsim"
	"github.com/vialcore/vialcore/pkg/keymap"
)

func TestNewConfigDefaults(t *testing.T) {
	cfg := newConfig()
	require.Equal(t, DefaultServiceName, cfg.serviceName)
	require.Equal(t, flashsim.DefaultNumSectors, cfg.numSectors)
	require.Equal(t, flashsim.DefaultSectorSize, cfg.sectorSize)
	require.Equal(t, flashsim.DefaultMinFreeBytes, cfg.minFree)
	require.Nil(t, cfg.km)
}

func TestNewConfigAppliesOptions(t *testing.T) {
	km := keymap.New(1, 1, 1)

	cfg := newConfig(
		WithServiceName("left-half-storage"),
		WithDir("/tmp/vialcore-test"),
		WithNumSectors(4),
		WithSectorSize(2048),
		WithMinFreeBytes(128),
		WithKeyMap(km),
	)
	require.Equal(t, "left-half-storage", cfg.serviceName)
	require.Equal(t, "/tmp/vialcore-test", cfg.dir)
	require.Equal(t, 4, cfg.numSectors)
	require.Equal(t, 2048, cfg.sectorSize)
	require.Equal(t, 128, cfg.minFree)
	require.Same(t, km, cfg.km)
}
