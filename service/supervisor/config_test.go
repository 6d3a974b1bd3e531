// SPDX-License-Identifier: BSD-3-Clause

package supervisor

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vialcore/vialcore/pkg/keymap"
)

func TestNewConfigDefaults(t *testing.T) {
	cfg := newConfig()
	require.Equal(t, "supervisor", cfg.name)
	require.Equal(t, DefaultTimeout, cfg.timeout)
	require.Equal(t, DefaultLayers, cfg.keymapLayers)
	require.Equal(t, DefaultRows, cfg.keymapRows)
	require.Equal(t, DefaultCols, cfg.keymapCols)
	require.NotNil(t, cfg.bus)
	require.NotNil(t, cfg.Matrixsrv)
	require.NotNil(t, cfg.Hidsrv)
	require.NotNil(t, cfg.Lightsrv)
	require.Nil(t, cfg.Splitsrv)
	require.Nil(t, cfg.keyMap)
}

func TestNewConfigAppliesKeyMap(t *testing.T) {
	km := keymap.New(1, 1, 1)
	cfg := newConfig(WithKeyMap(km))
	require.Same(t, km, cfg.keyMap)
}

func TestNewConfigAppliesKeyMapDims(t *testing.T) {
	cfg := newConfig(WithKeyMapDims(2, 3, 4))
	require.Equal(t, 2, cfg.keymapLayers)
	require.Equal(t, 3, cfg.keymapRows)
	require.Equal(t, 4, cfg.keymapCols)
}

func TestNewConfigAppliesName(t *testing.T) {
	cfg := newConfig(WithName("left-half"), WithDisableLogo(true))
	require.Equal(t, "left-half", cfg.name)
	require.True(t, cfg.disableLogo)
}
