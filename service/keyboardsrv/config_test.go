// SPDX-License-Identifier: BSD-3-Clause

package keyboardsrv

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vialcore/vialcore/pkg/keymap"
)

func TestNewConfigDefaults(t *testing.T) {
	cfg := newConfig()
	require.Equal(t, DefaultServiceName, cfg.serviceName)
	require.Nil(t, cfg.km)
	require.Nil(t, cfg.tapCfg)
}

func TestNewConfigAppliesOptions(t *testing.T) {
	km := keymap.New(1, 1, 1)
	cfg := newConfig(WithServiceName("board"), WithKeyMap(km))
	require.Equal(t, "board", cfg.serviceName)
	require.Same(t, km, cfg.km)
}
