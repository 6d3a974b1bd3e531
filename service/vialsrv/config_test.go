// SPDX-License-Identifier: BSD-3-Clause

package vialsrv

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/vialcore/vialcore/pkg/kbid"
	"github.com/vialcore/vialcore/pkg/keymap"
)

func TestNewConfigDefaults(t *testing.T) {
	cfg := newConfig()
	require.Equal(t, DefaultServiceName, cfg.serviceName)
	require.Equal(t, DefaultStorageTimeout, cfg.storageTimeout)
	require.Nil(t, cfg.km)
}

func TestNewConfigAppliesOptions(t *testing.T) {
	km := keymap.New(1, 1, 1)
	id := kbid.KeyboardID{1, 2, 3, 4, 5, 6, 7, 8}
	def := []byte{0xde, 0xad}

	cfg := newConfig(
		WithServiceName("left-half-vial"),
		WithKeyMap(km),
		WithKeyboardID(id),
		WithKeymapDef(def),
		WithStorageTimeout(2*time.Second),
	)
	require.Equal(t, "left-half-vial", cfg.serviceName)
	require.Same(t, km, cfg.km)
	require.Equal(t, id, cfg.keyboardID)
	require.Equal(t, def, cfg.keymapDef)
	require.Equal(t, 2*time.Second, cfg.storageTimeout)
}
