// SPDX-License-Identifier: BSD-3-Clause

package matrixsrv

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNewConfigDefaults(t *testing.T) {
	cfg := newConfig()
	require.Equal(t, DefaultServiceName, cfg.serviceName)
	require.Equal(t, DefaultPollInterval, cfg.pollInterval)
	require.Nil(t, cfg.matrixCfg)
}

func TestNewConfigAppliesOptions(t *testing.T) {
	cfg := newConfig(WithServiceName("left-half"), WithPollInterval(2*time.Millisecond))
	require.Equal(t, "left-half", cfg.serviceName)
	require.Equal(t, 2*time.Millisecond, cfg.pollInterval)
}
