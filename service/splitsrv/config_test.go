// SPDX-License-Identifier: BSD-3-Clause

package splitsrv

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNewConfigDefaults(t *testing.T) {
	cfg := newConfig()
	require.Equal(t, DefaultServiceName, cfg.serviceName)
	require.Equal(t, RoleCentral, cfg.role)
	require.Equal(t, DefaultBaudRate, cfg.uartBaud)
	require.Equal(t, DefaultHeartbeatInterval, cfg.heartbeatInterval)
	require.Equal(t, DefaultStaleAfter, cfg.staleAfter)
	require.Nil(t, cfg.transport)
}

func TestNewConfigAppliesOptions(t *testing.T) {
	cfg := newConfig(
		WithServiceName("right-half-split"),
		WithRole(RolePeripheral),
		WithUART("/dev/ttyS1", 9600),
		WithCoordOffset(4, 0),
		WithHeartbeatInterval(50*time.Millisecond),
		WithStaleAfter(200*time.Millisecond),
	)
	require.Equal(t, "right-half-split", cfg.serviceName)
	require.Equal(t, RolePeripheral, cfg.role)
	require.Equal(t, "/dev/ttyS1", cfg.uartDevice)
	require.Equal(t, 9600, cfg.uartBaud)
	require.Equal(t, byte(4), cfg.rowOffset)
	require.Equal(t, byte(0), cfg.colOffset)
	require.Equal(t, 50*time.Millisecond, cfg.heartbeatInterval)
	require.Equal(t, 200*time.Millisecond, cfg.staleAfter)
}

func TestNewConfigNATSLink(t *testing.T) {
	cfg := newConfig(WithNATSLink("split.to-central", "split.to-peripheral"))
	require.Equal(t, "split.to-central", cfg.natsSendSubject)
	require.Equal(t, "split.to-peripheral", cfg.natsRecvSubject)
}

func TestRoleString(t *testing.T) {
	require.Equal(t, "central", RoleCentral.String())
	require.Equal(t, "peripheral", RolePeripheral.String())
	require.Equal(t, "unknown", Role(99).String())
}
