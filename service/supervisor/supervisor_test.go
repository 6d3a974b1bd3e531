// SPDX-License-Identifier: BSD-3-Clause

package supervisor

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/vialcore/vialcore/pkg/process"
	"github.com/vialcore/vialcore/service/storagesrv"
)

// stubHardware replaces the GPIO/USB-backed services with oneshot stubs so
// Run can be exercised without real hardware. Returning nil from Run marks
// a Transient child as done rather than triggering a restart loop.
func stubHardware(s *Supervisor) {
	s.Matrixsrv = process.NewStub("matrixsrv")
	s.Hidsrv = process.NewStub("hidsrv")
	s.Lightsrv = process.NewStub("lightsrv")
}

func TestRunWiresSharedKeyMapAndShutsDownOnCancel(t *testing.T) {
	s := New(
		WithName("test-supervisor"),
		WithDisableLogo(true),
		WithKeyMapDims(1, 1, 1),
		WithStoragesrv(storagesrv.WithDir(t.TempDir())),
	)
	stubHardware(s)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx, nil) }()

	time.Sleep(100 * time.Millisecond)
	require.NotNil(t, s.keyMap, "Run should build a shared KeyMap from WithKeyMapDims")
	require.NotNil(t, s.Keyboardsrv)
	require.NotNil(t, s.Vialsrv)
	require.NotNil(t, s.Storagesrv)

	cancel()
	select {
	case err := <-done:
		require.True(t, err == nil || err == context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("supervisor did not shut down after context cancellation")
	}
}

func TestRunRejectsEmptyName(t *testing.T) {
	s := New(WithName(""))
	err := s.Run(context.Background(), nil)
	require.ErrorIs(t, err, ErrNameEmpty)
}

func TestNameReturnsConfiguredServiceName(t *testing.T) {
	s := New(WithName("left-half-supervisor"))
	require.Equal(t, "left-half-supervisor", s.Name())
}
