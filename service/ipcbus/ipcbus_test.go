// SPDX-License-Identifier: BSD-3-Clause

package ipcbus

import (
	"context"
	"testing"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/stretchr/testify/require"
)

func TestRunRejectsExistingConn(t *testing.T) {
	s := New(WithStoreDir(t.TempDir()))
	var fake nats.InProcessConnProvider = &ConnProvider{}
	err := s.Run(context.Background(), fake)
	require.ErrorIs(t, err, ErrExistingConnProvided)
}

func TestRunServesInProcessConnections(t *testing.T) {
	s := New(WithServiceName("test-bus"), WithStoreDir(t.TempDir()))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx, nil) }()

	provider := s.GetConnProvider()
	conn, err := provider.InProcessConn()
	require.NoError(t, err)
	require.NotNil(t, conn)
	conn.Close()

	cancel()
	select {
	case err := <-done:
		require.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after context cancellation")
	}
}

func TestNameReturnsConfiguredServiceName(t *testing.T) {
	s := New(WithServiceName("custom-name"))
	require.Equal(t, "custom-name", s.Name())
}
