// SPDX-License-Identifier: BSD-3-Clause

package keyboardsrv

import (
	"context"
	"testing"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/stretchr/testify/require"

	"github.com/vialcore/vialcore/pkg/action"
	"github.com/vialcore/vialcore/pkg/busapi"
	"github.com/vialcore/vialcore/pkg/hidreport"
	"github.com/vialcore/vialcore/pkg/keymap"
	"github.com/vialcore/vialcore/service/ipcbus"
)

// startBus brings up an in-process ipcbus and returns a connected client,
// plus a teardown func.
func startBus(t *testing.T) (*nats.Conn, nats.InProcessConnProvider) {
	t.Helper()
	bus := ipcbus.New(ipcbus.WithStoreDir(t.TempDir()))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- bus.Run(ctx, nil) }()
	t.Cleanup(func() {
		cancel()
		<-done
	})

	provider := bus.GetConnProvider()
	nc, err := nats.Connect("", nats.InProcessServer(provider))
	require.NoError(t, err)
	t.Cleanup(nc.Close)

	return nc, provider
}

func TestRunEmitsKeyboardReportForSingleKey(t *testing.T) {
	nc, provider := startBus(t)

	km := keymap.New(1, 1, 1)
	require.NoError(t, km.SetAction(0, 0, 0, action.Single(0x04))) // 'a'

	s := New(WithKeyMap(km))
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go func() { _ = s.Run(ctx, provider) }()

	reports := make(chan hidreport.Keyboard, 4)
	sub, err := nc.Subscribe(busapi.SubjectHIDReport, func(msg *nats.Msg) {
		m, err := busapi.UnmarshalHIDReport(msg.Data)
		if err != nil || len(m.Report) != 8 {
			return
		}
		var kb hidreport.Keyboard
		if kb.UnmarshalBinary(m.Report) == nil {
			reports <- kb
		}
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = sub.Unsubscribe() })
	require.NoError(t, nc.Flush())

	publishKeyEvent(t, nc, action.KeyEvent{Row: 0, Col: 0, Pressed: true})
	select {
	case kb := <-reports:
		require.True(t, kb.HasKey(0x04))
	case <-time.After(2 * time.Second):
		t.Fatal("no report for press")
	}

	publishKeyEvent(t, nc, action.KeyEvent{Row: 0, Col: 0, Pressed: false})
	select {
	case kb := <-reports:
		require.False(t, kb.HasKey(0x04))
	case <-time.After(2 * time.Second):
		t.Fatal("no report for release")
	}
}

func TestNameReturnsConfiguredServiceName(t *testing.T) {
	s := New(WithServiceName("right-half"))
	require.Equal(t, "right-half", s.Name())
}

func publishKeyEvent(t *testing.T, nc *nats.Conn, ev action.KeyEvent) {
	t.Helper()
	payload, err := busapi.KeyEventMessage{Event: ev}.Marshal()
	require.NoError(t, err)
	require.NoError(t, nc.Publish(busapi.SubjectKeyEvent, payload))
	require.NoError(t, nc.Flush())
}
