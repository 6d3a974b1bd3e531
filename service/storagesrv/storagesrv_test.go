// SPDX-License-Identifier: BSD-3-Clause

//go:build linux
// +build linux

package storagesrv

import (
	"context"
	"testing"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/stretchr/testify/require"

	"github.com/vialcore/vialcore/pkg/action"
	"github.com/vialcore/vialcore/pkg/busapi"
	"github.com/vialcore/vialcore/pkg/flashsim"
	"github.com/vialcore/vialcore/pkg/keymap"
	"github.com/vialcore/vialcore/pkg/vialproto"
	"github.com/vialcore/vialcore/service/ipcbus"
)

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

func TestMutateAppendsAndPublishesAppended(t *testing.T) {
	nc, provider := startBus(t)
	km := keymap.New(1, 1, 1)

	s := New(WithDir(t.TempDir()), WithKeyMap(km))
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go func() { _ = s.Run(ctx, provider) }()
	time.Sleep(50 * time.Millisecond)

	appendedCh := make(chan busapi.StorageAppendedMessage, 1)
	sub, err := nc.Subscribe(busapi.SubjectStorageAppended, func(msg *nats.Msg) {
		m, err := busapi.UnmarshalStorageAppended(msg.Data)
		require.NoError(t, err)
		appendedCh <- m
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = sub.Unsubscribe() })

	want := action.Single(0x09)
	rec := vialproto.EncodeKeymapCellRecord(0, 0, 0, want)
	data, err := busapi.StorageMutateMessage{Kind: byte(flashsim.KindKeymapCell), Payload: rec}.Marshal()
	require.NoError(t, err)
	require.NoError(t, nc.Publish(busapi.SubjectStorageMutate, data))

	select {
	case m := <-appendedCh:
		require.Equal(t, byte(flashsim.KindKeymapCell), m.Kind)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for storage appended event")
	}
}

func TestLoadReplaysKeymapCellsIntoKeyMap(t *testing.T) {
	dir := t.TempDir()

	seedCfg := flashsim.NewConfig(flashsim.WithDir(dir))
	seedLog, err := flashsim.Open(seedCfg)
	require.NoError(t, err)

	want := action.Single(0x1a)
	require.NoError(t, seedLog.Append(flashsim.Record{
		Kind:    flashsim.KindKeymapCell,
		Payload: vialproto.EncodeKeymapCellRecord(0, 0, 0, want),
	}))
	require.NoError(t, seedLog.Close())

	_, provider := startBus(t)
	km := keymap.New(1, 1, 1)

	s := New(WithDir(dir), WithKeyMap(km))
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go func() { _ = s.Run(ctx, provider) }()
	time.Sleep(50 * time.Millisecond)

	got, err := km.GetActionAt(0, 0, 0)
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestNameReturnsConfiguredServiceName(t *testing.T) {
	s := New(WithServiceName("right-half-storage"))
	require.Equal(t, "right-half-storage", s.Name())
}
