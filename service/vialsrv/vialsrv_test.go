// SPDX-License-Identifier: BSD-3-Clause

package vialsrv

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
	"github.com/vialcore/vialcore/pkg/kbid"
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

func request(t *testing.T, nc *nats.Conn, frame hidreport.VialFrame) hidreport.VialFrame {
	t.Helper()
	msg, err := nc.Request(busapi.SubjectVialRequest, frame[:], 2*time.Second)
	require.NoError(t, err)
	var reply hidreport.VialFrame
	require.Len(t, msg.Data, hidreport.VialFrameSize)
	copy(reply[:], msg.Data)
	return reply
}

func TestGetProtocolVersion(t *testing.T) {
	nc, provider := startBus(t)
	km := keymap.New(1, 1, 1)

	s := New(WithKeyMap(km))
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go func() { _ = s.Run(ctx, provider) }()
	time.Sleep(50 * time.Millisecond)

	frame, err := hidreport.NewVialFrame(byte(vialproto.CmdVIAGetProtocolVersion), nil)
	require.NoError(t, err)

	reply := request(t, nc, frame)
	require.Equal(t, byte(vialproto.CmdVIAGetProtocolVersion), reply.Command())
}

func TestGetKeyboardID(t *testing.T) {
	nc, provider := startBus(t)
	km := keymap.New(1, 1, 1)
	id := kbid.KeyboardID{1, 2, 3, 4, 5, 6, 7, 8}

	s := New(WithKeyMap(km), WithKeyboardID(id))
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go func() { _ = s.Run(ctx, provider) }()
	time.Sleep(50 * time.Millisecond)

	inner, err := hidreport.NewVialFrame(byte(vialproto.CmdGetKeyboardID), nil)
	require.NoError(t, err)
	outer, err := hidreport.NewVialFrame(byte(vialproto.CmdViaVialPrefix), inner[:hidreport.VialFrameSize-1])
	require.NoError(t, err)

	reply := request(t, nc, outer)
	require.Equal(t, byte(vialproto.CmdGetKeyboardID), reply.Command())
	require.Equal(t, id[:], reply.Payload()[:8])
}

func TestDynamicKeymapSetThenGet(t *testing.T) {
	nc, provider := startBus(t)
	km := keymap.New(1, 1, 1)

	s := New(WithKeyMap(km))
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go func() { _ = s.Run(ctx, provider) }()
	time.Sleep(50 * time.Millisecond)

	want := action.Single(0x05)
	w := vialproto.EncodeKeyAction(want)
	setFrame, err := hidreport.NewVialFrame(byte(vialproto.CmdVIADynamicKeymapSet), append([]byte{0, 0, 0}, w[:]...))
	require.NoError(t, err)
	setReply := request(t, nc, setFrame)
	require.Equal(t, byte(vialproto.CmdVIADynamicKeymapSet), setReply.Command())

	getFrame, err := hidreport.NewVialFrame(byte(vialproto.CmdVIADynamicKeymapGet), []byte{0, 0, 0})
	require.NoError(t, err)
	getReply := request(t, nc, getFrame)

	var gotW vialproto.WireKeycode
	copy(gotW[:], getReply.Payload()[:4])
	got, err := vialproto.DecodeKeyAction(gotW)
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestUnknownCommandRepliesFF(t *testing.T) {
	nc, provider := startBus(t)
	km := keymap.New(1, 1, 1)

	s := New(WithKeyMap(km))
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go func() { _ = s.Run(ctx, provider) }()
	time.Sleep(50 * time.Millisecond)

	frame, err := hidreport.NewVialFrame(0x7a, nil)
	require.NoError(t, err)
	reply := request(t, nc, frame)
	require.Equal(t, vialproto.UnknownReply, reply.Command())
}
