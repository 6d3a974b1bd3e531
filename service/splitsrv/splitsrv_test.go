// SPDX-License-Identifier: BSD-3-Clause

package splitsrv

import (
	"context"
	"testing"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/stretchr/testify/require"

	"github.com/vialcore/vialcore/pkg/action"
	"github.com/vialcore/vialcore/pkg/busapi"
	"github.com/vialcore/vialcore/pkg/splitproto"
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

// pipeEnd is one side of an in-memory, channel-backed splitproto.Transport
// pair, standing in for a real UART cable between the two boards in tests.
type pipeEnd struct {
	out chan<- splitproto.SplitMessage
	in  <-chan splitproto.SplitMessage
}

func newPipe() (a, b pipeEnd) {
	ab := make(chan splitproto.SplitMessage, 32)
	ba := make(chan splitproto.SplitMessage, 32)
	return pipeEnd{out: ab, in: ba}, pipeEnd{out: ba, in: ab}
}

func (p pipeEnd) Send(ctx context.Context, msg splitproto.SplitMessage) error {
	select {
	case p.out <- msg:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (p pipeEnd) Receive(ctx context.Context) (splitproto.SplitMessage, error) {
	select {
	case m := <-p.in:
		return m, nil
	case <-ctx.Done():
		return splitproto.SplitMessage{}, ctx.Err()
	}
}

func TestPeripheralKeyEventReachesCentralBusWithOffset(t *testing.T) {
	peripheralEnd, centralEnd := newPipe()

	_, peripheralProvider := startBus(t)
	centralNC, centralProvider := startBus(t)

	peripheral := New(
		WithRole(RolePeripheral),
		WithTransport(peripheralEnd),
		WithHeartbeatInterval(20*time.Millisecond),
	)
	central := New(
		WithRole(RoleCentral),
		WithTransport(centralEnd),
		WithCoordOffset(4, 0),
		WithHeartbeatInterval(20*time.Millisecond),
	)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go func() { _ = peripheral.Run(ctx, peripheralProvider) }()
	go func() { _ = central.Run(ctx, centralProvider) }()
	time.Sleep(50 * time.Millisecond)

	centralEvents := make(chan action.KeyEvent, 4)
	sub, err := centralNC.Subscribe(busapi.SubjectKeyEvent, func(msg *nats.Msg) {
		m, err := busapi.UnmarshalKeyEvent(msg.Data)
		require.NoError(t, err)
		centralEvents <- m.Event
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = sub.Unsubscribe() })

	peripheralNC, err := nats.Connect("", nats.InProcessServer(peripheralProvider))
	require.NoError(t, err)
	t.Cleanup(peripheralNC.Close)

	data, err := busapi.KeyEventMessage{Event: action.KeyEvent{Row: 1, Col: 2, Pressed: true}}.Marshal()
	require.NoError(t, err)
	require.NoError(t, peripheralNC.Publish(busapi.SubjectKeyEvent, data))

	select {
	case ev := <-centralEvents:
		require.Equal(t, byte(5), ev.Row) // 1 + coord offset row 4
		require.Equal(t, byte(2), ev.Col)
		require.True(t, ev.Pressed)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for offset-adjusted key event on central bus")
	}
}

func TestCentralLEDStateReachesPeripheralBus(t *testing.T) {
	peripheralEnd, centralEnd := newPipe()

	peripheralNC, peripheralProvider := startBus(t)
	centralNC, centralProvider := startBus(t)

	peripheral := New(WithRole(RolePeripheral), WithTransport(peripheralEnd), WithHeartbeatInterval(20*time.Millisecond))
	central := New(WithRole(RoleCentral), WithTransport(centralEnd), WithHeartbeatInterval(20*time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go func() { _ = peripheral.Run(ctx, peripheralProvider) }()
	go func() { _ = central.Run(ctx, centralProvider) }()
	time.Sleep(50 * time.Millisecond)

	peripheralLEDs := make(chan byte, 4)
	sub, err := peripheralNC.Subscribe(busapi.SubjectLEDIndicator, func(msg *nats.Msg) {
		m, err := busapi.UnmarshalLEDIndicator(msg.Data)
		require.NoError(t, err)
		peripheralLEDs <- m.Byte
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = sub.Unsubscribe() })

	data, err := busapi.LEDIndicatorMessage{Byte: 0x03}.Marshal()
	require.NoError(t, err)
	require.NoError(t, centralNC.Publish(busapi.SubjectLEDIndicator, data))

	select {
	case b := <-peripheralLEDs:
		require.Equal(t, byte(0x03), b)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for led state on peripheral bus")
	}
}

func TestHeartbeatsMarkConnectionReached(t *testing.T) {
	peripheralEnd, centralEnd := newPipe()

	centralNC, centralProvider := startBus(t)
	_, peripheralProvider := startBus(t)

	peripheral := New(WithRole(RolePeripheral), WithTransport(peripheralEnd), WithHeartbeatInterval(10*time.Millisecond), WithStaleAfter(50*time.Millisecond))
	central := New(WithRole(RoleCentral), WithTransport(centralEnd), WithHeartbeatInterval(10*time.Millisecond), WithStaleAfter(50*time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go func() { _ = peripheral.Run(ctx, peripheralProvider) }()
	go func() { _ = central.Run(ctx, centralProvider) }()

	connStates := make(chan bool, 4)
	sub, err := centralNC.Subscribe(busapi.SubjectSplitConnState, func(msg *nats.Msg) {
		m, err := busapi.UnmarshalSplitConnState(msg.Data)
		require.NoError(t, err)
		connStates <- m.Connected
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = sub.Unsubscribe() })

	select {
	case connected := <-connStates:
		require.True(t, connected)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for connection-reached event")
	}
}

func TestNameReturnsConfiguredServiceName(t *testing.T) {
	s := New(WithServiceName("left-half-split"))
	require.Equal(t, "left-half-split", s.Name())
}
