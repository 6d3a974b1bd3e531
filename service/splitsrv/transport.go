// SPDX-License-Identifier: BSD-3-Clause

package splitsrv

import (
	"context"
	"fmt"

	"github.com/nats-io/nats.go"
	"go.bug.st/serial"

	"github.com/vialcore/vialcore/pkg/splitproto"
)

// openUART dials a serial device and wraps it as a splitproto.Transport via
// StreamTransport's byte-stream framing.
func openUART(device string, baud int) (splitproto.Transport, func() error, error) {
	mode := &serial.Mode{BaudRate: baud}
	port, err := serial.Open(device, mode)
	if err != nil {
		return nil, nil, err
	}
	return splitproto.NewStreamTransport(port), port.Close, nil
}

// natsTransport adapts a pair of ipcbus subjects into a splitproto.Transport:
// each NATS message carries exactly one encoded frame, so unlike a byte
// stream there is no resynchronization to do — NATS already preserves
// message boundaries.
type natsTransport struct {
	nc   *nats.Conn
	send string
	sub  *nats.Subscription
	msgs chan splitproto.SplitMessage
}

func newNATSTransport(nc *nats.Conn, sendSubject, recvSubject string) (*natsTransport, error) {
	t := &natsTransport{
		nc:   nc,
		send: sendSubject,
		msgs: make(chan splitproto.SplitMessage, 32),
	}
	sub, err := nc.Subscribe(recvSubject, func(msg *nats.Msg) {
		m, _, err := splitproto.DecodeMessage(msg.Data)
		if err != nil {
			return
		}
		select {
		case t.msgs <- m:
		default:
		}
	})
	if err != nil {
		return nil, fmt.Errorf("splitsrv: subscribe link subject: %w", err)
	}
	t.sub = sub
	return t, nil
}

func (t *natsTransport) Send(_ context.Context, msg splitproto.SplitMessage) error {
	data, err := msg.Encode()
	if err != nil {
		return err
	}
	return t.nc.Publish(t.send, data)
}

func (t *natsTransport) Receive(ctx context.Context) (splitproto.SplitMessage, error) {
	select {
	case m := <-t.msgs:
		return m, nil
	case <-ctx.Done():
		return splitproto.SplitMessage{}, ctx.Err()
	}
}

func (t *natsTransport) close() error {
	return t.sub.Unsubscribe()
}
