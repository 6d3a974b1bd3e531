// SPDX-License-Identifier: BSD-3-Clause

package splitproto

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vialcore/vialcore/pkg/action"
)

// loopback pipes everything written back out to be read, letting a single
// StreamTransport round-trip messages with itself.
type loopback struct {
	buf bytes.Buffer
}

func (l *loopback) Write(p []byte) (int, error) { return l.buf.Write(p) }
func (l *loopback) Read(p []byte) (int, error)  { return l.buf.Read(p) }

func TestStreamTransportSendReceive(t *testing.T) {
	lb := &loopback{}
	tr := NewStreamTransport(lb)

	msg := Key(action.KeyEvent{Row: 1, Col: 1, Pressed: true})
	require.NoError(t, tr.Send(context.Background(), msg))

	got, err := tr.Receive(context.Background())
	require.NoError(t, err)
	require.Equal(t, msg, got)
}

func TestStreamTransportResynchronizesAfterGarbageByte(t *testing.T) {
	lb := &loopback{}
	tr := NewStreamTransport(lb)

	msg := SyncRequest()
	enc, err := msg.Encode()
	require.NoError(t, err)

	lb.buf.WriteByte(0x00) // stray byte before the frame
	lb.buf.Write(enc)

	got, err := tr.Receive(context.Background())
	require.NoError(t, err)
	require.Equal(t, msg, got)
}
