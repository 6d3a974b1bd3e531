// SPDX-License-Identifier: BSD-3-Clause

package ipcbus

import (
	"net"
	"time"

	"github.com/nats-io/nats-server/v2/server"
)

// ConnProvider wraps an embedded NATS server, handing out in-process
// connections to services that need to publish or subscribe without
// going over the network.
type ConnProvider struct {
	srv *server.Server
}

// InProcessConn blocks, polling briefly, until the server is ready for
// connections or timeout elapses.
func (p *ConnProvider) InProcessConn() (net.Conn, error) {
	if p.srv == nil {
		return nil, ErrConnectionNotAvailable
	}
	if !p.srv.ReadyForConnections(5 * time.Second) {
		return nil, ErrServerNotReady
	}
	conn, err := p.srv.InProcessConn()
	if err != nil {
		return nil, ErrInProcessConnFailed
	}
	return conn, nil
}
