// SPDX-License-Identifier: BSD-3-Clause

package process

import (
	"context"
	"fmt"

	"cirello.io/oversight/v2"
	"github.com/nats-io/nats.go"
	"github.com/vialcore/vialcore/service"
)

// New creates an oversight.ChildProcess that wraps a service.Service. The
// returned function runs the service with the provided context and IPC
// connection, recovering from panics and turning them into errors that
// carry the service name so the supervisor's restart log says who died.
func New(s service.Service, ipcConn nats.InProcessConnProvider) oversight.ChildProcess {
	return func(ctx context.Context) (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("%w: %s: %v", ErrServicePanic, s.Name(), r)
			}
		}()

		return s.Run(ctx, ipcConn)
	}
}
