// SPDX-License-Identifier: BSD-3-Clause

package ipcbus

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats-server/v2/server"
	"github.com/nats-io/nats.go"

	"github.com/vialcore/vialcore/pkg/klog"
	"github.com/vialcore/vialcore/service"
)

var _ service.Service = (*IPCBus)(nil)

// IPCBus embeds a NATS server that carries the cross-service traffic
// between this keyboard's own services: KeyMap mutation events, LED
// state updates, and split-link connection-state broadcasts.
type IPCBus struct {
	cfg    *config
	srv    *server.Server
	logger *slog.Logger
}

// New creates an IPCBus with the given options applied over the defaults.
func New(opts ...Option) *IPCBus {
	return &IPCBus{
		cfg: newConfig(opts...),
	}
}

// Name implements service.Service.
func (s *IPCBus) Name() string {
	return s.cfg.serviceName
}

// Run starts the embedded NATS server and blocks until ctx is canceled.
// IPCBus provides the bus; it never consumes an existing connection, so
// a non-nil ipcConn is rejected.
func (s *IPCBus) Run(ctx context.Context, ipcConn nats.InProcessConnProvider) error {
	s.logger = klog.GetGlobalLogger().With("service", s.cfg.serviceName)
	s.logger.InfoContext(ctx, "starting ipc bus",
		"server_name", s.cfg.serverName,
		"jetstream_enabled", s.cfg.enableJetStream,
		"store_dir", s.cfg.storeDir)

	if ipcConn != nil {
		return ErrExistingConnProvided
	}

	if err := s.cfg.Validate(); err != nil {
		return err
	}

	ns, err := server.NewServer(s.cfg.ToServerOptions())
	if err != nil {
		return fmt.Errorf("%w: %w", ErrServerCreationFailed, err)
	}
	s.srv = ns
	s.srv.SetLoggerV2(klog.NewNATSLogger(s.logger), true, false, false)

	s.srv.Start()

	if !s.srv.ReadyForConnections(s.cfg.startupTimeout) {
		s.srv.Shutdown()
		return fmt.Errorf("%w: after %v", ErrServerTimeout, s.cfg.startupTimeout)
	}

	s.logger.InfoContext(ctx, "ipc bus ready", "server_id", s.srv.ID())

	<-ctx.Done()

	return s.shutdown(ctx)
}

// GetConnProvider returns a ConnProvider, blocking briefly for the server
// to come up if Run hasn't reached readiness yet.
func (s *IPCBus) GetConnProvider() *ConnProvider {
	deadline := time.Now().Add(s.cfg.startupTimeout)
	for s.srv == nil && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	return &ConnProvider{srv: s.srv}
}

func (s *IPCBus) shutdown(ctx context.Context) error {
	err := ctx.Err()

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.cfg.shutdownTimeout)
	defer cancel()

	if s.srv == nil {
		return err
	}

	s.logger.InfoContext(shutdownCtx, "shutting down ipc bus")
	s.srv.LameDuckShutdown()

	done := make(chan struct{})
	go func() {
		defer close(done)
		s.srv.Shutdown()
	}()

	select {
	case <-done:
		s.logger.InfoContext(shutdownCtx, "ipc bus shutdown complete")
	case <-shutdownCtx.Done():
		s.logger.WarnContext(shutdownCtx, "ipc bus shutdown timed out, forcing")
	}

	return err
}
