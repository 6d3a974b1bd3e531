// SPDX-License-Identifier: BSD-3-Clause

package splitsrv

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/vialcore/vialcore/pkg/busapi"
	"github.com/vialcore/vialcore/pkg/klog"
	"github.com/vialcore/vialcore/pkg/splitproto"
	"github.com/vialcore/vialcore/service"
)

var _ service.Service = (*SplitSrv)(nil)

// SplitSrv relays key events, LED state, and liveness heartbeats between
// the two halves of a split keyboard over a pkg/splitproto Transport.
type SplitSrv struct {
	cfg    *config
	logger *slog.Logger
	nc     *nats.Conn

	transport splitproto.Transport
	closeTr   func() error

	mu          sync.Mutex
	lastSeen    time.Time
	lastReached bool
}

// New creates a SplitSrv with the given options applied over the defaults.
func New(opts ...Option) *SplitSrv {
	return &SplitSrv{cfg: newConfig(opts...)}
}

// Name implements service.Service.
func (s *SplitSrv) Name() string { return s.cfg.serviceName }

// Run relays messages over the configured Transport until ctx is canceled.
func (s *SplitSrv) Run(ctx context.Context, ipcConn nats.InProcessConnProvider) error {
	s.logger = klog.GetGlobalLogger().With("service", s.cfg.serviceName, "role", s.cfg.role)

	nc, err := nats.Connect("", nats.InProcessServer(ipcConn))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrNATSConnectFailed, err)
	}
	s.nc = nc
	defer nc.Drain() //nolint:errcheck

	if err := s.resolveTransport(nc); err != nil {
		return err
	}
	if s.closeTr != nil {
		defer s.closeTr() //nolint:errcheck
	}

	switch s.cfg.role {
	case RoleCentral:
		return s.runCentral(ctx)
	case RolePeripheral:
		return s.runPeripheral(ctx)
	default:
		return ErrUnknownRole
	}
}

// resolveTransport picks the already-injected Transport, or builds one
// from the configured UART device or NATS link subject pair.
func (s *SplitSrv) resolveTransport(nc *nats.Conn) error {
	if s.cfg.transport != nil {
		s.transport = s.cfg.transport
		return nil
	}
	if s.cfg.uartDevice != "" {
		t, closeFn, err := openUART(s.cfg.uartDevice, s.cfg.uartBaud)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrUARTOpenFailed, err)
		}
		s.transport = t
		s.closeTr = closeFn
		return nil
	}
	if s.cfg.natsSendSubject != "" && s.cfg.natsRecvSubject != "" {
		t, err := newNATSTransport(nc, s.cfg.natsSendSubject, s.cfg.natsRecvSubject)
		if err != nil {
			return err
		}
		s.transport = t
		s.closeTr = t.close
		return nil
	}
	return ErrNoTransport
}

// runPeripheral forwards locally observed key events to Central and applies
// whatever Central relays back (LED state, connection heartbeats).
func (s *SplitSrv) runPeripheral(ctx context.Context) error {
	keySub, err := s.nc.Subscribe(busapi.SubjectKeyEvent, func(msg *nats.Msg) {
		m, err := busapi.UnmarshalKeyEvent(msg.Data)
		if err != nil {
			return
		}
		if err := s.transport.Send(ctx, splitproto.Key(m.Event)); err != nil {
			s.logger.ErrorContext(ctx, "send key event to central failed", "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSubscribeFailed, err)
	}
	defer keySub.Unsubscribe() //nolint:errcheck

	var wg sync.WaitGroup
	wg.Add(2)
	go func() { defer wg.Done(); s.heartbeatLoop(ctx) }()
	go func() { defer wg.Done(); s.receiveLoop(ctx, s.handlePeripheralInbound) }()
	wg.Wait()

	return ctx.Err()
}

// runCentral re-publishes the peer's key events (offset-adjusted) onto the
// local bus and forwards the local LED indicator state to the peer.
func (s *SplitSrv) runCentral(ctx context.Context) error {
	ledSub, err := s.nc.Subscribe(busapi.SubjectLEDIndicator, func(msg *nats.Msg) {
		m, err := busapi.UnmarshalLEDIndicator(msg.Data)
		if err != nil {
			return
		}
		if err := s.transport.Send(ctx, splitproto.LedIndicator(m.Byte)); err != nil {
			s.logger.ErrorContext(ctx, "send led state to peripheral failed", "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSubscribeFailed, err)
	}
	defer ledSub.Unsubscribe() //nolint:errcheck

	var wg sync.WaitGroup
	wg.Add(2)
	go func() { defer wg.Done(); s.heartbeatLoop(ctx) }()
	go func() { defer wg.Done(); s.receiveLoop(ctx, s.handleCentralInbound) }()
	wg.Wait()

	return ctx.Err()
}

// heartbeatLoop periodically sends a KindConnectionState(true) message so
// the peer's staleness watchdog sees regular traffic even when no key
// events or LED changes are happening.
func (s *SplitSrv) heartbeatLoop(ctx context.Context) {
	ticker := time.NewTicker(s.cfg.heartbeatInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.transport.Send(ctx, splitproto.ConnectionState(true)); err != nil {
				s.logger.ErrorContext(ctx, "send heartbeat failed", "error", err)
			}
			s.checkStale(ctx)
		}
	}
}

// receiveLoop blocks on Transport.Receive, marks the peer as seen, and
// hands each message to handle.
func (s *SplitSrv) receiveLoop(ctx context.Context, handle func(context.Context, splitproto.SplitMessage)) {
	for {
		msg, err := s.transport.Receive(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			s.logger.ErrorContext(ctx, "receive from peer failed", "error", err)
			continue
		}
		s.markSeen()
		handle(ctx, msg)
	}
}

func (s *SplitSrv) handlePeripheralInbound(ctx context.Context, msg splitproto.SplitMessage) {
	switch msg.Kind {
	case splitproto.KindLedIndicator:
		data, err := busapi.LEDIndicatorMessage{Byte: msg.LEDState}.Marshal()
		if err != nil {
			return
		}
		if err := s.nc.Publish(busapi.SubjectLEDIndicator, data); err != nil {
			s.logger.ErrorContext(ctx, "republish led state failed", "error", err)
		}
	case splitproto.KindConnectionState, splitproto.KindSyncRequest:
		// Liveness bookkeeping already happened in receiveLoop; a sync
		// request has no persisted keymap state reachable over the split
		// link to resend (Vial configuration always flows through the
		// Central half's USB connection), so it is a no-op here.
	}
}

func (s *SplitSrv) handleCentralInbound(ctx context.Context, msg splitproto.SplitMessage) {
	switch msg.Kind {
	case splitproto.KindKey:
		ev := msg.Key
		ev.Row += s.cfg.rowOffset
		ev.Col += s.cfg.colOffset
		data, err := busapi.KeyEventMessage{Event: ev}.Marshal()
		if err != nil {
			return
		}
		if err := s.nc.Publish(busapi.SubjectKeyEvent, data); err != nil {
			s.logger.ErrorContext(ctx, "republish peripheral key event failed", "error", err)
		}
	case splitproto.KindConnectionState:
		data, err := busapi.SplitConnStateMessage{Connected: msg.Connected}.Marshal()
		if err != nil {
			return
		}
		if err := s.nc.Publish(busapi.SubjectSplitConnState, data); err != nil {
			s.logger.ErrorContext(ctx, "publish split connection state failed", "error", err)
		}
	case splitproto.KindSyncRequest:
		// No persisted state to replay over the split link; see the
		// matching case in handlePeripheralInbound.
	}
}

func (s *SplitSrv) markSeen() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSeen = time.Now()
}

// checkStale republishes SubjectSplitConnState only on a state transition,
// so a healthy link doesn't spam the bus every heartbeat tick.
func (s *SplitSrv) checkStale(ctx context.Context) {
	s.mu.Lock()
	reached := !s.lastSeen.IsZero() && time.Since(s.lastSeen) <= s.cfg.staleAfter
	changed := reached != s.lastReached
	s.lastReached = reached
	s.mu.Unlock()

	if !changed {
		return
	}
	data, err := busapi.SplitConnStateMessage{Connected: reached}.Marshal()
	if err != nil {
		return
	}
	if err := s.nc.Publish(busapi.SubjectSplitConnState, data); err != nil {
		s.logger.ErrorContext(ctx, "publish split connection state failed", "error", err)
	}
}
