// SPDX-License-Identifier: BSD-3-Clause

//go:build linux
// +build linux

package lightsrv

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/nats-io/nats.go"
	"github.com/warthog618/go-gpiocdev"

	"github.com/vialcore/vialcore/pkg/busapi"
	"github.com/vialcore/vialcore/pkg/gpio"
	"github.com/vialcore/vialcore/pkg/hidreport"
	"github.com/vialcore/vialcore/pkg/klog"
	"github.com/vialcore/vialcore/service"
)

var _ service.Service = (*LightSrv)(nil)

// LightSrv drives GPIO indicator LEDs from the host's HID LED output report.
type LightSrv struct {
	cfg    *config
	logger *slog.Logger

	lines map[Indicator]lineHandle
}

type lineHandle struct {
	line      *gpiocdev.Line
	activeLow bool
}

// New creates a LightSrv with the given options applied over the defaults.
func New(opts ...Option) *LightSrv {
	return &LightSrv{cfg: newConfig(opts...)}
}

// Name implements service.Service.
func (s *LightSrv) Name() string { return s.cfg.serviceName }

// Run requests every configured GPIO line and then applies each
// busapi.SubjectLEDIndicator update to those lines until ctx is canceled.
func (s *LightSrv) Run(ctx context.Context, ipcConn nats.InProcessConnProvider) error {
	s.logger = klog.GetGlobalLogger().With("service", s.cfg.serviceName)

	if err := s.requestLines(); err != nil {
		return fmt.Errorf("%w: %w", ErrLineRequestFailed, err)
	}
	defer s.closeLines()

	nc, err := nats.Connect("", nats.InProcessServer(ipcConn))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrNATSConnectFailed, err)
	}
	defer nc.Drain() //nolint:errcheck

	sub, err := nc.Subscribe(busapi.SubjectLEDIndicator, func(msg *nats.Msg) {
		m, err := busapi.UnmarshalLEDIndicator(msg.Data)
		if err != nil {
			s.logger.ErrorContext(ctx, "unmarshal led indicator failed", "error", err)
			return
		}
		s.apply(ctx, hidreport.DecodeLEDIndicator(m.Byte))
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSubscribeFailed, err)
	}
	defer sub.Unsubscribe() //nolint:errcheck

	s.logger.InfoContext(ctx, "led indicator lines ready", "count", len(s.lines))

	<-ctx.Done()
	return ctx.Err()
}

func (s *LightSrv) requestLines() error {
	s.lines = make(map[Indicator]lineHandle, len(s.cfg.lines))
	for indicator, spec := range s.cfg.lines {
		line, err := gpio.RequestLine(spec.Chip, spec.Line,
			gpio.WithDirection(gpio.DirectionOutput),
			gpio.WithConsumer(s.cfg.serviceName))
		if err != nil {
			s.closeLines()
			return fmt.Errorf("%s on %s: %w", spec.Line, spec.Chip, err)
		}
		s.lines[indicator] = lineHandle{line: line, activeLow: spec.ActiveLow}
	}
	return nil
}

func (s *LightSrv) closeLines() {
	for _, h := range s.lines {
		h.line.Close() //nolint:errcheck
	}
}

func (s *LightSrv) apply(ctx context.Context, ind hidreport.LEDIndicator) {
	s.setLine(ctx, IndicatorNumLock, ind.NumLock)
	s.setLine(ctx, IndicatorCapsLock, ind.CapsLock)
	s.setLine(ctx, IndicatorScrollLock, ind.ScrollLock)
	s.setLine(ctx, IndicatorCompose, ind.Compose)
	s.setLine(ctx, IndicatorKana, ind.Kana)
}

func (s *LightSrv) setLine(ctx context.Context, indicator Indicator, on bool) {
	h, ok := s.lines[indicator]
	if !ok {
		return
	}
	v := 0
	if on != h.activeLow {
		v = 1
	}
	if err := h.line.SetValue(v); err != nil {
		s.logger.ErrorContext(ctx, "set led line failed", "indicator", indicator, "error", err)
	}
}
