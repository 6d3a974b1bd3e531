// SPDX-License-Identifier: BSD-3-Clause

//go:build linux
// +build linux

package matrixsrv

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/vialcore/vialcore/pkg/busapi"
	"github.com/vialcore/vialcore/pkg/klog"
	"github.com/vialcore/vialcore/pkg/matrixio"
	"github.com/vialcore/vialcore/service"
)

var _ service.Service = (*MatrixSrv)(nil)

// MatrixSrv scans an electrical key matrix and publishes debounced
// KeyEvents onto the ipcbus.
type MatrixSrv struct {
	cfg    *config
	logger *slog.Logger
}

// New creates a MatrixSrv with the given options applied over the defaults.
func New(opts ...Option) *MatrixSrv {
	return &MatrixSrv{cfg: newConfig(opts...)}
}

// Name implements service.Service.
func (s *MatrixSrv) Name() string { return s.cfg.serviceName }

// Run opens the matrix, connects to the ipcbus, and scans until ctx is
// canceled, publishing one busapi.KeyEventMessage per debounced transition.
func (s *MatrixSrv) Run(ctx context.Context, ipcConn nats.InProcessConnProvider) error {
	s.logger = klog.GetGlobalLogger().With("service", s.cfg.serviceName)

	if s.cfg.matrixCfg == nil {
		return ErrNoMatrixConfig
	}

	m, err := matrixio.New(s.cfg.matrixCfg)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrMatrixOpenFailed, err)
	}
	defer m.Close()

	nc, err := nats.Connect("", nats.InProcessServer(ipcConn))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrNATSConnectFailed, err)
	}
	defer nc.Drain() //nolint:errcheck

	s.logger.InfoContext(ctx, "matrix scanning started", "chip", s.cfg.matrixCfg.ChipPath)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		ev, ok, err := m.Scan(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			s.logger.ErrorContext(ctx, "scan failed", "error", err)
			continue
		}
		if !ok {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(s.cfg.pollInterval):
			}
			continue
		}

		payload, err := busapi.KeyEventMessage{Event: ev}.Marshal()
		if err != nil {
			s.logger.ErrorContext(ctx, "marshal key event failed", "error", err)
			continue
		}
		if err := nc.Publish(busapi.SubjectKeyEvent, payload); err != nil {
			s.logger.ErrorContext(ctx, "publish key event failed", "error", err)
		}
	}
}
