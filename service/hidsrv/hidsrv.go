// SPDX-License-Identifier: BSD-3-Clause

//go:build linux
// +build linux

package hidsrv

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/vialcore/vialcore/pkg/busapi"
	"github.com/vialcore/vialcore/pkg/klog"
	"github.com/vialcore/vialcore/pkg/usbhid"
	"github.com/vialcore/vialcore/service"
)

var _ service.Service = (*HIDSrv)(nil)

// HIDSrv bridges the ipcbus and the kernel's USB HID gadget.
type HIDSrv struct {
	cfg    *config
	logger *slog.Logger
}

// New creates an HIDSrv with the given options applied over the defaults.
func New(opts ...Option) *HIDSrv {
	return &HIDSrv{cfg: newConfig(opts...)}
}

// Name implements service.Service.
func (s *HIDSrv) Name() string { return s.cfg.serviceName }

// Run optionally sets up the USB gadget, then forwards every
// busapi.SubjectHIDReport message to the matching hidg device and polls
// the keyboard function's LED output report until ctx is canceled.
func (s *HIDSrv) Run(ctx context.Context, ipcConn nats.InProcessConnProvider) error {
	s.logger = klog.GetGlobalLogger().With("service", s.cfg.serviceName)

	if s.cfg.gadgetCfg != nil {
		if err := s.setUpGadget(); err != nil {
			return fmt.Errorf("%w: %w", ErrGadgetSetupFailed, err)
		}
		defer s.tearDownGadget()
	}

	nc, err := nats.Connect("", nats.InProcessServer(ipcConn))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrNATSConnectFailed, err)
	}
	defer nc.Drain() //nolint:errcheck

	sub, err := nc.Subscribe(busapi.SubjectHIDReport, func(msg *nats.Msg) {
		m, err := busapi.UnmarshalHIDReport(msg.Data)
		if err != nil {
			s.logger.ErrorContext(ctx, "unmarshal hid report failed", "error", err)
			return
		}
		s.writeReport(ctx, m.Report)
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSubscribeFailed, err)
	}
	defer sub.Unsubscribe() //nolint:errcheck

	s.logger.InfoContext(ctx, "hid gadget bridge ready",
		"keyboard_device", s.cfg.keyboardDevice, "extra_device", s.cfg.extraDevice,
		"vial_device", s.cfg.vialDevice)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() { defer wg.Done(); s.pollLEDs(ctx, nc) }()
	go func() { defer wg.Done(); s.pollVial(ctx, nc) }()
	wg.Wait()

	return ctx.Err()
}

func (s *HIDSrv) setUpGadget() error {
	if err := usbhid.CreateGadget(s.cfg.gadgetCfg); err != nil && err != usbhid.ErrGadgetExists {
		return err
	}
	return usbhid.BindGadget(s.cfg.gadgetCfg.Name)
}

func (s *HIDSrv) tearDownGadget() {
	if err := usbhid.UnbindGadget(s.cfg.gadgetCfg.Name); err != nil {
		s.logger.Error("unbind gadget failed", "error", err)
	}
	if err := usbhid.DestroyGadget(s.cfg.gadgetCfg.Name); err != nil {
		s.logger.Error("destroy gadget failed", "error", err)
	}
}

// writeReport routes a pre-marshaled report to the keyboard device if it
// is the 8-byte boot report, otherwise to the composite extra device.
func (s *HIDSrv) writeReport(ctx context.Context, report []byte) {
	device := s.cfg.extraDevice
	if len(report) == 8 {
		device = s.cfg.keyboardDevice
	}
	if err := usbhid.WriteReport(device, report); err != nil {
		s.logger.ErrorContext(ctx, "write hid report failed", "device", device, "error", err)
	}
}

func (s *HIDSrv) pollLEDs(ctx context.Context, nc *nats.Conn) {
	var last byte
	haveLast := false

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		b, err := usbhid.ReadOutputReport(s.cfg.keyboardDevice)
		switch {
		case err == usbhid.ErrOperationTimeout:
			// No LED update pending; normal between host indicator changes.
		case err != nil:
			s.logger.ErrorContext(ctx, "read led report failed", "error", err)
		case !haveLast || b != last:
			last, haveLast = b, true
			s.publishLED(ctx, nc, b)
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(s.cfg.ledPollInterval):
		}
	}
}

// pollVial reads one Vial raw HID request frame at a time from the vial
// device, forwards it to vialsrv as a NATS request, and writes the reply
// frame back to the host. A request that vialsrv never answers is dropped;
// the host's own timeout/retry handles that case.
func (s *HIDSrv) pollVial(ctx context.Context, nc *nats.Conn) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		frame, err := usbhid.ReadVialFrame(s.cfg.vialDevice)
		switch {
		case err == usbhid.ErrOperationTimeout:
			// No request pending; normal between host-initiated commands.
		case err != nil:
			s.logger.ErrorContext(ctx, "read vial frame failed", "error", err)
		default:
			s.forwardVialFrame(ctx, nc, frame)
		}
	}
}

func (s *HIDSrv) forwardVialFrame(ctx context.Context, nc *nats.Conn, frame [32]byte) {
	reply, err := nc.Request(busapi.SubjectVialRequest, frame[:], s.cfg.vialTimeout)
	if err != nil {
		s.logger.ErrorContext(ctx, "vial request forwarding failed", "error", fmt.Errorf("%w: %w", ErrVialRequestFailed, err))
		return
	}
	if err := usbhid.WriteReport(s.cfg.vialDevice, reply.Data); err != nil {
		s.logger.ErrorContext(ctx, "write vial reply failed", "error", err)
	}
}

func (s *HIDSrv) publishLED(ctx context.Context, nc *nats.Conn, b byte) {
	payload, err := busapi.LEDIndicatorMessage{Byte: b}.Marshal()
	if err != nil {
		s.logger.ErrorContext(ctx, "marshal led indicator failed", "error", err)
		return
	}
	if err := nc.Publish(busapi.SubjectLEDIndicator, payload); err != nil {
		s.logger.ErrorContext(ctx, "publish led indicator failed", "error", err)
	}
}
