// SPDX-License-Identifier: BSD-3-Clause

package vialsrv

import (
	"context"
	"encoding/binary"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/vialcore/vialcore/pkg/action"
	"github.com/vialcore/vialcore/pkg/busapi"
	"github.com/vialcore/vialcore/pkg/flashsim"
	"github.com/vialcore/vialcore/pkg/hidreport"
	"github.com/vialcore/vialcore/pkg/klog"
	"github.com/vialcore/vialcore/pkg/vialproto"
	"github.com/vialcore/vialcore/service"
)

var _ service.Service = (*VialSrv)(nil)

// VialSrv answers Vial/VIA raw HID requests against a shared KeyMap.
type VialSrv struct {
	cfg    *config
	logger *slog.Logger
	nc     *nats.Conn

	unlock *vialproto.Unlock

	mu            sync.Mutex
	layoutOptions uint32
	macroBuffer   []byte

	appended chan busapi.StorageAppendedMessage
}

// New creates a VialSrv with the given options applied over the defaults.
func New(opts ...Option) *VialSrv {
	return &VialSrv{cfg: newConfig(opts...), unlock: vialproto.NewUnlock()}
}

// Name implements service.Service.
func (s *VialSrv) Name() string { return s.cfg.serviceName }

// Run dispatches every busapi.SubjectVialRequest frame against the
// configured KeyMap until ctx is canceled.
func (s *VialSrv) Run(ctx context.Context, ipcConn nats.InProcessConnProvider) error {
	s.logger = klog.GetGlobalLogger().With("service", s.cfg.serviceName)

	if s.cfg.km == nil {
		return ErrNoKeyMap
	}

	nc, err := nats.Connect("", nats.InProcessServer(ipcConn))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrNATSConnectFailed, err)
	}
	s.nc = nc
	defer nc.Drain() //nolint:errcheck

	s.appended = make(chan busapi.StorageAppendedMessage, 8)
	appendedSub, err := nc.Subscribe(busapi.SubjectStorageAppended, func(msg *nats.Msg) {
		m, err := busapi.UnmarshalStorageAppended(msg.Data)
		if err != nil {
			s.logger.ErrorContext(ctx, "unmarshal storage appended failed", "error", err)
			return
		}
		select {
		case s.appended <- m:
		default:
		}
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSubscribeFailed, err)
	}
	defer appendedSub.Unsubscribe() //nolint:errcheck

	keyEventSub, err := nc.Subscribe(busapi.SubjectKeyEvent, func(msg *nats.Msg) {
		m, err := busapi.UnmarshalKeyEvent(msg.Data)
		if err != nil {
			return
		}
		s.unlock.Observe(vialproto.MatrixPos{Row: m.Event.Row, Col: m.Event.Col}, m.Event.Pressed)
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSubscribeFailed, err)
	}
	defer keyEventSub.Unsubscribe() //nolint:errcheck

	requestSub, err := nc.Subscribe(busapi.SubjectVialRequest, func(msg *nats.Msg) {
		reply := s.handleRequest(ctx, msg.Data)
		if err := msg.Respond(reply); err != nil {
			s.logger.ErrorContext(ctx, "respond to vial request failed", "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSubscribeFailed, err)
	}
	defer requestSub.Unsubscribe() //nolint:errcheck

	s.logger.InfoContext(ctx, "vial dispatcher ready")

	<-ctx.Done()
	return ctx.Err()
}

// handleRequest decodes one 32-byte Vial raw HID frame and returns the
// 32-byte reply frame.
func (s *VialSrv) handleRequest(ctx context.Context, data []byte) []byte {
	reply, err := s.dispatch(ctx, data)
	if err != nil {
		unknown, _ := vialproto.UnknownCommandReply()
		return unknown[:]
	}
	return reply[:]
}

func (s *VialSrv) dispatch(ctx context.Context, data []byte) (hidreport.VialFrame, error) {
	if len(data) != hidreport.VialFrameSize {
		return hidreport.VialFrame{}, fmt.Errorf("vialsrv: request of %d bytes", len(data))
	}
	var frame hidreport.VialFrame
	copy(frame[:], data)

	cmd := vialproto.Command(frame.Command())
	payload := frame.Payload()

	if cmd == vialproto.CmdViaVialPrefix {
		if len(payload) == 0 {
			return hidreport.VialFrame{}, fmt.Errorf("vialsrv: empty vial-prefixed payload")
		}
		return s.dispatchVial(ctx, vialproto.Command(payload[0]), payload[1:])
	}

	switch cmd {
	case vialproto.CmdVIAGetProtocolVersion:
		return vialproto.ProtocolVersionReply()
	case vialproto.CmdVIAGetKeyboardValue:
		return s.handleGetKeyboardValue(payload)
	case vialproto.CmdVIASetKeyboardValue:
		return s.handleSetKeyboardValue(ctx, payload)
	case vialproto.CmdVIADynamicKeymapGet:
		return s.handleDynamicKeymapGet(payload)
	case vialproto.CmdVIADynamicKeymapSet:
		return s.handleDynamicKeymapSet(ctx, payload)
	case vialproto.CmdVIADynamicKeymapReset:
		return s.handleDynamicKeymapReset(ctx)
	case vialproto.CmdVIALayerCount:
		return s.handleLayerCount()
	case vialproto.CmdVIAMacroGetBufferSize:
		return s.handleMacroGetBufferSize()
	case vialproto.CmdVIAMacroGetBuffer:
		return s.handleMacroGetBuffer(payload)
	case vialproto.CmdVIAMacroSetBuffer:
		return s.handleMacroSetBuffer(payload)
	default:
		return hidreport.VialFrame{}, fmt.Errorf("vialsrv: unhandled command 0x%02x", byte(cmd))
	}
}

func (s *VialSrv) dispatchVial(ctx context.Context, cmd vialproto.Command, payload []byte) (hidreport.VialFrame, error) {
	switch cmd {
	case vialproto.CmdGetKeyboardID:
		return vialproto.KeyboardIDReply(s.cfg.keyboardID)
	case vialproto.CmdGetSize:
		return vialproto.SizeReply(s.cfg.keymapDef)
	case vialproto.CmdGetDef:
		if len(payload) < 4 {
			return hidreport.VialFrame{}, fmt.Errorf("vialsrv: get_def payload too short")
		}
		offset := binary.LittleEndian.Uint32(payload[:4])
		return vialproto.DefReply(s.cfg.keymapDef, offset)
	case vialproto.CmdGetUnlockStatus, vialproto.CmdUnlockPoll:
		state, held, total := s.unlock.Poll()
		return vialproto.UnlockStatusReply(state, held, total)
	case vialproto.CmdUnlockStart:
		rows, cols := s.matrixDims()
		if err := s.unlock.Start(decodeUnlockBitmap(payload, rows, cols)); err != nil {
			return hidreport.VialFrame{}, err
		}
		state, held, total := s.unlock.Poll()
		return vialproto.UnlockStatusReply(state, held, total)
	case vialproto.CmdLock:
		if err := s.unlock.Lock(); err != nil {
			return hidreport.VialFrame{}, err
		}
		state, held, total := s.unlock.Poll()
		return vialproto.UnlockStatusReply(state, held, total)
	case vialproto.CmdDynamicEntryOp:
		// Tap dance, combo, and key override entries have no runtime
		// representation in pkg/action yet, so this acks without storing
		// anything rather than rejecting the request outright.
		return hidreport.NewVialFrame(byte(vialproto.CmdDynamicEntryOp), nil)
	default:
		return hidreport.VialFrame{}, fmt.Errorf("vialsrv: unhandled vial command 0x%02x", byte(cmd))
	}
}

func (s *VialSrv) matrixDims() (rows, cols int) {
	_, rows, cols = s.cfg.km.Dimensions()
	return rows, cols
}

// decodeUnlockBitmap unpacks a row-major bit-per-key matrix position bitmap.
func decodeUnlockBitmap(payload []byte, rows, cols int) []vialproto.MatrixPos {
	var required []vialproto.MatrixPos
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			bit := row*cols + col
			byteIdx, bitIdx := bit/8, bit%8
			if byteIdx >= len(payload) {
				continue
			}
			if payload[byteIdx]&(1<<uint(bitIdx)) != 0 {
				required = append(required, vialproto.MatrixPos{Row: byte(row), Col: byte(col)})
			}
		}
	}
	return required
}

func (s *VialSrv) handleGetKeyboardValue(payload []byte) (hidreport.VialFrame, error) {
	if len(payload) < 1 {
		return hidreport.VialFrame{}, fmt.Errorf("vialsrv: get_keyboard_value payload too short")
	}
	switch vialproto.KeyboardValueID(payload[0]) {
	case vialproto.KeyboardValueLayoutOptions:
		s.mu.Lock()
		v := s.layoutOptions
		s.mu.Unlock()
		var b [4]byte
		binary.LittleEndian.PutUint32(b[:], v)
		return hidreport.NewVialFrame(byte(vialproto.CmdVIAGetKeyboardValue), append([]byte{payload[0]}, b[:]...))
	default:
		return hidreport.VialFrame{}, fmt.Errorf("vialsrv: unknown keyboard value id 0x%02x", payload[0])
	}
}

func (s *VialSrv) handleSetKeyboardValue(ctx context.Context, payload []byte) (hidreport.VialFrame, error) {
	if len(payload) < 5 {
		return hidreport.VialFrame{}, fmt.Errorf("vialsrv: set_keyboard_value payload too short")
	}
	switch vialproto.KeyboardValueID(payload[0]) {
	case vialproto.KeyboardValueLayoutOptions:
		v := binary.LittleEndian.Uint32(payload[1:5])
		s.mu.Lock()
		s.layoutOptions = v
		s.mu.Unlock()

		var rec [4]byte
		binary.LittleEndian.PutUint32(rec[:], v)
		s.mutateAndAwait(ctx, flashsim.KindLayoutOptions, rec[:])
		return hidreport.NewVialFrame(byte(vialproto.CmdVIASetKeyboardValue), nil)
	default:
		return hidreport.VialFrame{}, fmt.Errorf("vialsrv: unknown keyboard value id 0x%02x", payload[0])
	}
}

func (s *VialSrv) handleDynamicKeymapGet(payload []byte) (hidreport.VialFrame, error) {
	if len(payload) < 3 {
		return hidreport.VialFrame{}, fmt.Errorf("vialsrv: dynamic_keymap_get payload too short")
	}
	a, err := s.cfg.km.GetActionAt(payload[0], payload[1], payload[2])
	if err != nil {
		return hidreport.VialFrame{}, err
	}
	w := vialproto.EncodeKeyAction(a)
	return hidreport.NewVialFrame(byte(vialproto.CmdVIADynamicKeymapGet), w[:])
}

func (s *VialSrv) handleDynamicKeymapSet(ctx context.Context, payload []byte) (hidreport.VialFrame, error) {
	if len(payload) < 7 {
		return hidreport.VialFrame{}, fmt.Errorf("vialsrv: dynamic_keymap_set payload too short")
	}
	layer, row, col := payload[0], payload[1], payload[2]
	var w vialproto.WireKeycode
	copy(w[:], payload[3:7])
	a, err := vialproto.DecodeKeyAction(w)
	if err != nil {
		return hidreport.VialFrame{}, err
	}
	if err := s.cfg.km.SetAction(layer, row, col, a); err != nil {
		return hidreport.VialFrame{}, err
	}
	s.mutateAndAwait(ctx, flashsim.KindKeymapCell, vialproto.EncodeKeymapCellRecord(layer, row, col, a))
	return hidreport.NewVialFrame(byte(vialproto.CmdVIADynamicKeymapSet), nil)
}

func (s *VialSrv) handleDynamicKeymapReset(ctx context.Context) (hidreport.VialFrame, error) {
	layers, rows, cols := s.cfg.km.Dimensions()
	for l := 0; l < layers; l++ {
		for r := 0; r < rows; r++ {
			for c := 0; c < cols; c++ {
				a := action.Transparent()
				if l == 0 {
					a = action.No()
				}
				if err := s.cfg.km.SetAction(byte(l), byte(r), byte(c), a); err != nil {
					return hidreport.VialFrame{}, err
				}
				s.mutateAndAwait(ctx, flashsim.KindKeymapCell, vialproto.EncodeKeymapCellRecord(byte(l), byte(r), byte(c), a))
			}
		}
	}
	return hidreport.NewVialFrame(byte(vialproto.CmdVIADynamicKeymapReset), nil)
}

func (s *VialSrv) handleLayerCount() (hidreport.VialFrame, error) {
	layers, _, _ := s.cfg.km.Dimensions()
	return hidreport.NewVialFrame(byte(vialproto.CmdVIALayerCount), []byte{byte(layers)})
}

func (s *VialSrv) handleMacroGetBufferSize() (hidreport.VialFrame, error) {
	s.mu.Lock()
	n := len(s.macroBuffer)
	s.mu.Unlock()
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], uint16(n))
	return hidreport.NewVialFrame(byte(vialproto.CmdVIAMacroGetBufferSize), b[:])
}

func (s *VialSrv) handleMacroGetBuffer(payload []byte) (hidreport.VialFrame, error) {
	if len(payload) < 4 {
		return hidreport.VialFrame{}, fmt.Errorf("vialsrv: macro_get_buffer payload too short")
	}
	offset := binary.LittleEndian.Uint16(payload[0:2])
	size := payload[2]

	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]byte, size)
	if int(offset) < len(s.macroBuffer) {
		copy(out, s.macroBuffer[offset:])
	}
	return hidreport.NewVialFrame(byte(vialproto.CmdVIAMacroGetBuffer), out)
}

func (s *VialSrv) handleMacroSetBuffer(payload []byte) (hidreport.VialFrame, error) {
	if len(payload) < 4 {
		return hidreport.VialFrame{}, fmt.Errorf("vialsrv: macro_set_buffer payload too short")
	}
	offset := binary.LittleEndian.Uint16(payload[0:2])
	data := payload[4:]

	s.mu.Lock()
	if need := int(offset) + len(data); need > len(s.macroBuffer) {
		grown := make([]byte, need)
		copy(grown, s.macroBuffer)
		s.macroBuffer = grown
	}
	copy(s.macroBuffer[offset:], data)
	s.mu.Unlock()

	return hidreport.NewVialFrame(byte(vialproto.CmdVIAMacroSetBuffer), nil)
}

// mutateAndAwait publishes a storage mutation and blocks until storagesrv
// confirms a matching append or s.cfg.storageTimeout elapses, whichever
// comes first. Replies are sent either way: a storage hiccup must not wedge
// the Vial channel, only risk the host seeing a change before it's durable.
func (s *VialSrv) mutateAndAwait(ctx context.Context, kind flashsim.Kind, payload []byte) {
	data, err := busapi.StorageMutateMessage{Kind: byte(kind), Payload: payload}.Marshal()
	if err != nil {
		s.logger.ErrorContext(ctx, "marshal storage mutate failed", "error", err)
		return
	}
	if err := s.nc.Publish(busapi.SubjectStorageMutate, data); err != nil {
		s.logger.ErrorContext(ctx, "publish storage mutate failed", "error", err)
		return
	}

	timeout := time.NewTimer(s.cfg.storageTimeout)
	defer timeout.Stop()
	for {
		select {
		case m := <-s.appended:
			if m.Kind == byte(kind) {
				return
			}
		case <-timeout.C:
			s.logger.WarnContext(ctx, "timed out waiting for storage append", "kind", kind)
			return
		case <-ctx.Done():
			return
		}
	}
}
