// SPDX-License-Identifier: BSD-3-Clause

//go:build linux
// +build linux

package storagesrv

import (
	"context"
	"encoding/binary"
	"fmt"
	"log/slog"
	"sync"

	"github.com/nats-io/nats.go"

	"github.com/vialcore/vialcore/pkg/busapi"
	"github.com/vialcore/vialcore/pkg/flashsim"
	"github.com/vialcore/vialcore/pkg/klog"
	"github.com/vialcore/vialcore/pkg/vialproto"
	"github.com/vialcore/vialcore/service"
)

var _ service.Service = (*StorageSrv)(nil)

// StorageSrv owns the only *flashsim.Log handle, replays it into a shared
// KeyMap at startup, and serializes every SubjectStorageMutate message
// behind its single subscription goroutine so Append/SnapshotIfNeeded are
// never called concurrently.
type StorageSrv struct {
	cfg    *config
	logger *slog.Logger
	log    *flashsim.Log
	nc     *nats.Conn

	// mu guards the in-memory mirror of non-KeyMap record kinds, needed to
	// rebuild a consolidated Snapshot payload on compaction. KindKeymapCell
	// state lives in cfg.km itself, which is always the live source of truth.
	mu            sync.Mutex
	layoutOptions uint32
	macroBuffer   []byte
	configBlob    []byte
}

// New creates a StorageSrv with the given options applied over the defaults.
func New(opts ...Option) *StorageSrv {
	return &StorageSrv{cfg: newConfig(opts...)}
}

// Name implements service.Service.
func (s *StorageSrv) Name() string { return s.cfg.serviceName }

// Run opens the flash log, replays it into the configured KeyMap, then
// serializes incoming mutations until ctx is canceled.
func (s *StorageSrv) Run(ctx context.Context, ipcConn nats.InProcessConnProvider) error {
	s.logger = klog.GetGlobalLogger().With("service", s.cfg.serviceName)

	if s.cfg.km == nil {
		return ErrNoKeyMap
	}

	fscfg := flashsim.NewConfig(
		flashsim.WithDir(s.cfg.dir),
		flashsim.WithNumSectors(s.cfg.numSectors),
		flashsim.WithSectorSize(s.cfg.sectorSize),
		flashsim.WithMinFreeBytes(s.cfg.minFree),
	)
	log, err := flashsim.Open(fscfg)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrLogOpenFailed, err)
	}
	s.log = log
	defer s.log.Close() //nolint:errcheck

	if err := s.log.Load(s.applyRecord); err != nil {
		return fmt.Errorf("%w: %w", ErrReplayFailed, err)
	}

	nc, err := nats.Connect("", nats.InProcessServer(ipcConn))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrNATSConnectFailed, err)
	}
	s.nc = nc
	defer nc.Drain() //nolint:errcheck

	mutateSub, err := nc.Subscribe(busapi.SubjectStorageMutate, func(msg *nats.Msg) {
		s.handleMutate(ctx, msg.Data)
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSubscribeFailed, err)
	}
	defer mutateSub.Unsubscribe() //nolint:errcheck

	s.logger.InfoContext(ctx, "storage ready", "dir", s.cfg.dir)

	<-ctx.Done()
	return ctx.Err()
}

// applyRecord replays one record from the flash log at startup. KindKeymapCell
// writes directly into the shared KeyMap; every other kind seeds this
// service's own mirror used to rebuild a Snapshot payload later.
func (s *StorageSrv) applyRecord(rec flashsim.Record) error {
	switch rec.Kind {
	case flashsim.KindKeymapCell:
		layer, row, col, a, err := vialproto.DecodeKeymapCellRecord(rec.Payload)
		if err != nil {
			return err
		}
		return s.cfg.km.SetAction(layer, row, col, a)
	case flashsim.KindLayoutOptions:
		if len(rec.Payload) != 4 {
			return fmt.Errorf("storagesrv: layout options record of %d bytes", len(rec.Payload))
		}
		s.layoutOptions = binary.LittleEndian.Uint32(rec.Payload)
	case flashsim.KindMacroEntry:
		s.macroBuffer = append([]byte(nil), rec.Payload...)
	case flashsim.KindConfig:
		s.configBlob = append([]byte(nil), rec.Payload...)
	}
	return nil
}

// handleMutate mirrors the incoming record's state, rotates the log first
// if it is nearly full (flashsim.Log's documented compact-before-append
// contract), appends the record unless a rotation already folded it into
// the fresh snapshot, and republishes SubjectStorageAppended either way.
func (s *StorageSrv) handleMutate(ctx context.Context, data []byte) {
	m, err := busapi.UnmarshalStorageMutate(data)
	if err != nil {
		s.logger.ErrorContext(ctx, "unmarshal storage mutate failed", "error", err)
		return
	}
	kind := flashsim.Kind(m.Kind)
	rec := flashsim.Record{Kind: kind, Payload: m.Payload}

	s.mu.Lock()
	s.mirrorLocked(kind, m.Payload)
	s.mu.Unlock()

	folded, err := s.rotateIfNeeded(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "storage rotation failed", "error", err)
		return
	}
	if !folded {
		if err := s.log.Append(rec); err != nil {
			s.logger.ErrorContext(ctx, "storage append failed", "error", err, "kind", kind)
			return
		}
	}

	s.publishAppended(ctx, kind)
}

func (s *StorageSrv) mirrorLocked(kind flashsim.Kind, payload []byte) {
	switch kind {
	case flashsim.KindLayoutOptions:
		if len(payload) == 4 {
			s.layoutOptions = binary.LittleEndian.Uint32(payload)
		}
	case flashsim.KindMacroEntry:
		s.macroBuffer = append([]byte(nil), payload...)
	case flashsim.KindConfig:
		s.configBlob = append([]byte(nil), payload...)
	}
}

// rotateIfNeeded snapshots the active sector when nearly full, building the
// payload from currently-live state (the KeyMap plus this service's mirrors,
// already updated by the caller) so the just-applied mutation is captured
// even though it is never appended as its own record in that case.
func (s *StorageSrv) rotateIfNeeded(ctx context.Context) (folded bool, err error) {
	if !s.log.NeedsCompaction() {
		return false, nil
	}
	payload := s.buildSnapshotPayload()
	rotated, err := s.log.SnapshotIfNeeded(payload)
	if err != nil {
		return false, err
	}
	if rotated {
		s.logger.InfoContext(ctx, "storage sector rotated")
	}
	return rotated, nil
}

func (s *StorageSrv) buildSnapshotPayload() []byte {
	var records []flashsim.Record

	layers, rows, cols := s.cfg.km.Dimensions()
	for l := 0; l < layers; l++ {
		for r := 0; r < rows; r++ {
			for c := 0; c < cols; c++ {
				a, err := s.cfg.km.GetActionAt(byte(l), byte(r), byte(c))
				if err != nil {
					continue
				}
				records = append(records, flashsim.Record{
					Kind:    flashsim.KindKeymapCell,
					Payload: vialproto.EncodeKeymapCellRecord(byte(l), byte(r), byte(c), a),
				})
			}
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var lo [4]byte
	binary.LittleEndian.PutUint32(lo[:], s.layoutOptions)
	records = append(records, flashsim.Record{Kind: flashsim.KindLayoutOptions, Payload: lo[:]})

	if len(s.macroBuffer) > 0 {
		records = append(records, flashsim.Record{Kind: flashsim.KindMacroEntry, Payload: s.macroBuffer})
	}
	if len(s.configBlob) > 0 {
		records = append(records, flashsim.Record{Kind: flashsim.KindConfig, Payload: s.configBlob})
	}

	return flashsim.EncodeRecords(records)
}

func (s *StorageSrv) publishAppended(ctx context.Context, kind flashsim.Kind) {
	data, err := busapi.StorageAppendedMessage{Kind: byte(kind)}.Marshal()
	if err != nil {
		s.logger.ErrorContext(ctx, "marshal storage appended failed", "error", err)
		return
	}
	if err := s.nc.Publish(busapi.SubjectStorageAppended, data); err != nil {
		s.logger.ErrorContext(ctx, "publish storage appended failed", "error", err)
	}
}
