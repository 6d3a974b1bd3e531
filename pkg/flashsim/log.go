// SPDX-License-Identifier: BSD-3-Clause

//go:build linux
// +build linux

package flashsim

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/vialcore/vialcore/pkg/file"
)

// manifestName records, one line per rotation, which sector is active and
// at what sequence number. It is a hint only: Open always falls back to
// scanning every sector's header for the true maximum Seq, so a missing
// or stale manifest never causes data loss.
const manifestName = "manifest.log"

// Log is an append-only record log striped across Config.NumSectors
// files, each flock'd exclusively for the Log's lifetime. Compaction
// rotates to the next sector in ring order, writing a single caller-
// supplied snapshot record so the retiring sector's space can be
// reclaimed (spec §4.5 wear leveling).
type Log struct {
	cfg     *Config
	sectors []*sector
	active  int
}

// Open creates the sector directory if needed, opens (or initializes)
// every configured sector file, and selects the sector with the highest
// sequence number as active.
func Open(cfg *Config) (*Log, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(cfg.Dir, 0o700); err != nil {
		return nil, fmt.Errorf("flashsim: create dir: %w", err)
	}

	l := &Log{cfg: cfg}
	for i := 0; i < cfg.NumSectors; i++ {
		s, err := openSector(cfg.Dir, i, cfg.SectorSize)
		if err != nil {
			l.Close()
			return nil, err
		}
		l.sectors = append(l.sectors, s)
	}

	active := 0
	for i, s := range l.sectors {
		if s.header.Seq >= l.sectors[active].header.Seq {
			active = i
		}
	}
	l.active = active
	return l, nil
}

// Close releases every sector's flock.
func (l *Log) Close() error {
	var firstErr error
	for _, s := range l.sectors {
		if s == nil {
			continue
		}
		if err := s.close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Load replays every sector in ascending sequence order, applying each
// record via apply. A Snapshot record's payload is itself a run of
// encoded records (the consolidated state as of the rotation that wrote
// it) and is expanded in place rather than handed to apply verbatim.
func (l *Log) Load(apply func(Record) error) error {
	order := append([]*sector(nil), l.sectors...)
	sortSectorsBySeq(order)

	for _, s := range order {
		recs, err := s.records()
		if err != nil {
			return err
		}
		for _, r := range recs {
			if r.Kind == KindSnapshot {
				if err := replaySnapshot(r.Payload, apply); err != nil {
					return err
				}
				continue
			}
			if err := apply(r); err != nil {
				return err
			}
		}
	}
	return nil
}

func replaySnapshot(payload []byte, apply func(Record) error) error {
	off := 0
	for off < len(payload) {
		r, n, err := decodeRecord(payload[off:])
		if err != nil {
			return err
		}
		if err := apply(r); err != nil {
			return err
		}
		off += n
	}
	return nil
}

func sortSectorsBySeq(s []*sector) {
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && s[j].header.Seq < s[j-1].header.Seq; j-- {
			s[j], s[j-1] = s[j-1], s[j]
		}
	}
}

// Append writes rec to the active sector. Callers should check
// NeedsCompaction and call SnapshotIfNeeded before Append when it
// reports true, since Append itself never rotates.
func (l *Log) Append(rec Record) error {
	if rec.encodedSize() > l.cfg.SectorSize-sectorHeaderSize {
		return ErrSectorFull
	}
	return l.sectors[l.active].append(rec)
}

// NeedsCompaction reports whether the active sector's free space has
// dropped below Config.MinFreeBytes.
func (l *Log) NeedsCompaction() bool {
	return l.sectors[l.active].freeBytes() < l.cfg.MinFreeBytes
}

// SnapshotIfNeeded rotates to the next sector in ring order when
// NeedsCompaction reports true, erasing it and seeding it with a single
// Snapshot record built from snapshotPayload (the caller's consolidated,
// already record-encoded state). It reports whether a rotation happened.
func (l *Log) SnapshotIfNeeded(snapshotPayload []byte) (bool, error) {
	if !l.NeedsCompaction() {
		return false, nil
	}

	oldActiveIdx := l.active
	nextIdx := (l.active + 1) % len(l.sectors)
	next := l.sectors[nextIdx]
	nextSeq := l.maxSeq() + 1

	if err := next.initEmpty(nextSeq); err != nil {
		return false, err
	}

	snap := Record{Kind: KindSnapshot, Payload: snapshotPayload}
	if snap.encodedSize() > l.cfg.SectorSize-sectorHeaderSize {
		return false, ErrSectorFull
	}
	if err := next.append(snap); err != nil {
		return false, err
	}

	l.active = nextIdx
	if err := l.appendManifest(nextIdx, nextSeq); err != nil {
		return false, err
	}

	// The old active sector's records are now entirely folded into the
	// snapshot just written; erase it so it can be reused by a future
	// rotation instead of being replayed as stale duplicate state.
	if err := l.sectors[oldActiveIdx].initEmpty(0); err != nil {
		return false, err
	}
	return true, nil
}

func (l *Log) maxSeq() uint32 {
	max := l.sectors[0].header.Seq
	for _, s := range l.sectors[1:] {
		if s.header.Seq > max {
			max = s.header.Seq
		}
	}
	return max
}

func (l *Log) appendManifest(sectorIdx int, seq uint32) error {
	line := []byte(fmt.Sprintf("sector=%d seq=%d\n", sectorIdx, seq))
	path := filepath.Join(l.cfg.Dir, manifestName)
	return file.AtomicUpdateFile(path, line, 0o600)
}
