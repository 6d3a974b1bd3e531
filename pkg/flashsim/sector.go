// SPDX-License-Identifier: BSD-3-Clause

//go:build linux
// +build linux

package flashsim

import (
	"encoding/binary"
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// sectorMagic marks an initialized sector file.
const sectorMagic uint32 = 0x53564c46 // "FLVS"

// sectorHeaderSize is magic(4) + seq(4).
const sectorHeaderSize = 8

// sectorHeader identifies a sector and its logical write generation. seq
// lets Load order sectors chronologically after wear-leveling rotation:
// the sector with the highest seq holds the most recent writes.
type sectorHeader struct {
	Magic uint32
	Seq   uint32
}

func decodeSectorHeader(buf []byte) (sectorHeader, error) {
	if len(buf) < sectorHeaderSize {
		return sectorHeader{}, fmt.Errorf("%w: short sector header", ErrBadMagic)
	}
	h := sectorHeader{
		Magic: binary.LittleEndian.Uint32(buf[0:4]),
		Seq:   binary.LittleEndian.Uint32(buf[4:8]),
	}
	if h.Magic != sectorMagic {
		return sectorHeader{}, ErrBadMagic
	}
	return h, nil
}

func (h sectorHeader) encode() []byte {
	buf := make([]byte, sectorHeaderSize)
	binary.LittleEndian.PutUint32(buf[0:4], sectorMagic)
	binary.LittleEndian.PutUint32(buf[4:8], h.Seq)
	return buf
}

// sector wraps one open, flock'd sector file and its parsed records.
type sector struct {
	index  int
	path   string
	file   *os.File
	header sectorHeader
	// cursor is the byte offset of the next free slot, always >= sectorHeaderSize.
	cursor int
	size   int
}

// openSector opens (creating if absent) the file for sector index under
// dir, takes an exclusive flock, and reads its header. A freshly created
// file is initialized with seq 0 and an empty cursor.
func openSector(dir string, index, size int) (*sector, error) {
	path := fmt.Sprintf("%s/sector-%02d.bin", dir, index)

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o600)
	if err != nil {
		return nil, fmt.Errorf("flashsim: open sector %d: %w", index, err)
	}

	if err := unix.Flock(int(f.Fd()), unix.LOCK_EX|unix.LOCK_NB); err != nil {
		f.Close()
		return nil, fmt.Errorf("%w: sector %d: %v", ErrSectorLocked, index, err)
	}

	s := &sector{index: index, path: path, file: f, size: size}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("flashsim: stat sector %d: %w", index, err)
	}

	if info.Size() < sectorHeaderSize {
		if err := s.initEmpty(0); err != nil {
			f.Close()
			return nil, err
		}
		return s, nil
	}

	buf := make([]byte, info.Size())
	if _, err := f.ReadAt(buf, 0); err != nil {
		f.Close()
		return nil, fmt.Errorf("flashsim: read sector %d: %w", index, err)
	}

	header, err := decodeSectorHeader(buf)
	if err != nil {
		// Unreadable header: treat as blank and reinitialize at seq 0
		// rather than fail open, matching a freshly-erased flash sector.
		if err := s.initEmpty(0); err != nil {
			f.Close()
			return nil, err
		}
		return s, nil
	}
	s.header = header
	s.cursor = scanCursor(buf)
	return s, nil
}

// initEmpty (re)writes a blank header at seq and resets the cursor,
// truncating the file to exactly size bytes.
func (s *sector) initEmpty(seq uint32) error {
	if err := s.file.Truncate(int64(s.size)); err != nil {
		return fmt.Errorf("flashsim: truncate sector %d: %w", s.index, err)
	}
	s.header = sectorHeader{Magic: sectorMagic, Seq: seq}
	if _, err := s.file.WriteAt(s.header.encode(), 0); err != nil {
		return fmt.Errorf("flashsim: write sector %d header: %w", s.index, err)
	}
	s.cursor = sectorHeaderSize
	return nil
}

// freeBytes returns how much room remains for new records.
func (s *sector) freeBytes() int {
	return s.size - s.cursor
}

// append writes rec at the current cursor if it fits, advancing the
// cursor and flushing to disk.
func (s *sector) append(rec Record) error {
	enc := rec.encode()
	if len(enc) > s.freeBytes() {
		return ErrSectorFull
	}
	if _, err := s.file.WriteAt(enc, int64(s.cursor)); err != nil {
		return fmt.Errorf("flashsim: append to sector %d: %w", s.index, err)
	}
	if err := s.file.Sync(); err != nil {
		return fmt.Errorf("flashsim: sync sector %d: %w", s.index, err)
	}
	s.cursor += len(enc)
	return nil
}

// records replays every well-formed record in the sector, stopping at the
// first CRC failure or bad magic (the point past which nothing further
// was durably committed).
func (s *sector) records() ([]Record, error) {
	buf := make([]byte, s.size)
	if _, err := s.file.ReadAt(buf, 0); err != nil {
		return nil, fmt.Errorf("flashsim: read sector %d: %w", s.index, err)
	}

	var out []Record
	off := sectorHeaderSize
	for off < len(buf) {
		rec, n, err := decodeRecord(buf[off:])
		if err != nil {
			break
		}
		out = append(out, rec)
		off += n
	}
	return out, nil
}

// scanCursor walks a sector's record frames to find the first free byte,
// stopping at the first frame that fails to decode (erased tail space).
func scanCursor(buf []byte) int {
	off := sectorHeaderSize
	for off < len(buf) {
		rec, n, err := decodeRecord(buf[off:])
		if err != nil {
			break
		}
		_ = rec
		off += n
	}
	return off
}

func (s *sector) close() error {
	if err := unix.Flock(int(s.file.Fd()), unix.LOCK_UN); err != nil {
		s.file.Close()
		return fmt.Errorf("flashsim: unlock sector %d: %w", s.index, err)
	}
	return s.file.Close()
}
