// SPDX-License-Identifier: BSD-3-Clause

//go:build linux
// +build linux

package flashsim

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T, opts ...Option) *Config {
	t.Helper()
	base := []Option{
		WithDir(t.TempDir()),
		WithNumSectors(3),
		WithSectorSize(256),
		WithMinFreeBytes(32),
	}
	return NewConfig(append(base, opts...)...)
}

func TestOpenInitializesSectors(t *testing.T) {
	cfg := testConfig(t)
	l, err := Open(cfg)
	require.NoError(t, err)
	defer l.Close()

	require.Len(t, l.sectors, 3)
	for _, s := range l.sectors {
		require.Equal(t, sectorMagic, s.header.Magic)
		require.Equal(t, sectorHeaderSize, s.cursor)
	}
}

func TestAppendAndLoadRoundTrip(t *testing.T) {
	cfg := testConfig(t)
	l, err := Open(cfg)
	require.NoError(t, err)
	defer l.Close()

	recs := []Record{
		{Kind: KindKeymapCell, Payload: []byte{0, 1, 2, 9}},
		{Kind: KindConfig, Payload: []byte("tap-hold-mode")},
	}
	for _, r := range recs {
		require.NoError(t, l.Append(r))
	}

	var got []Record
	require.NoError(t, l.Load(func(r Record) error {
		got = append(got, r)
		return nil
	}))

	require.Len(t, got, 2)
	require.Equal(t, recs[0].Kind, got[0].Kind)
	require.Equal(t, recs[0].Payload, got[0].Payload)
	require.Equal(t, recs[1].Payload, got[1].Payload)
}

func TestCRCMismatchStopsReplay(t *testing.T) {
	cfg := testConfig(t)
	l, err := Open(cfg)
	require.NoError(t, err)
	defer l.Close()

	require.NoError(t, l.Append(Record{Kind: KindConfig, Payload: []byte("good")}))

	s := l.sectors[l.active]
	enc := Record{Kind: KindConfig, Payload: []byte("bad")}.encode()
	enc[len(enc)-1] ^= 0xff // corrupt the trailing CRC byte
	_, err = s.file.WriteAt(enc, int64(s.cursor))
	require.NoError(t, err)

	var got []Record
	require.NoError(t, l.Load(func(r Record) error {
		got = append(got, r)
		return nil
	}))
	require.Len(t, got, 1)
	require.Equal(t, []byte("good"), got[0].Payload)
}

func TestSnapshotIfNeededRotatesAndPreservesState(t *testing.T) {
	cfg := testConfig(t)
	l, err := Open(cfg)
	require.NoError(t, err)
	defer l.Close()

	payload := []byte{1, 2, 3}
	for l.sectors[l.active].freeBytes() >= cfg.MinFreeBytes {
		require.NoError(t, l.Append(Record{Kind: KindKeymapCell, Payload: payload}))
	}
	require.True(t, l.NeedsCompaction())

	snapshot := Record{Kind: KindConfig, Payload: []byte("consolidated")}.encode()
	rotated, err := l.SnapshotIfNeeded(snapshot)
	require.NoError(t, err)
	require.True(t, rotated)
	require.False(t, l.NeedsCompaction())

	var got []Record
	require.NoError(t, l.Load(func(r Record) error {
		got = append(got, r)
		return nil
	}))
	require.Len(t, got, 1)
	require.Equal(t, []byte("consolidated"), got[0].Payload)
}

func TestSectorFullRejectsOversizedRecord(t *testing.T) {
	cfg := testConfig(t)
	l, err := Open(cfg)
	require.NoError(t, err)
	defer l.Close()

	big := make([]byte, cfg.SectorSize)
	err = l.Append(Record{Kind: KindMacroEntry, Payload: big})
	require.ErrorIs(t, err, ErrSectorFull)
}
