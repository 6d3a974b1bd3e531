// SPDX-License-Identifier: BSD-3-Clause

package macro

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vialcore/vialcore/pkg/action"
)

type event struct {
	kind string
	kc   byte
	mods action.ModSet
}

type fakeSink struct {
	mu     sync.Mutex
	events []event
}

func (f *fakeSink) Press(_ context.Context, kc byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, event{kind: "press", kc: kc})
	return nil
}

func (f *fakeSink) Release(_ context.Context, kc byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, event{kind: "release", kc: kc})
	return nil
}

func (f *fakeSink) PressMods(_ context.Context, kc byte, mods action.ModSet) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, event{kind: "press_mods", kc: kc, mods: mods})
	return nil
}

func (f *fakeSink) ReleaseMods(_ context.Context, kc byte, mods action.ModSet) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, event{kind: "release_mods", kc: kc, mods: mods})
	return nil
}

func (f *fakeSink) snapshot() []event {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]event(nil), f.events...)
}

func TestRunnerExecutesItemsInOrder(t *testing.T) {
	sink := &fakeSink{}
	r, err := NewRunner(sink, nil)
	require.NoError(t, err)

	m := Macro{ID: 1, Items: []Item{Tap(0x04), DelayItem(5 * time.Millisecond), Press(0x05), Release(0x05)}}
	r.Schedule(context.Background(), m)
	require.Eventually(t, func() bool { return len(sink.snapshot()) == 4 }, time.Second, time.Millisecond)
	r.Stop()

	ev := sink.snapshot()
	require.Len(t, ev, 4)
	assert.Equal(t, "press", ev[0].kind)
	assert.Equal(t, byte(0x04), ev[0].kc)
	assert.Equal(t, "release", ev[1].kind)
	assert.Equal(t, "press", ev[2].kind)
	assert.Equal(t, byte(0x05), ev[2].kc)
	assert.Equal(t, "release", ev[3].kind)
}

func TestRunnerSchedulingReplacesRunningMacro(t *testing.T) {
	sink := &fakeSink{}
	r, err := NewRunner(sink, nil)
	require.NoError(t, err)

	long := Macro{ID: 1, Items: []Item{DelayItem(time.Second), Tap(0x04)}}
	r.Schedule(context.Background(), long)

	short := Macro{ID: 2, Items: []Item{Tap(0x05)}}
	r.Schedule(context.Background(), short)
	r.Stop()

	ev := sink.snapshot()
	for _, e := range ev {
		assert.NotEqual(t, byte(0x04), e.kc, "the long-running macro's tap should never have fired")
	}
}

func TestRunnerTextUsesEncoder(t *testing.T) {
	sink := &fakeSink{}
	encoder := func(r rune) (byte, bool, bool) {
		switch r {
		case 'a':
			return 0x04, false, true
		case 'A':
			return 0x04, true, true
		}
		return 0, false, false
	}
	r, err := NewRunner(sink, encoder)
	require.NoError(t, err)

	r.Schedule(context.Background(), Macro{Items: []Item{Text("aA")}})
	require.Eventually(t, func() bool { return len(sink.snapshot()) == 4 }, time.Second, time.Millisecond)
	r.Stop()

	ev := sink.snapshot()
	require.Len(t, ev, 4)
	assert.Equal(t, "press", ev[0].kind)
	assert.Equal(t, "release", ev[1].kind)
	assert.Equal(t, "press_mods", ev[2].kind)
	assert.Equal(t, action.ModShift, ev[2].mods.Mods)
	assert.Equal(t, "release_mods", ev[3].kind)
}

func TestRunnerUnknownRuneStopsMacro(t *testing.T) {
	sink := &fakeSink{}
	encoder := func(r rune) (byte, bool, bool) { return 0, false, false }
	r, err := NewRunner(sink, encoder)
	require.NoError(t, err)

	r.Schedule(context.Background(), Macro{Items: []Item{Text("?"), Tap(0x06)}})
	r.Stop()

	ev := sink.snapshot()
	assert.Empty(t, ev, "unresolvable rune should abort before any later item runs")
}
