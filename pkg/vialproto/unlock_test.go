// SPDX-License-Identifier: BSD-3-Clause

package vialproto

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUnlockResolvesWhenAllRequiredHeld(t *testing.T) {
	u := NewUnlock()
	required := []MatrixPos{{Row: 0, Col: 0}, {Row: 0, Col: 1}}
	require.NoError(t, u.Start(required))

	state, held, total := u.Poll()
	require.Equal(t, Unlocking, state)
	require.Equal(t, 0, held)
	require.Equal(t, 2, total)

	u.Observe(required[0], true)
	state, held, _ = u.Poll()
	require.Equal(t, Unlocking, state)
	require.Equal(t, 1, held)

	u.Observe(required[1], true)
	state, held, _ = u.Poll()
	require.Equal(t, Unlocked, state)
	require.Equal(t, 2, held)
}

func TestUnlockReleaseBeforeAllHeldStaysUnlocking(t *testing.T) {
	u := NewUnlock()
	required := []MatrixPos{{Row: 0, Col: 0}, {Row: 0, Col: 1}}
	require.NoError(t, u.Start(required))

	u.Observe(required[0], true)
	u.Observe(required[0], false)
	u.Observe(required[1], true)

	state, _, _ := u.Poll()
	require.Equal(t, Unlocking, state)
}

func TestLockResetsFromAnyState(t *testing.T) {
	u := NewUnlock()
	required := []MatrixPos{{Row: 1, Col: 1}}
	require.NoError(t, u.Start(required))
	u.Observe(required[0], true)

	state, _, _ := u.Poll()
	require.Equal(t, Unlocked, state)

	require.NoError(t, u.Lock())
	state, _, _ = u.Poll()
	require.Equal(t, Locked, state)
}

func TestStartAgainAfterUnlockedRestartsSequence(t *testing.T) {
	u := NewUnlock()
	required := []MatrixPos{{Row: 2, Col: 2}}
	require.NoError(t, u.Start(required))
	u.Observe(required[0], true)
	state, _, _ := u.Poll()
	require.Equal(t, Unlocked, state)

	require.NoError(t, u.Start(required))
	state, held, _ := u.Poll()
	require.Equal(t, Unlocking, state)
	require.Equal(t, 0, held)
}
