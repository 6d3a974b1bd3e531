// SPDX-License-Identifier: BSD-3-Clause

package tapstate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolvesTapOnQuickRelease(t *testing.T) {
	m := New(NewConfig(WithTappingTerm(50 * time.Millisecond)))
	require.NoError(t, m.Start(nil))
	require.NoError(t, m.OwnRelease())
	assert.Equal(t, ResolvedTap, m.State())
}

func TestResolvesHoldOnTimeout(t *testing.T) {
	done := make(chan struct{})
	m := New(NewConfig(WithTappingTerm(10 * time.Millisecond)))
	require.NoError(t, m.Start(func() { close(done) }))

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("timeout callback never fired")
	}
	assert.Equal(t, ResolvedHold, m.State())
}

func TestPermissiveHoldResolvesOnInterveningKeyRelease(t *testing.T) {
	m := New(NewConfig(WithMode(PermissiveHold), WithTappingTerm(time.Second)))
	require.NoError(t, m.Start(nil))
	require.NoError(t, m.OtherKeyPress())
	assert.Equal(t, Pending, m.State(), "still pending until the intervening key releases")
	require.NoError(t, m.OtherKeyRelease())
	assert.Equal(t, ResolvedHold, m.State())
}

func TestPermissiveHoldTapsIfOwnKeyReleasesFirst(t *testing.T) {
	m := New(NewConfig(WithMode(PermissiveHold), WithTappingTerm(time.Second)))
	require.NoError(t, m.Start(nil))
	require.NoError(t, m.OtherKeyPress())
	require.NoError(t, m.OwnRelease())
	assert.Equal(t, ResolvedTap, m.State())
}

func TestHoldOnOtherKeyPressResolvesImmediately(t *testing.T) {
	m := New(NewConfig(WithMode(HoldOnOtherKeyPress), WithTappingTerm(time.Second)))
	require.NoError(t, m.Start(nil))
	require.NoError(t, m.OtherKeyPress())
	assert.Equal(t, ResolvedHold, m.State())
}

func TestFireAfterResolutionIsRejected(t *testing.T) {
	m := New(NewConfig(WithTappingTerm(50 * time.Millisecond)))
	require.NoError(t, m.Start(nil))
	require.NoError(t, m.OwnRelease())
	assert.ErrorIs(t, m.OtherKeyPress(), ErrAlreadyResolved)
}

func TestResetAllowsReuse(t *testing.T) {
	m := New(NewConfig(WithTappingTerm(50 * time.Millisecond)))
	require.NoError(t, m.Start(nil))
	require.NoError(t, m.OwnRelease())
	assert.Equal(t, ResolvedTap, m.State())

	m.Reset()
	assert.Equal(t, Idle, m.State())
	require.NoError(t, m.Start(nil))
	require.NoError(t, m.OwnRelease())
	assert.Equal(t, ResolvedTap, m.State())
}
