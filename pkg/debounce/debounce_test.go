// SPDX-License-Identifier: BSD-3-Clause

package debounce

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefaultDebouncerFirstSampleIsSilent(t *testing.T) {
	d := NewDefaultDebouncer(20 * time.Millisecond)
	now := time.Now()
	pressed, changed := d.Debounce(true, now)
	assert.True(t, pressed)
	assert.False(t, changed, "initial sample establishes state without emitting")
}

func TestDefaultDebouncerRejectsBounceWithinWindow(t *testing.T) {
	d := NewDefaultDebouncer(20 * time.Millisecond)
	now := time.Now()
	d.Debounce(false, now)

	_, changed := d.Debounce(true, now.Add(5*time.Millisecond))
	assert.False(t, changed)
}

func TestDefaultDebouncerCommitsAfterWindow(t *testing.T) {
	d := NewDefaultDebouncer(20 * time.Millisecond)
	now := time.Now()
	d.Debounce(false, now)

	pressed, changed := d.Debounce(true, now.Add(25*time.Millisecond))
	assert.True(t, changed)
	assert.True(t, pressed)
}

func TestDefaultDebouncerNoChangeWhenSameLevel(t *testing.T) {
	d := NewDefaultDebouncer(20 * time.Millisecond)
	now := time.Now()
	d.Debounce(false, now)

	_, changed := d.Debounce(false, now.Add(100*time.Millisecond))
	assert.False(t, changed)
}

func TestRapidDebouncerPressFasterThanRelease(t *testing.T) {
	d := NewRapidDebouncer(5*time.Millisecond, 20*time.Millisecond)
	now := time.Now()
	d.Debounce(false, now)

	// Press commits at 6ms, within the rapid press window.
	pressed, changed := d.Debounce(true, now.Add(6*time.Millisecond))
	assert.True(t, changed)
	assert.True(t, pressed)

	// Release at +6ms relative to the press should NOT commit yet (needs 20ms).
	_, changed = d.Debounce(false, now.Add(12*time.Millisecond))
	assert.False(t, changed)
}

func TestBankTracksCellsIndependently(t *testing.T) {
	b := NewBank(KindDefault, 2, 2)
	now := time.Now()
	b.Sample(0, 0, false, now)
	b.Sample(1, 1, false, now)

	_, changed := b.Sample(0, 0, true, now.Add(25*time.Millisecond))
	assert.True(t, changed)

	pressed, changed := b.Sample(1, 1, false, now.Add(25*time.Millisecond))
	assert.False(t, changed)
	assert.False(t, pressed)
}
