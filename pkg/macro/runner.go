// SPDX-License-Identifier: BSD-3-Clause

package macro

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/vialcore/vialcore/pkg/action"
)

// Sink receives the synthetic press/release events a running macro emits,
// normally service/keyboardsrv's outgoing HID report writer. PressMods
// layers ephemeral modifiers on top of the keycode for the duration of the
// press, exactly as action.WithModifier does for a regular keypress.
type Sink interface {
	Press(ctx context.Context, keycode byte) error
	Release(ctx context.Context, keycode byte) error
	PressMods(ctx context.Context, keycode byte, mods action.ModSet) error
	ReleaseMods(ctx context.Context, keycode byte, mods action.ModSet) error
}

// TextEncoder maps a rune to the keycode and whether shift is required to
// type it.
type TextEncoder func(r rune) (keycode byte, shifted bool, ok bool)

// TapGapMillis is the synthetic press/release separation used for Tap and
// Text items, mirroring the 1-tick coalescing window the keyboard action
// state machine uses for its own synthetic taps (spec §4.4).
const TapGapMillis = 1

// Runner pumps at most one active macro's items at their declared delays.
// Scheduling a new macro while one is running cancels the running one
// first (spec §4.4: "at most one macro active; new triggers replace the
// running one").
type Runner struct {
	sink    Sink
	encoder TextEncoder

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewRunner builds a Runner. encoder may be nil if no Text items will be
// scheduled.
func NewRunner(sink Sink, encoder TextEncoder) (*Runner, error) {
	if sink == nil {
		return nil, ErrNilSink
	}
	return &Runner{sink: sink, encoder: encoder}, nil
}

// Schedule starts running m, canceling and waiting for any macro already
// in flight.
func (r *Runner) Schedule(ctx context.Context, m Macro) {
	r.mu.Lock()
	if r.cancel != nil {
		r.cancel()
		done := r.done
		r.mu.Unlock()
		<-done
		r.mu.Lock()
	}

	runCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	r.cancel = cancel
	r.done = done
	r.mu.Unlock()

	go r.run(runCtx, m, done)
}

// Stop cancels any running macro and waits for it to unwind.
func (r *Runner) Stop() {
	r.mu.Lock()
	cancel := r.cancel
	done := r.done
	r.mu.Unlock()
	if cancel == nil {
		return
	}
	cancel()
	<-done
}

func (r *Runner) run(ctx context.Context, m Macro, done chan struct{}) {
	defer close(done)
	defer func() {
		r.mu.Lock()
		if r.done == done {
			r.cancel = nil
			r.done = nil
		}
		r.mu.Unlock()
	}()

	for _, item := range m.Items {
		if ctx.Err() != nil {
			return
		}
		if err := r.runItem(ctx, item); err != nil {
			return
		}
	}
}

func (r *Runner) runItem(ctx context.Context, item Item) error {
	switch item.Kind {
	case KindTap:
		if err := r.sink.Press(ctx, item.KeyCode); err != nil {
			return err
		}
		if err := sleep(ctx, TapGapMillis*time.Millisecond); err != nil {
			return err
		}
		return r.sink.Release(ctx, item.KeyCode)
	case KindPress:
		return r.sink.Press(ctx, item.KeyCode)
	case KindRelease:
		return r.sink.Release(ctx, item.KeyCode)
	case KindDelay:
		return sleep(ctx, item.Delay)
	case KindText:
		return r.runText(ctx, item.Text)
	default:
		return fmt.Errorf("macro: unknown item kind %d", item.Kind)
	}
}

func (r *Runner) runText(ctx context.Context, text string) error {
	if r.encoder == nil {
		return ErrUnknownRune
	}
	shiftMods := action.ModSet{Mods: action.ModShift}
	for _, ch := range text {
		kc, shifted, ok := r.encoder(ch)
		if !ok {
			return fmt.Errorf("%w: %q", ErrUnknownRune, ch)
		}
		if shifted {
			if err := r.sink.PressMods(ctx, kc, shiftMods); err != nil {
				return err
			}
		} else if err := r.sink.Press(ctx, kc); err != nil {
			return err
		}
		if err := sleep(ctx, TapGapMillis*time.Millisecond); err != nil {
			return err
		}
		if shifted {
			if err := r.sink.ReleaseMods(ctx, kc, shiftMods); err != nil {
				return err
			}
		} else if err := r.sink.Release(ctx, kc); err != nil {
			return err
		}
	}
	return nil
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
