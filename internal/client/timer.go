package client

import (
	"context"
	"errors"
	"sync"
	"time"

	"pomodoroclock/backend/internal/model"
)

var ErrTimerStopped = errors.New("timer is not running")

// Timer is a countdown anchored to a wall-clock deadline rather than to a
// tick count, so a late tick never drifts the remaining time.
type Timer struct {
	mu        sync.Mutex
	mode      string
	remaining time.Duration
	deadline  time.Time
	running   bool
	changed   chan struct{}
}

func NewTimer(mode string) *Timer {
	return &Timer{
		mode:      mode,
		remaining: model.ModeDuration(mode),
		changed:   make(chan struct{}),
	}
}

func (t *Timer) Mode() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.mode
}

// SetMode switches the timer to mode and resets it.
func (t *Timer) SetMode(mode string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.mode = mode
	t.resetLocked()
}

func (t *Timer) Start(now time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.running {
		return
	}
	t.deadline = now.Add(t.remaining)
	t.running = true
	t.notifyLocked()
}

// Pause freezes the remaining time.
func (t *Timer) Pause(now time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.running {
		return
	}
	t.remaining = t.remainingLocked(now)
	t.running = false
	t.notifyLocked()
}

// Reset stops the timer and restores the full duration of its mode.
func (t *Timer) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.resetLocked()
}

func (t *Timer) Running() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.running
}

// Remaining is deadline minus now while running, clamped at zero.
func (t *Timer) Remaining(now time.Time) time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.running {
		return t.remaining
	}
	return t.remainingLocked(now)
}

// Wait blocks until the deadline passes. It returns ErrTimerStopped if the
// timer is not running or gets paused or reset while waiting.
func (t *Timer) Wait(ctx context.Context) error {
	for {
		t.mu.Lock()
		if !t.running {
			t.mu.Unlock()
			return ErrTimerStopped
		}
		left := time.Until(t.deadline)
		changed := t.changed
		t.mu.Unlock()

		if left <= 0 {
			return nil
		}

		timer := time.NewTimer(left)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-changed:
			timer.Stop()
		case <-timer.C:
		}
	}
}

func (t *Timer) remainingLocked(now time.Time) time.Duration {
	left := t.deadline.Sub(now)
	if left < 0 {
		return 0
	}
	return left
}

func (t *Timer) resetLocked() {
	t.remaining = model.ModeDuration(t.mode)
	t.deadline = time.Time{}
	t.running = false
	t.notifyLocked()
}

func (t *Timer) notifyLocked() {
	close(t.changed)
	t.changed = make(chan struct{})
}

// CompletePomodoro records a finished focus cycle for username and, when
// taskID is non-zero, for that task.
func (c *Client) CompletePomodoro(ctx context.Context, token, username string, listID, taskID int) (*model.User, *model.Task, error) {
	user, err := c.IncrementPomodoros(ctx, token, username)
	if err != nil {
		return nil, nil, err
	}
	if taskID == 0 {
		return user, nil, nil
	}

	task, err := c.IncrementTask(ctx, token, listID, taskID)
	if err != nil {
		return user, nil, err
	}
	return user, task, nil
}

// RunFocus starts timer, waits for it to run out and records the cycle.
// Break modes finish without touching any counter.
func (c *Client) RunFocus(ctx context.Context, timer *Timer, token, username string, listID, taskID int) (*model.User, *model.Task, error) {
	timer.Start(time.Now())
	if err := timer.Wait(ctx); err != nil {
		return nil, nil, err
	}
	defer timer.Reset()

	if timer.Mode() != model.ModeFocus {
		return nil, nil, nil
	}
	return c.CompletePomodoro(ctx, token, username, listID, taskID)
}
