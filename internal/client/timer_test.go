package client

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pomodoroclock/backend/internal/model"
)

func TestTimerCountsDownFromDeadline(t *testing.T) {
	timer := NewTimer(model.ModeFocus)
	start := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)

	assert.Equal(t, 25*time.Minute, timer.Remaining(start))

	timer.Start(start)
	assert.True(t, timer.Running())
	assert.Equal(t, 15*time.Minute, timer.Remaining(start.Add(10*time.Minute)))

	timer.Pause(start.Add(10 * time.Minute))
	assert.False(t, timer.Running())
	assert.Equal(t, 15*time.Minute, timer.Remaining(start.Add(time.Hour)))

	resumed := start.Add(time.Hour)
	timer.Start(resumed)
	assert.Equal(t, time.Duration(0), timer.Remaining(resumed.Add(20*time.Minute)))

	timer.Reset()
	assert.Equal(t, 25*time.Minute, timer.Remaining(resumed))
}

func TestTimerModes(t *testing.T) {
	timer := NewTimer(model.ModeShortBreak)
	assert.Equal(t, 5*time.Minute, timer.Remaining(time.Now()))

	timer.SetMode(model.ModeLongBreak)
	assert.Equal(t, 15*time.Minute, timer.Remaining(time.Now()))
	assert.Equal(t, model.ModeLongBreak, timer.Mode())
}

func TestTimerWait(t *testing.T) {
	timer := NewTimer(model.ModeFocus)
	assert.ErrorIs(t, timer.Wait(context.Background()), ErrTimerStopped)

	timer.Start(time.Now().Add(-25*time.Minute - time.Second))
	require.NoError(t, timer.Wait(context.Background()))

	timer.Reset()
	timer.Start(time.Now())
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, timer.Wait(ctx), context.DeadlineExceeded)
}

func TestTimerWaitStopsOnPause(t *testing.T) {
	timer := NewTimer(model.ModeFocus)
	timer.Start(time.Now())

	done := make(chan error, 1)
	go func() { done <- timer.Wait(context.Background()) }()

	time.Sleep(10 * time.Millisecond)
	timer.Pause(time.Now())

	select {
	case err := <-done:
		assert.ErrorIs(t, err, ErrTimerStopped)
	case <-time.After(time.Second):
		t.Fatal("wait did not return after pause")
	}
}
