package model

import "time"

// Timer modes. A focus cycle is the unit counted by User.NumPomodoros and
// Task.CompletedCycles.
const (
	ModeFocus      = "focus"
	ModeShortBreak = "short_break"
	ModeLongBreak  = "long_break"
)

const (
	DefaultFocusDuration      = 25 * time.Minute
	DefaultShortBreakDuration = 5 * time.Minute
	DefaultLongBreakDuration  = 15 * time.Minute
)

// ModeDuration returns the countdown length for mode, defaulting to focus.
func ModeDuration(mode string) time.Duration {
	switch mode {
	case ModeShortBreak:
		return DefaultShortBreakDuration
	case ModeLongBreak:
		return DefaultLongBreakDuration
	default:
		return DefaultFocusDuration
	}
}
