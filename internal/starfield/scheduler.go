package starfield

import "time"

// TimerScheduler schedules frames on a fixed interval via time.AfterFunc.
// Only one frame is ever pending, so the loop stays cooperative.
type TimerScheduler struct {
	Interval time.Duration
}

// NewTimerScheduler returns a scheduler approximating the given frame rate.
func NewTimerScheduler(fps int) *TimerScheduler {
	if fps <= 0 {
		fps = 60
	}
	return &TimerScheduler{Interval: time.Second / time.Duration(fps)}
}

// RequestFrame schedules fn one interval from now.
func (s *TimerScheduler) RequestFrame(fn func(now time.Time)) FrameHandle {
	t := time.AfterFunc(s.Interval, func() { fn(time.Now()) })
	return timerHandle{t}
}

type timerHandle struct{ t *time.Timer }

// Cancel stops the pending frame. A frame already started cannot be
// recalled, but the engine's running flag makes it a no-op.
func (h timerHandle) Cancel() { h.t.Stop() }
