package reminder

import (
	"time"

	"caltrack/internal/model"
)

// IsWithinSleepWindow reports whether now falls inside the sleep window.
// Times compare as minutes since midnight with the date ignored. When the
// sleep time is later in the day than the wake time (sleep 23:00, wake
// 07:00) the window crosses midnight.
func IsWithinSleepWindow(now time.Time, win model.SleepWindow) bool {
	nowMinutes := now.Hour()*60 + now.Minute()
	wakeMinutes := win.Wake.MinutesSinceMidnight()
	sleepMinutes := win.Sleep.MinutesSinceMidnight()

	if sleepMinutes > wakeMinutes {
		return nowMinutes >= sleepMinutes || nowMinutes < wakeMinutes
	}
	return nowMinutes >= sleepMinutes && nowMinutes < wakeMinutes
}

// CalculateNextTrigger returns the delay before a reminder's next fire.
// The base delay is the frequency in minutes. When now is inside the sleep
// window the fire is deferred to no earlier than the next wake instant, but
// never sooner than the base delay: max(base, untilWake), not min. A
// reminder whose base delay elapses mid-sleep therefore fires exactly at
// wake, and one due after wake keeps its full interval.
func CalculateNextTrigger(now time.Time, frequencyMinutes int, respectSleep bool, win *model.SleepWindow) time.Duration {
	base := time.Duration(frequencyMinutes) * time.Minute
	if !respectSleep || win == nil {
		return base
	}
	if !IsWithinSleepWindow(now, *win) {
		return base
	}

	nextWake := time.Date(now.Year(), now.Month(), now.Day(), win.Wake.Hour, win.Wake.Minute, 0, 0, now.Location())
	if !nextWake.After(now) {
		nextWake = nextWake.AddDate(0, 0, 1)
	}
	untilWake := nextWake.Sub(now)
	if untilWake > base {
		return untilWake
	}
	return base
}
