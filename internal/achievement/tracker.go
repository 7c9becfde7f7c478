package achievement

import (
	"time"

	"github.com/julianstephens/mindful/internal/models"
)

const day = 24 * time.Hour

// DaysBetween returns floor((now - last) / 24h). It is negative when the
// clock moved backward.
func DaysBetween(last, now time.Time) int {
	d := now.Sub(last)
	days := int(d / day)
	// Go division truncates toward zero, floor needs one less for negative remainders.
	if d < 0 && d%day != 0 {
		days--
	}
	return days
}

// RecordSession returns prev updated for one completed session of
// durationMinutes ending at now. Callers must reject non-positive durations.
//
// Streak continuity is measured in elapsed 24h windows since the previous
// session, not calendar dates:
//   - first session ever: the streak starts at 1
//   - 1 day later: the streak grows by one
//   - same day: the streak is unchanged
//   - 2 or more days later: the streak restarts at 1
//   - earlier than the previous session: treated as same day
func RecordSession(prev models.UserStats, durationMinutes int, now time.Time) models.UserStats {
	next := prev
	next.TotalSessions = prev.TotalSessions + 1
	next.TotalMinutesMeditated = prev.TotalMinutesMeditated + durationMinutes
	ts := now
	next.LastMeditationDate = &ts

	if prev.LastMeditationDate == nil {
		next.CurrentStreak = 1
	} else {
		switch days := DaysBetween(*prev.LastMeditationDate, now); {
		case days == 1:
			next.CurrentStreak = prev.CurrentStreak + 1
		case days >= 2:
			next.CurrentStreak = 1
		default:
			// Same day, or the clock moved backward.
			next.CurrentStreak = prev.CurrentStreak
		}
	}

	next.LongestStreak = max(prev.LongestStreak, next.CurrentStreak)
	return next
}
