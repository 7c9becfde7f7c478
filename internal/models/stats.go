package models

import "time"

// UserStats is the per-user meditation record the achievement engine reads and updates.
type UserStats struct {
	CurrentStreak         int        `json:"currentStreak"`
	LongestStreak         int        `json:"longestStreak"`
	TotalMinutesMeditated int        `json:"totalMinutesMeditated"`
	TotalSessions         int        `json:"totalSessions"`
	LastMeditationDate    *time.Time `json:"lastMeditationDate"`
}

// BestStreak returns the larger of the current and longest streaks.
func (s UserStats) BestStreak() int {
	return max(s.CurrentStreak, s.LongestStreak)
}

// Equal reports whether two stats records hold the same values, comparing
// LastMeditationDate as instants.
func (s UserStats) Equal(o UserStats) bool {
	if s.CurrentStreak != o.CurrentStreak ||
		s.LongestStreak != o.LongestStreak ||
		s.TotalMinutesMeditated != o.TotalMinutesMeditated ||
		s.TotalSessions != o.TotalSessions {
		return false
	}
	return timePtrEqual(s.LastMeditationDate, o.LastMeditationDate)
}

func timePtrEqual(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(*b)
}
