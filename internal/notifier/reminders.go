package notifier

import (
	"fmt"
	"time"

	"github.com/julianstephens/mindful/internal/achievement"
	"github.com/julianstephens/mindful/internal/constants"
	"github.com/julianstephens/mindful/internal/models"
)

// Kind identifies which setting produced a reminder.
type Kind string

const (
	KindAffirmation Kind = "affirmation"
	KindMeditation  Kind = "meditation"
	KindStreak      Kind = "streak"
)

// Message is a single reminder ready to be shown.
type Message struct {
	Kind  Kind
	Title string
	Text  string
}

var affirmations = []string{
	"I am calm, centered, and present.",
	"Each breath brings me back to this moment.",
	"I meet today with patience and kindness.",
	"My mind is clear and my heart is open.",
	"I let go of what I cannot control.",
	"Small steps every day add up.",
	"I give myself permission to rest.",
}

// Affirmation returns the affirmation for the day containing now. The choice
// is stable for a whole day.
func Affirmation(now time.Time) string {
	return affirmations[now.YearDay()%len(affirmations)]
}

// Due reports whether now falls in the minute of the configured reminder time.
func Due(settings models.NotificationSettings, now time.Time) bool {
	return now.Format(constants.TimeFormat) == settings.Time
}

// Compose builds the reminders enabled in settings. Meditation and streak
// reminders are skipped while a session would not advance the streak, and the
// streak reminder only fires while the streak can still be extended.
func Compose(settings models.NotificationSettings, stats models.UserStats, now time.Time) []Message {
	var msgs []Message

	if settings.DailyAffirmation {
		msgs = append(msgs, Message{
			Kind:  KindAffirmation,
			Title: "Daily affirmation",
			Text:  Affirmation(now),
		})
	}

	days, ok := sinceLast(stats, now)
	if ok && days <= 0 {
		return msgs
	}

	if settings.MeditationReminder {
		msgs = append(msgs, Message{
			Kind:  KindMeditation,
			Title: "Time to meditate",
			Text:  "Take a few minutes for yourself today.",
		})
	}

	if settings.StreakReminder && ok && days == 1 && stats.CurrentStreak > 0 {
		msgs = append(msgs, Message{
			Kind:  KindStreak,
			Title: "Keep your streak alive",
			Text:  fmt.Sprintf("Meditate today to keep your %d-day streak going.", stats.CurrentStreak),
		})
	}

	return msgs
}

// sinceLast counts elapsed days the way the streak tracker does, so a reminder
// is only sent when a session now would actually change the streak.
func sinceLast(stats models.UserStats, now time.Time) (int, bool) {
	if stats.LastMeditationDate == nil {
		return 0, false
	}
	return achievement.DaysBetween(*stats.LastMeditationDate, now), true
}
