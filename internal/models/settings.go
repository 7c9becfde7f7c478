package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/mindful/internal/constants"
)

// ErrInvalidTime is returned for a reminder time that is not HH:MM.
var ErrInvalidTime = errors.New("invalid reminder time")

// NotificationSettings holds the per-user reminder toggles
type NotificationSettings struct {
	DailyAffirmation   bool   `json:"dailyAffirmation"`
	MeditationReminder bool   `json:"meditationReminder"`
	StreakReminder     bool   `json:"streakReminder"`
	Time               string `json:"time"` // HH:MM
}

// DefaultNotificationSettings returns the settings a new user starts with.
func DefaultNotificationSettings() NotificationSettings {
	return NotificationSettings{
		DailyAffirmation:   constants.DefaultDailyAffirmation,
		MeditationReminder: constants.DefaultMeditationReminder,
		StreakReminder:     constants.DefaultStreakReminder,
		Time:               constants.DefaultReminderTime,
	}
}

// AnyEnabled reports whether at least one reminder is switched on.
func (n NotificationSettings) AnyEnabled() bool {
	return n.DailyAffirmation || n.MeditationReminder || n.StreakReminder
}

// Validate checks the reminder time format.
func (n NotificationSettings) Validate() error {
	return ValidateReminderTime(n.Time)
}

// ValidateReminderTime checks that s is a 24-hour HH:MM time.
func ValidateReminderTime(s string) error {
	if len(s) != len(constants.TimeFormat) {
		return fmt.Errorf("%w: %q (expected HH:MM)", ErrInvalidTime, s)
	}
	if _, err := time.Parse(constants.TimeFormat, s); err != nil {
		return fmt.Errorf("%w: %q (expected HH:MM)", ErrInvalidTime, s)
	}
	return nil
}

// Settings represents application-wide settings
type Settings struct {
	DefaultUser string `json:"default_user"` // id of the user selected when --user is not given
}

// MapToSettings converts a map of key-value pairs to a Settings struct.
func MapToSettings(data map[string]string) Settings {
	settings := Settings{}
	for key, value := range data {
		switch key {
		case constants.SettingDefaultUser:
			settings.DefaultUser = value
		}
	}
	return settings
}

// SettingsToMap converts a Settings struct to a map of key-value pairs.
func SettingsToMap(settings Settings) map[string]string {
	return map[string]string{
		constants.SettingDefaultUser: settings.DefaultUser,
	}
}
