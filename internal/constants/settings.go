package constants

const (
	// General Settings
	SettingDefaultUser = "default_user"

	// Default Notification Settings Values
	DefaultDailyAffirmation   = false
	DefaultMeditationReminder = false
	DefaultStreakReminder     = false
	DefaultReminderTime       = "09:00"
)
