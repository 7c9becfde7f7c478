package constants

import "time"

const (
	AppName           = "mindful"
	DefaultConfigPath = "~/.config/mindful/mindful.db"
	Version           = "v0.1.0"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard time format used throughout the application (HH:MM)
	TimeFormat = "15:04"

	// TimestampFormat is used for every persisted timestamp. Nanosecond precision
	// keeps the round trip lossless.
	TimestampFormat = time.RFC3339Nano

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "mindful-"
	BackupFileSuffix = ".db"

	// Notify constants
	NotifierLockfileName   = "mindful-notifier.lock"
	NotificationDurationMs = 5000
	TrayAppIdentifier      = "com.julianstephens.mindful"
	TrayExecutablePrefix   = "mindful-tray"

	// Record kinds, one serialized blob per kind per user
	RecordKindStats         = "stats"
	RecordKindBadges        = "badges"
	RecordKindNotifications = "notifications"
)
