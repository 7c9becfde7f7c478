package storage

import "github.com/julianstephens/mindful/internal/models"

// Provider is a storage medium. Missing users and records are reported as
// errors wrapping fs.ErrNotExist.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Settings
	GetSettings() (models.Settings, error)
	SaveSettings(models.Settings) error

	// Users
	AddUser(models.User) error
	GetUser(id string) (models.User, error)
	GetUserByName(name string) (models.User, error)
	GetAllUsers() ([]models.User, error)
	// DeleteUser removes the user together with all of its records.
	DeleteUser(id string) error

	// User records, one serialized payload per record kind
	GetUserRecord(userID, kind string) ([]byte, error)
	// PutUserRecords writes all payloads for a user atomically.
	PutUserRecords(userID string, payloads map[string][]byte) error

	// Utils
	GetConfigPath() string
}
