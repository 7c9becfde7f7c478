package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"

	"github.com/julianstephens/mindful/internal/catalog"
	"github.com/julianstephens/mindful/internal/constants"
	"github.com/julianstephens/mindful/internal/logger"
	"github.com/julianstephens/mindful/internal/models"
)

// Repository persists complete user records on top of a Provider. Each part of
// a record is stored as its own JSON payload.
//
// Missing or unreadable payloads never fail a Load: stats fall back to zero,
// badges to a locked copy of the catalog, and notification settings to their
// defaults.
type Repository struct {
	provider Provider
	catalog  *catalog.Catalog
}

func NewRepository(p Provider, c *catalog.Catalog) *Repository {
	return &Repository{
		provider: p,
		catalog:  c,
	}
}

func (r *Repository) Load(userID string) (models.UserRecord, error) {
	var record models.UserRecord

	data, err := r.read(userID, constants.RecordKindStats)
	if err != nil {
		return models.UserRecord{}, err
	}
	record.Stats = r.decodeStats(userID, data)

	data, err = r.read(userID, constants.RecordKindBadges)
	if err != nil {
		return models.UserRecord{}, err
	}
	record.Badges = r.decodeBadges(userID, data)

	data, err = r.read(userID, constants.RecordKindNotifications)
	if err != nil {
		return models.UserRecord{}, err
	}
	record.Notifications = r.decodeNotifications(userID, data)

	return record, nil
}

func (r *Repository) Save(userID string, record models.UserRecord) error {
	if record.Badges == nil {
		record.Badges = []models.Badge{}
	}

	payloads := make(map[string][]byte, 3)
	for kind, v := range map[string]any{
		constants.RecordKindStats:         record.Stats,
		constants.RecordKindBadges:        record.Badges,
		constants.RecordKindNotifications: record.Notifications,
	} {
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("failed to encode %s: %w", kind, err)
		}
		payloads[kind] = data
	}

	if err := r.provider.PutUserRecords(userID, payloads); err != nil {
		return fmt.Errorf("failed to save records for %s: %w", userID, err)
	}
	return nil
}

// read returns nil data for a record that does not exist yet.
func (r *Repository) read(userID, kind string) ([]byte, error) {
	data, err := r.provider.GetUserRecord(userID, kind)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read %s for %s: %w", kind, userID, err)
	}
	return data, nil
}

func (r *Repository) decodeStats(userID string, data []byte) models.UserStats {
	if data == nil {
		return models.UserStats{}
	}

	var stats models.UserStats
	if err := json.Unmarshal(data, &stats); err != nil {
		logger.Warn("Discarding unreadable stats", "user", userID, "error", err)
		return models.UserStats{}
	}
	return stats
}

func (r *Repository) decodeBadges(userID string, data []byte) []models.Badge {
	if data == nil {
		return r.catalog.Badges()
	}

	var badges []models.Badge
	if err := json.Unmarshal(data, &badges); err != nil {
		logger.Warn("Discarding unreadable badges", "user", userID, "error", err)
		return r.catalog.Badges()
	}

	seen := make(map[string]bool, len(badges))
	for _, b := range badges {
		if b.ID == "" || seen[b.ID] || !b.Requirement.Type.Valid() {
			logger.Warn("Discarding invalid badges", "user", userID, "badge", b.ID)
			return r.catalog.Badges()
		}
		seen[b.ID] = true
	}

	// Stored badges take their catalog slot. Badges added to the catalog after
	// the record was written start locked; ids the catalog no longer knows
	// keep their stored order at the end.
	merged := r.catalog.Badges()
	for _, b := range badges {
		if i := r.catalog.Position(b.ID); i >= 0 {
			merged[i] = b
		} else {
			merged = append(merged, b)
		}
	}
	return merged
}

func (r *Repository) decodeNotifications(userID string, data []byte) models.NotificationSettings {
	if data == nil {
		return models.DefaultNotificationSettings()
	}

	var settings models.NotificationSettings
	if err := json.Unmarshal(data, &settings); err != nil {
		logger.Warn("Discarding unreadable notification settings", "user", userID, "error", err)
		return models.DefaultNotificationSettings()
	}
	if err := settings.Validate(); err != nil {
		logger.Warn("Discarding invalid notification settings", "user", userID, "error", err)
		return models.DefaultNotificationSettings()
	}
	return settings
}
