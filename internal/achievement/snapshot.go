package achievement

import (
	"fmt"

	"github.com/julianstephens/mindful/internal/models"
)

// Snapshot is a read-only view of a user's record. Badges are in catalog order.
type Snapshot struct {
	Stats         models.UserStats
	Badges        []models.Badge
	Notifications models.NotificationSettings
}

// Unlocked returns the earned badges in catalog order.
func (s Snapshot) Unlocked() []models.Badge {
	var out []models.Badge
	for _, b := range s.Badges {
		if b.IsUnlocked() {
			out = append(out, b)
		}
	}
	return out
}

// Locked returns the badges not yet earned, in catalog order.
func (s Snapshot) Locked() []models.Badge {
	var out []models.Badge
	for _, b := range s.Badges {
		if !b.IsUnlocked() {
			out = append(out, b)
		}
	}
	return out
}

// NextBadge returns the locked badge with the highest progress. Ties go to
// the badge earlier in the catalog. ok is false when every badge is unlocked.
func (s Snapshot) NextBadge() (badge models.Badge, ok bool) {
	best := -1.0
	for _, b := range s.Badges {
		if b.IsUnlocked() {
			continue
		}
		// Strictly greater keeps the earliest badge on ties.
		if p := Progress(s.Stats, b); p > best {
			best = p
			badge = b
			ok = true
		}
	}
	return badge, ok
}

// Progress returns the completion fraction of badge for the snapshot's stats.
func (s Snapshot) Progress(badge models.Badge) float64 {
	return Progress(s.Stats, badge)
}

// Badge returns the user's badge with the given id.
func (s Snapshot) Badge(id string) (models.Badge, error) {
	for _, b := range s.Badges {
		if b.ID == id {
			return b, nil
		}
	}
	return models.Badge{}, fmt.Errorf("%w: %s", ErrUnknownBadge, id)
}
