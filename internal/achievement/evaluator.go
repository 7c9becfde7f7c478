package achievement

import (
	"slices"
	"time"

	"github.com/julianstephens/mindful/internal/constants"
	"github.com/julianstephens/mindful/internal/models"
)

// specialBadges are the only badges the special requirement can unlock.
var specialBadges = []string{constants.BadgeEarlyBird, constants.BadgeNightOwl}

// Evaluate returns a copy of badges where every locked badge whose requirement
// is met by stats is stamped with now. Unlocked badges pass through unchanged,
// so calling Evaluate again never re-stamps a badge. badges is not modified.
func Evaluate(stats models.UserStats, badges []models.Badge, now time.Time) []models.Badge {
	out := models.CloneBadges(badges)
	for i := range out {
		if out[i].IsUnlocked() {
			continue
		}
		if Satisfied(stats, out[i]) {
			ts := now
			out[i].UnlockedAt = &ts
		}
	}
	return out
}

// Satisfied reports whether stats meet the badge requirement, ignoring its
// current unlock state.
func Satisfied(stats models.UserStats, badge models.Badge) bool {
	req := badge.Requirement
	switch req.Type {
	case models.RequirementSessions:
		return stats.TotalSessions >= req.Value
	case models.RequirementMinutes:
		return stats.TotalMinutesMeditated >= req.Value
	case models.RequirementStreak:
		return stats.BestStreak() >= req.Value
	case models.RequirementSpecial:
		// The early-bird and night-owl descriptions promise time-of-day
		// conditions, but the rule only counts sessions. Kept as is until the
		// feature is redesigned; the session time is never inspected.
		return stats.TotalSessions >= constants.SpecialBadgeMinSessions &&
			slices.Contains(specialBadges, badge.ID)
	default:
		return false
	}
}

// NewlyUnlocked returns the badges that are unlocked in after but were locked
// in before, matched by id.
func NewlyUnlocked(before, after []models.Badge) []models.Badge {
	locked := make(map[string]bool, len(before))
	for _, b := range before {
		locked[b.ID] = !b.IsUnlocked()
	}

	var unlocked []models.Badge
	for _, b := range after {
		if b.IsUnlocked() && locked[b.ID] {
			unlocked = append(unlocked, b)
		}
	}
	return unlocked
}
