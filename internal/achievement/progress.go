package achievement

import "github.com/julianstephens/mindful/internal/models"

// Progress returns how close stats are to the badge requirement, in [0, 1].
// Special badges have no partial progress. A non-positive requirement value
// yields 0.
func Progress(stats models.UserStats, badge models.Badge) float64 {
	req := badge.Requirement
	if req.Value <= 0 {
		return 0
	}

	var current int
	switch req.Type {
	case models.RequirementSessions:
		current = stats.TotalSessions
	case models.RequirementMinutes:
		current = stats.TotalMinutesMeditated
	case models.RequirementStreak:
		current = stats.BestStreak()
	default:
		return 0
	}

	return min(max(float64(current)/float64(req.Value), 0), 1)
}
