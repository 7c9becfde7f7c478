package constants

const (
	// SpecialBadgeMinSessions is the session count that unlocks the special badges.
	SpecialBadgeMinSessions = 3

	BadgeEarlyBird = "early-bird"
	BadgeNightOwl  = "night-owl"
)
