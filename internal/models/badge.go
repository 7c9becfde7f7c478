package models

import (
	"fmt"
	"time"
)

// RequirementType is the metric a badge requirement is measured against.
type RequirementType string

const (
	RequirementSessions RequirementType = "sessions"
	RequirementMinutes  RequirementType = "minutes"
	RequirementStreak   RequirementType = "streak"
	RequirementSpecial  RequirementType = "special"
)

// Valid reports whether t is one of the known requirement types.
func (t RequirementType) Valid() bool {
	switch t {
	case RequirementSessions, RequirementMinutes, RequirementStreak, RequirementSpecial:
		return true
	default:
		return false
	}
}

// UnmarshalText rejects unknown requirement types so they never reach the engine.
// It serves both encoding/json and the TOML catalog decoder.
func (t *RequirementType) UnmarshalText(text []byte) error {
	v := RequirementType(text)
	if !v.Valid() {
		return fmt.Errorf("unknown requirement type %q", string(text))
	}
	*t = v
	return nil
}

// Requirement is the single numeric unlock condition of a badge.
type Requirement struct {
	Type  RequirementType `json:"type" toml:"type"`
	Value int             `json:"value" toml:"value"`
}

// Badge is a catalog entry plus the per-user unlock timestamp.
// UnlockedAt is write-once: once set it is never cleared or changed.
type Badge struct {
	ID          string      `json:"id" toml:"id"`
	Name        string      `json:"name" toml:"name"`
	Description string      `json:"description" toml:"description"`
	Icon        string      `json:"icon" toml:"icon"`
	Color       string      `json:"color" toml:"color"`
	Requirement Requirement `json:"requirement" toml:"requirement"`
	UnlockedAt  *time.Time  `json:"unlockedAt" toml:"-"`
}

// IsUnlocked reports whether the badge has been earned.
func (b Badge) IsUnlocked() bool {
	return b.UnlockedAt != nil
}

// CloneBadges returns a deep copy of badges, including the unlock timestamps.
func CloneBadges(badges []Badge) []Badge {
	out := make([]Badge, len(badges))
	for i, b := range badges {
		if b.UnlockedAt != nil {
			t := *b.UnlockedAt
			b.UnlockedAt = &t
		}
		out[i] = b
	}
	return out
}

// LockedCopy returns a copy of badges with every UnlockedAt cleared. It is how
// per-user badge state is created from the catalog.
func LockedCopy(badges []Badge) []Badge {
	out := make([]Badge, len(badges))
	for i, b := range badges {
		b.UnlockedAt = nil
		out[i] = b
	}
	return out
}
