// Package achievement tracks meditation stats, unlocks badges, and reports
// progress toward the ones still locked.
//
// RecordSession, Evaluate and Progress are pure functions. Engine composes them
// with a Repository: each completed session is applied to an in-memory copy of
// the user's record, and the complete updated record is handed back for
// persistence. There is no merge between concurrent writers of the same user;
// the last Save wins.
package achievement

import (
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/mindful/internal/logger"
	"github.com/julianstephens/mindful/internal/models"
)

var (
	// ErrInvalidDuration is returned for a session duration that is not positive.
	ErrInvalidDuration = errors.New("session duration must be a positive number of minutes")
	// ErrUnknownBadge is returned when a badge id is not in the user's badge list.
	ErrUnknownBadge = errors.New("unknown badge")
)

// Repository loads and saves complete user records.
type Repository interface {
	Load(userID string) (models.UserRecord, error)
	Save(userID string, record models.UserRecord) error
}

// Engine applies session-completion events to user records.
type Engine struct {
	repo Repository
	now  func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock sets the time source used to stamp sessions and badges.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// NewEngine creates an engine backed by repo.
func NewEngine(repo Repository, opts ...Option) *Engine {
	e := &Engine{
		repo: repo,
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Result is the outcome of a recorded session.
type Result struct {
	Stats         models.UserStats
	Badges        []models.Badge
	NewlyUnlocked []models.Badge
}

// RecordSession records a completed session of durationMinutes for userID,
// unlocks any badges the new stats satisfy, and saves the updated record.
// A non-positive duration is rejected before anything is loaded or saved.
func (e *Engine) RecordSession(userID string, durationMinutes int) (Result, error) {
	if durationMinutes <= 0 {
		return Result{}, fmt.Errorf("%w: got %d", ErrInvalidDuration, durationMinutes)
	}

	record, err := e.repo.Load(userID)
	if err != nil {
		return Result{}, fmt.Errorf("failed to load record: %w", err)
	}

	now := e.now()
	if last := record.Stats.LastMeditationDate; last != nil && now.Before(*last) {
		logger.Warn("Session is earlier than the last recorded session, keeping streak",
			"user", userID, "last", last.Format(time.RFC3339), "now", now.Format(time.RFC3339))
	}

	stats := RecordSession(record.Stats, durationMinutes, now)
	badges := Evaluate(stats, record.Badges, now)
	unlocked := NewlyUnlocked(record.Badges, badges)

	record.Stats = stats
	record.Badges = badges
	if err := e.repo.Save(userID, record); err != nil {
		return Result{}, fmt.Errorf("failed to save record: %w", err)
	}

	logger.Debug("Session recorded", "user", userID, "minutes", durationMinutes,
		"streak", stats.CurrentStreak, "unlocked", len(unlocked))
	for _, b := range unlocked {
		logger.Info("Badge unlocked", "user", userID, "badge", b.ID)
	}

	return Result{
		Stats:         stats,
		Badges:        badges,
		NewlyUnlocked: unlocked,
	}, nil
}

// Snapshot loads the current state of userID for display.
func (e *Engine) Snapshot(userID string) (Snapshot, error) {
	record, err := e.repo.Load(userID)
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to load record: %w", err)
	}
	return Snapshot{
		Stats:         record.Stats,
		Badges:        record.Badges,
		Notifications: record.Notifications,
	}, nil
}

// UpdateNotifications applies update to the user's notification settings and
// saves them. Invalid settings are rejected and nothing is saved.
func (e *Engine) UpdateNotifications(userID string, update func(*models.NotificationSettings)) (models.NotificationSettings, error) {
	record, err := e.repo.Load(userID)
	if err != nil {
		return models.NotificationSettings{}, fmt.Errorf("failed to load record: %w", err)
	}

	settings := record.Notifications
	update(&settings)
	if err := settings.Validate(); err != nil {
		return models.NotificationSettings{}, err
	}

	record.Notifications = settings
	if err := e.repo.Save(userID, record); err != nil {
		return models.NotificationSettings{}, fmt.Errorf("failed to save record: %w", err)
	}
	return settings, nil
}
