package achievement

import (
	"errors"
	"testing"
	"time"

	"github.com/julianstephens/mindful/internal/models"
)

type memRepo struct {
	records map[string]models.UserRecord
	badges  []models.Badge
	saves   int
	saveErr error
}

func newMemRepo(t *testing.T) *memRepo {
	return &memRepo{
		records: make(map[string]models.UserRecord),
		badges:  defaultBadges(t),
	}
}

func (r *memRepo) Load(userID string) (models.UserRecord, error) {
	rec, ok := r.records[userID]
	if !ok {
		return models.UserRecord{
			Badges:        models.LockedCopy(r.badges),
			Notifications: models.DefaultNotificationSettings(),
		}, nil
	}
	rec.Badges = models.CloneBadges(rec.Badges)
	return rec, nil
}

func (r *memRepo) Save(userID string, record models.UserRecord) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	r.saves++
	record.Badges = models.CloneBadges(record.Badges)
	r.records[userID] = record
	return nil
}

type stepClock struct {
	now time.Time
}

func (c *stepClock) Now() time.Time { return c.now }

func TestEngineRecordSession(t *testing.T) {
	repo := newMemRepo(t)
	clock := &stepClock{now: d0}
	engine := NewEngine(repo, WithClock(clock.Now))

	res, err := engine.RecordSession("u1", 5)
	if err != nil {
		t.Fatalf("RecordSession failed: %v", err)
	}
	if res.Stats.TotalSessions != 1 || res.Stats.CurrentStreak != 1 {
		t.Errorf("unexpected stats: %+v", res.Stats)
	}
	if len(res.NewlyUnlocked) != 1 || res.NewlyUnlocked[0].ID != "first-session" {
		t.Errorf("expected first-session to unlock, got %+v", res.NewlyUnlocked)
	}
	if repo.saves != 1 {
		t.Errorf("expected 1 save, got %d", repo.saves)
	}

	saved := repo.records["u1"]
	if !saved.Stats.Equal(res.Stats) {
		t.Errorf("saved stats %+v differ from result %+v", saved.Stats, res.Stats)
	}

	clock.now = d0.Add(24 * time.Hour)
	res, err = engine.RecordSession("u1", 10)
	if err != nil {
		t.Fatalf("RecordSession failed: %v", err)
	}
	if res.Stats.CurrentStreak != 2 || res.Stats.TotalMinutesMeditated != 15 {
		t.Errorf("unexpected stats after second session: %+v", res.Stats)
	}
	if len(res.NewlyUnlocked) != 0 {
		t.Errorf("expected no new badges, got %+v", res.NewlyUnlocked)
	}

	first, err := (Snapshot{Badges: res.Badges}).Badge("first-session")
	if err != nil {
		t.Fatalf("Badge lookup failed: %v", err)
	}
	if !first.UnlockedAt.Equal(d0) {
		t.Errorf("first-session should keep its original unlock time, got %v", first.UnlockedAt)
	}
}

func TestEngineRejectsInvalidDuration(t *testing.T) {
	repo := newMemRepo(t)
	engine := NewEngine(repo, WithClock(func() time.Time { return d0 }))

	for _, minutes := range []int{0, -5} {
		_, err := engine.RecordSession("u1", minutes)
		if !errors.Is(err, ErrInvalidDuration) {
			t.Errorf("duration %d: expected ErrInvalidDuration, got %v", minutes, err)
		}
	}
	if repo.saves != 0 {
		t.Errorf("invalid input must not be saved, got %d saves", repo.saves)
	}
	if _, ok := repo.records["u1"]; ok {
		t.Error("invalid input must leave state unchanged")
	}
}

func TestEngineSaveError(t *testing.T) {
	repo := newMemRepo(t)
	repo.saveErr = errors.New("disk full")
	engine := NewEngine(repo, WithClock(func() time.Time { return d0 }))

	_, err := engine.RecordSession("u1", 5)
	if err == nil || !errors.Is(err, repo.saveErr) {
		t.Errorf("expected wrapped save error, got %v", err)
	}
}

func TestEngineUsersAreIndependent(t *testing.T) {
	repo := newMemRepo(t)
	engine := NewEngine(repo, WithClock(func() time.Time { return d0 }))

	for i := 0; i < 3; i++ {
		if _, err := engine.RecordSession("a", 10); err != nil {
			t.Fatalf("RecordSession failed: %v", err)
		}
	}
	if _, err := engine.RecordSession("b", 10); err != nil {
		t.Fatalf("RecordSession failed: %v", err)
	}

	a, _ := engine.Snapshot("a")
	b, _ := engine.Snapshot("b")
	if a.Stats.TotalSessions != 3 || b.Stats.TotalSessions != 1 {
		t.Errorf("expected 3 and 1 sessions, got %d and %d", a.Stats.TotalSessions, b.Stats.TotalSessions)
	}
	if len(a.Unlocked()) != 3 || len(b.Unlocked()) != 1 {
		t.Errorf("expected 3 and 1 unlocked badges, got %d and %d", len(a.Unlocked()), len(b.Unlocked()))
	}
}

func TestSnapshotQueries(t *testing.T) {
	repo := newMemRepo(t)
	engine := NewEngine(repo, WithClock(func() time.Time { return d0 }))

	snap, err := engine.Snapshot("new-user")
	if err != nil {
		t.Fatalf("Snapshot failed: %v", err)
	}
	if len(snap.Unlocked()) != 0 || len(snap.Locked()) != 12 {
		t.Errorf("expected 0 unlocked and 12 locked, got %d and %d", len(snap.Unlocked()), len(snap.Locked()))
	}

	// Every badge has zero progress: the first in catalog order wins.
	next, ok := snap.NextBadge()
	if !ok || next.ID != "first-session" {
		t.Errorf("expected first-session as next badge, got %q (ok=%v)", next.ID, ok)
	}

	if _, err := snap.Badge("nope"); !errors.Is(err, ErrUnknownBadge) {
		t.Errorf("expected ErrUnknownBadge, got %v", err)
	}
}

func TestNextBadgeHighestProgress(t *testing.T) {
	badges := Evaluate(models.UserStats{TotalSessions: 3, TotalMinutesMeditated: 90}, defaultBadges(t), d0)
	snap := Snapshot{
		Stats:  models.UserStats{TotalSessions: 3, TotalMinutesMeditated: 90, CurrentStreak: 1, LongestStreak: 1},
		Badges: badges,
	}

	// hundred-minutes is at 0.9, ahead of ten-sessions at 0.3.
	next, ok := snap.NextBadge()
	if !ok || next.ID != "hundred-minutes" {
		t.Errorf("expected hundred-minutes, got %q", next.ID)
	}
}

func TestNextBadgeTieBreak(t *testing.T) {
	badges := []models.Badge{
		{ID: "a", Requirement: models.Requirement{Type: models.RequirementSessions, Value: 10}},
		{ID: "b", Requirement: models.Requirement{Type: models.RequirementMinutes, Value: 100}},
		{ID: "c", Requirement: models.Requirement{Type: models.RequirementSessions, Value: 20}},
	}
	snap := Snapshot{Stats: models.UserStats{TotalSessions: 5, TotalMinutesMeditated: 50}, Badges: badges}

	next, ok := snap.NextBadge()
	if !ok || next.ID != "a" {
		t.Errorf("expected tie to go to a, got %q", next.ID)
	}
}

func TestNextBadgeAllUnlocked(t *testing.T) {
	badges := Evaluate(
		models.UserStats{TotalSessions: 100, TotalMinutesMeditated: 1000, CurrentStreak: 100, LongestStreak: 100},
		defaultBadges(t), d0)
	snap := Snapshot{Badges: badges}

	if _, ok := snap.NextBadge(); ok {
		t.Error("expected no next badge when everything is unlocked")
	}
	if len(snap.Locked()) != 0 {
		t.Errorf("expected no locked badges, got %d", len(snap.Locked()))
	}
}

func TestEngineUpdateNotifications(t *testing.T) {
	repo := newMemRepo(t)
	engine := NewEngine(repo)

	got, err := engine.UpdateNotifications("u1", func(n *models.NotificationSettings) {
		n.StreakReminder = true
		n.Time = "20:30"
	})
	if err != nil {
		t.Fatalf("UpdateNotifications failed: %v", err)
	}
	if !got.StreakReminder || got.Time != "20:30" {
		t.Errorf("unexpected settings: %+v", got)
	}

	_, err = engine.UpdateNotifications("u1", func(n *models.NotificationSettings) {
		n.Time = "25:00"
	})
	if !errors.Is(err, models.ErrInvalidTime) {
		t.Errorf("expected ErrInvalidTime, got %v", err)
	}

	snap, _ := engine.Snapshot("u1")
	if snap.Notifications.Time != "20:30" {
		t.Errorf("invalid update must not be saved, got %q", snap.Notifications.Time)
	}
}
