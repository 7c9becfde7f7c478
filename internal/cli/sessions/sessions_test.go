package sessions

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/mindful/internal/achievement"
	"github.com/julianstephens/mindful/internal/catalog"
	"github.com/julianstephens/mindful/internal/cli"
	"github.com/julianstephens/mindful/internal/models"
	"github.com/julianstephens/mindful/internal/storage/sqlite"
)

// setupTestDB returns a context with one default user "sam" and an engine
// clock pinned to now.
func setupTestDB(t *testing.T, now *time.Time) (*cli.Context, *bytes.Buffer, func()) {
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}

	c, err := catalog.Default()
	if err != nil {
		t.Fatalf("failed to load catalog: %v", err)
	}

	ctx := cli.NewContext(store, c, achievement.WithClock(func() time.Time { return *now }))
	out := &bytes.Buffer{}
	ctx.Out = out

	if err := store.AddUser(models.User{ID: "u1", Name: "sam", CreatedAt: *now}); err != nil {
		t.Fatalf("failed to add user: %v", err)
	}
	if err := store.SaveSettings(models.Settings{DefaultUser: "u1"}); err != nil {
		t.Fatalf("failed to save settings: %v", err)
	}

	cleanup := func() {
		if err := store.Close(); err != nil {
			t.Errorf("failed to close store: %v", err)
		}
	}
	return ctx, out, cleanup
}

func TestSessionUnlocksFirstBadge(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	ctx, out, cleanup := setupTestDB(t, &now)
	defer cleanup()

	if err := (&SessionCmd{Minutes: 10}).Run(ctx); err != nil {
		t.Fatalf("session failed: %v", err)
	}
	if !strings.Contains(out.String(), "First Steps") {
		t.Errorf("expected First Steps to be announced, got %q", out.String())
	}

	snap, err := ctx.Engine.Snapshot("u1")
	if err != nil {
		t.Fatalf("failed to load snapshot: %v", err)
	}
	if snap.Stats.TotalSessions != 1 || snap.Stats.TotalMinutesMeditated != 10 || snap.Stats.CurrentStreak != 1 {
		t.Errorf("unexpected stats: %+v", snap.Stats)
	}
	if len(snap.Unlocked()) != 1 {
		t.Errorf("expected 1 unlocked badge, got %d", len(snap.Unlocked()))
	}
}

func TestSessionRejectsNonPositive(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	ctx, _, cleanup := setupTestDB(t, &now)
	defer cleanup()

	for _, minutes := range []int{0, -5} {
		err := (&SessionCmd{Minutes: minutes}).Run(ctx)
		if !errors.Is(err, achievement.ErrInvalidDuration) {
			t.Errorf("expected ErrInvalidDuration for %d, got %v", minutes, err)
		}
	}

	snap, err := ctx.Engine.Snapshot("u1")
	if err != nil {
		t.Fatalf("failed to load snapshot: %v", err)
	}
	if snap.Stats.TotalSessions != 0 {
		t.Errorf("expected no sessions recorded, got %d", snap.Stats.TotalSessions)
	}
}

func TestSessionStreakAcrossDays(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	ctx, _, cleanup := setupTestDB(t, &now)
	defer cleanup()

	for i := 0; i < 7; i++ {
		if err := (&SessionCmd{Minutes: 15}).Run(ctx); err != nil {
			t.Fatalf("session %d failed: %v", i, err)
		}
		now = now.Add(24 * time.Hour)
	}

	snap, err := ctx.Engine.Snapshot("u1")
	if err != nil {
		t.Fatalf("failed to load snapshot: %v", err)
	}
	if snap.Stats.CurrentStreak != 7 || snap.Stats.LongestStreak != 7 {
		t.Errorf("expected streak 7/7, got %d/%d", snap.Stats.CurrentStreak, snap.Stats.LongestStreak)
	}
	b, err := snap.Badge("seven-day-streak")
	if err != nil {
		t.Fatalf("failed to get badge: %v", err)
	}
	if !b.IsUnlocked() {
		t.Error("expected seven-day-streak to be unlocked")
	}
}

func TestBadgesFilters(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	ctx, out, cleanup := setupTestDB(t, &now)
	defer cleanup()

	if err := (&SessionCmd{Minutes: 10}).Run(ctx); err != nil {
		t.Fatalf("session failed: %v", err)
	}

	out.Reset()
	if err := (&BadgesCmd{Unlocked: true}).Run(ctx); err != nil {
		t.Fatalf("badges failed: %v", err)
	}
	if !strings.Contains(out.String(), "First Steps") || strings.Contains(out.String(), "Dedicated") {
		t.Errorf("expected only unlocked badges, got %q", out.String())
	}

	out.Reset()
	if err := (&BadgesCmd{Locked: true}).Run(ctx); err != nil {
		t.Fatalf("badges failed: %v", err)
	}
	if strings.Contains(out.String(), "First Steps") || !strings.Contains(out.String(), "Dedicated") {
		t.Errorf("expected only locked badges, got %q", out.String())
	}
}

func TestNextAndProgress(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	ctx, out, cleanup := setupTestDB(t, &now)
	defer cleanup()

	if err := (&SessionCmd{Minutes: 30}).Run(ctx); err != nil {
		t.Fatalf("session failed: %v", err)
	}

	out.Reset()
	if err := (&NextCmd{}).Run(ctx); err != nil {
		t.Fatalf("next failed: %v", err)
	}
	// 30 of 100 minutes beats 1 of 10 sessions and 1 of 7 days.
	if !strings.Contains(out.String(), "Mindful Hour") || !strings.Contains(out.String(), "30%") {
		t.Errorf("expected next badge at 30%%, got %q", out.String())
	}

	out.Reset()
	if err := (&ProgressCmd{Badge: "ten-sessions"}).Run(ctx); err != nil {
		t.Fatalf("progress failed: %v", err)
	}
	if !strings.Contains(out.String(), "10%") {
		t.Errorf("expected 10%% progress, got %q", out.String())
	}

	err := (&ProgressCmd{Badge: "no-such-badge"}).Run(ctx)
	if !errors.Is(err, achievement.ErrUnknownBadge) {
		t.Errorf("expected ErrUnknownBadge, got %v", err)
	}
}

func TestStats(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	ctx, out, cleanup := setupTestDB(t, &now)
	defer cleanup()

	if err := (&StatsCmd{}).Run(ctx); err != nil {
		t.Fatalf("stats failed: %v", err)
	}
	if !strings.Contains(out.String(), "never") || !strings.Contains(out.String(), "0/12") {
		t.Errorf("unexpected stats output: %q", out.String())
	}
}
