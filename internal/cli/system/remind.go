package system

import (
	"context"
	"fmt"
	"time"

	"github.com/julianstephens/mindful/internal/cli"
	"github.com/julianstephens/mindful/internal/logger"
	"github.com/julianstephens/mindful/internal/notifier"
)

type RemindCmd struct {
	DryRun bool `help:"Print reminders to stdout instead of sending them."`
	Now    bool `help:"Send reminders even if it is not the configured reminder time."`
}

// Sender delivers a reminder. *notifier.Notifier is the production sender.
type Sender interface {
	Notify(ctx context.Context, msg notifier.Message) error
}

func (c *RemindCmd) Run(ctx *cli.Context) error {
	return c.run(ctx, notifier.New(), time.Now())
}

func (c *RemindCmd) run(ctx *cli.Context, sender Sender, now time.Time) error {
	user, err := ctx.ResolveUser()
	if err != nil {
		return err
	}

	snap, err := ctx.Engine.Snapshot(user.ID)
	if err != nil {
		return err
	}
	settings := snap.Notifications

	if !settings.AnyEnabled() {
		if c.DryRun {
			ctx.Println("Reminders are disabled in settings.")
		}
		return nil
	}
	if !c.Now && !notifier.Due(settings, now) {
		if c.DryRun {
			ctx.Printf("Reminders are scheduled for %s.\n", settings.Time)
		}
		return nil
	}

	msgs := notifier.Compose(settings, snap.Stats, now)
	if len(msgs) == 0 && c.DryRun {
		ctx.Println("Nothing to remind you about today.")
	}

	var failed int
	for _, msg := range msgs {
		if c.DryRun {
			ctx.Printf("[DryRun] %s: %s\n", msg.Title, msg.Text)
			continue
		}
		if err := sender.Notify(context.Background(), msg); err != nil {
			logger.Warn("Failed to send reminder", "user", user.ID, "kind", msg.Kind, "error", err)
			failed++
		}
	}

	if failed > 0 {
		return fmt.Errorf("failed to send %d of %d reminder(s)", failed, len(msgs))
	}
	return nil
}
