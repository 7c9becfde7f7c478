package settings

import (
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/mindful/internal/cli"
	"github.com/julianstephens/mindful/internal/cli/render"
	"github.com/julianstephens/mindful/internal/models"
)

type SettingsCmd struct {
	List        bool `help:"List current notification settings."`
	Interactive bool `short:"i" help:"Edit notification settings in a form."`

	DailyAffirmation   *bool   `help:"Send a daily affirmation."`
	MeditationReminder *bool   `help:"Remind me to meditate."`
	StreakReminder     *bool   `help:"Remind me when my streak is at risk."`
	Time               *string `help:"Reminder time (HH:MM, 24-hour)."`
}

func (c *SettingsCmd) Run(ctx *cli.Context) error {
	user, err := ctx.ResolveUser()
	if err != nil {
		return err
	}

	if c.List {
		snap, err := ctx.Engine.Snapshot(user.ID)
		if err != nil {
			return err
		}
		printSettings(ctx, user, snap.Notifications)
		return nil
	}

	if c.Interactive {
		snap, err := ctx.Engine.Snapshot(user.ID)
		if err != nil {
			return err
		}
		edited := snap.Notifications
		if err := NewForm(&edited).Run(); err != nil {
			return err
		}
		c.DailyAffirmation = &edited.DailyAffirmation
		c.MeditationReminder = &edited.MeditationReminder
		c.StreakReminder = &edited.StreakReminder
		c.Time = &edited.Time
	}

	if !c.hasUpdates() {
		ctx.Println("No changes specified. Use --list to view settings or flags to update them.")
		return nil
	}

	updated, err := ctx.Engine.UpdateNotifications(user.ID, c.apply)
	if err != nil {
		return err
	}

	ctx.Println("Settings updated successfully.")
	printSettings(ctx, user, updated)
	return nil
}

func (c *SettingsCmd) hasUpdates() bool {
	return c.DailyAffirmation != nil || c.MeditationReminder != nil || c.StreakReminder != nil || c.Time != nil
}

func (c *SettingsCmd) apply(s *models.NotificationSettings) {
	if c.DailyAffirmation != nil {
		s.DailyAffirmation = *c.DailyAffirmation
	}
	if c.MeditationReminder != nil {
		s.MeditationReminder = *c.MeditationReminder
	}
	if c.StreakReminder != nil {
		s.StreakReminder = *c.StreakReminder
	}
	if c.Time != nil {
		s.Time = *c.Time
	}
}

// NewForm builds the notification settings form. Values are written to s.
func NewForm(s *models.NotificationSettings) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Daily affirmations").
				Value(&s.DailyAffirmation),
			huh.NewConfirm().
				Title("Meditation reminders").
				Value(&s.MeditationReminder),
			huh.NewConfirm().
				Title("Streak reminders").
				Value(&s.StreakReminder),
			huh.NewInput().
				Title("Reminder time").
				Description("24-hour HH:MM").
				Value(&s.Time).
				Validate(models.ValidateReminderTime),
		),
	)
}

func printSettings(ctx *cli.Context, user models.User, s models.NotificationSettings) {
	ctx.Println(render.TitleStyle.Render("Notification Settings for " + user.Name))
	ctx.Println(render.Row("Daily affirmation", onOff(s.DailyAffirmation)))
	ctx.Println(render.Row("Meditation", onOff(s.MeditationReminder)))
	ctx.Println(render.Row("Streak", onOff(s.StreakReminder)))
	ctx.Println(render.Row("Time", s.Time))
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
