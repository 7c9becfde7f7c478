package sessions

import (
	"time"

	"github.com/julianstephens/mindful/internal/cli"
	"github.com/julianstephens/mindful/internal/cli/render"
)

type SessionCmd struct {
	Minutes int `arg:"" help:"Length of the completed session in minutes."`
}

func (c *SessionCmd) Run(ctx *cli.Context) error {
	user, err := ctx.ResolveUser()
	if err != nil {
		return err
	}

	res, err := ctx.Engine.RecordSession(user.ID, c.Minutes)
	if err != nil {
		return err
	}

	ctx.Printf("%s %d minute session recorded. Streak: %s\n",
		render.SuccessStyle.Render("✓"), c.Minutes, render.Days(res.Stats.CurrentStreak))

	if len(res.NewlyUnlocked) > 0 {
		now := time.Now()
		ctx.Println()
		ctx.Println(render.TitleStyle.Render("New badges unlocked!"))
		for _, b := range res.NewlyUnlocked {
			ctx.Println("  " + render.Badge(b, 1, now))
		}
	}
	return nil
}
