package sessions

import (
	"fmt"
	"time"

	"github.com/julianstephens/mindful/internal/cli"
	"github.com/julianstephens/mindful/internal/cli/render"
	"github.com/julianstephens/mindful/internal/constants"
	"github.com/julianstephens/mindful/internal/models"
)

type BadgesCmd struct {
	Unlocked bool `help:"Only show earned badges." xor:"filter"`
	Locked   bool `help:"Only show badges not yet earned." xor:"filter"`
}

func (c *BadgesCmd) Run(ctx *cli.Context) error {
	user, err := ctx.ResolveUser()
	if err != nil {
		return err
	}

	snap, err := ctx.Engine.Snapshot(user.ID)
	if err != nil {
		return err
	}

	badges := snap.Badges
	switch {
	case c.Unlocked:
		badges = snap.Unlocked()
	case c.Locked:
		badges = snap.Locked()
	}

	ctx.Println(render.TitleStyle.Render(fmt.Sprintf("Badges %s", fmtCount(len(snap.Unlocked()), len(snap.Badges)))))
	if len(badges) == 0 {
		ctx.Println("  Nothing to show.")
		return nil
	}

	now := time.Now()
	for _, b := range badges {
		ctx.Println("  " + render.Badge(b, snap.Progress(b), now))
	}
	return nil
}

type NextCmd struct{}

func (c *NextCmd) Run(ctx *cli.Context) error {
	user, err := ctx.ResolveUser()
	if err != nil {
		return err
	}

	snap, err := ctx.Engine.Snapshot(user.ID)
	if err != nil {
		return err
	}

	b, ok := snap.NextBadge()
	if !ok {
		ctx.Println(render.SuccessStyle.Render("Every badge is unlocked. Well done!"))
		return nil
	}

	printBadgeDetail(ctx, b, snap.Progress(b))
	return nil
}

type ProgressCmd struct {
	Badge string `arg:"" help:"Id of the badge."`
}

func (c *ProgressCmd) Run(ctx *cli.Context) error {
	user, err := ctx.ResolveUser()
	if err != nil {
		return err
	}

	snap, err := ctx.Engine.Snapshot(user.ID)
	if err != nil {
		return err
	}

	b, err := snap.Badge(c.Badge)
	if err != nil {
		return err
	}

	printBadgeDetail(ctx, b, snap.Progress(b))
	return nil
}

func printBadgeDetail(ctx *cli.Context, b models.Badge, p float64) {
	ctx.Println(render.TitleStyle.Render(b.Icon + " " + b.Name))
	ctx.Println(b.Description)
	ctx.Println(render.Row("Requirement", render.Requirement(b.Requirement)))
	if b.IsUnlocked() {
		ctx.Println(render.Row("Unlocked", b.UnlockedAt.Local().Format(constants.DateFormat+" "+constants.TimeFormat)))
		return
	}
	ctx.Println(render.Row("Progress", render.Percent(p)))
	ctx.Println(render.Bar(b.Color, p))
}

func fmtCount(n, total int) string {
	return fmt.Sprintf("%d/%d", n, total)
}
