package sessions

import (
	"time"

	"github.com/julianstephens/mindful/internal/cli"
	"github.com/julianstephens/mindful/internal/cli/render"
)

type StatsCmd struct{}

func (c *StatsCmd) Run(ctx *cli.Context) error {
	user, err := ctx.ResolveUser()
	if err != nil {
		return err
	}

	snap, err := ctx.Engine.Snapshot(user.ID)
	if err != nil {
		return err
	}

	ctx.Println(render.Stats(snap.Stats, time.Now()))
	ctx.Println(render.Row("Badges", fmtCount(len(snap.Unlocked()), len(snap.Badges))))
	return nil
}
