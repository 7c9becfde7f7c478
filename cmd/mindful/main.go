package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/mindful/internal/catalog"
	"github.com/julianstephens/mindful/internal/cli"
	"github.com/julianstephens/mindful/internal/cli/backups"
	"github.com/julianstephens/mindful/internal/cli/sessions"
	"github.com/julianstephens/mindful/internal/cli/settings"
	"github.com/julianstephens/mindful/internal/cli/system"
	"github.com/julianstephens/mindful/internal/cli/users"
	"github.com/julianstephens/mindful/internal/constants"
	"github.com/julianstephens/mindful/internal/errors"
	"github.com/julianstephens/mindful/internal/logger"
	"github.com/julianstephens/mindful/internal/storage"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Data file path. A .json suffix selects the JSON file store." type:"path" default:"${config_path}" env:"MINDFUL_CONFIG"`
	User    string `help:"User name or id. Defaults to the default user." env:"MINDFUL_USER"`
	Catalog string `help:"Badge catalog (TOML) to use instead of the built-in one." type:"existingfile" env:"MINDFUL_CATALOG"`
	Debug   bool   `help:"Log debug output to stderr."`

	Init     system.InitCmd       `cmd:"" help:"Initialize mindful storage."`
	Migrate  system.MigrateCmd    `cmd:"" help:"Run database migrations."`
	Session  sessions.SessionCmd  `cmd:"" help:"Record a completed meditation session."`
	Stats    sessions.StatsCmd    `cmd:"" help:"Show meditation stats." default:"1"`
	Badges   sessions.BadgesCmd   `cmd:"" help:"Show badges."`
	Next     sessions.NextCmd     `cmd:"" help:"Show the badge closest to being unlocked."`
	Progress sessions.ProgressCmd `cmd:"" help:"Show progress toward a badge."`
	Users    users.UserCmd        `cmd:"" name:"user" help:"Manage local users."`
	Settings settings.SettingsCmd `cmd:"" help:"Manage notification settings."`
	Remind   system.RemindCmd     `cmd:"" help:"Send due reminders (run from cron or a scheduler)."`
	Backup   backups.BackupCmd    `cmd:"" help:"Manage data backups."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Meditation streaks, stats and badges"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":     constants.Version,
			"config_path": constants.DefaultConfigPath,
		},
	)

	if err := logger.Init(logger.Config{
		Debug:     CLI.Debug,
		ConfigDir: filepath.Dir(CLI.Config),
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logging: %v\n", err)
	}

	c, err := loadCatalog(CLI.Catalog)
	if err != nil {
		errors.Fatal(err)
	}

	store := storage.Open(CLI.Config)
	defer store.Close()

	appCtx := cli.NewContext(store, c)
	appCtx.User = CLI.User

	// init handles its own loading.
	if ctx.Selected() != nil && ctx.Selected().Name != "init" {
		if err := store.Load(); err != nil {
			errors.Fatal(err)
		}
	}

	errors.Fatal(ctx.Run(appCtx))
}

func loadCatalog(path string) (*catalog.Catalog, error) {
	if path == "" {
		return catalog.Default()
	}
	return catalog.Load(path)
}
