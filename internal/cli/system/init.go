package system

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/julianstephens/mindful/internal/cli"
	"github.com/julianstephens/mindful/internal/constants"
	"github.com/julianstephens/mindful/internal/storage"
)

type InitCmd struct {
	Force  bool   `help:"Force reset by deleting existing data before initialization."`
	Source string `help:"Existing mindful database or JSON store to copy users and records from." type:"path"`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	dataPath := ctx.Store.GetConfigPath()

	if c.Source != "" {
		absData, _ := filepath.Abs(dataPath)
		absSource, _ := filepath.Abs(c.Source)
		if absData == absSource {
			return fmt.Errorf("source and destination are the same: %s", dataPath)
		}
	}

	if c.Force {
		if _, err := os.Stat(dataPath); err == nil {
			if err := ctx.Store.Close(); err != nil {
				return fmt.Errorf("failed to close existing store: %w", err)
			}
			if err := os.Remove(dataPath); err != nil {
				return fmt.Errorf("failed to delete existing store: %w", err)
			}
			ctx.Printf("Deleted existing store at: %s\n", dataPath)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("failed to access existing store: %w", err)
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	ctx.Printf("Initialized mindful storage at: %s\n", dataPath)

	if c.Source != "" {
		ctx.Printf("Copying data from: %s\n", c.Source)
		if err := copyData(ctx, storage.Open(c.Source)); err != nil {
			return fmt.Errorf("copy failed: %w", err)
		}
		ctx.Println("Copy completed successfully!")
	}

	return nil
}

// copyData copies settings, users and their records from src into the
// context's store. Records are copied as stored, without decoding.
func copyData(ctx *cli.Context, src storage.Provider) error {
	if err := src.Load(); err != nil {
		return fmt.Errorf("failed to load source store: %w", err)
	}
	defer src.Close()

	settings, err := src.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings from source: %w", err)
	}
	if err := ctx.Store.SaveSettings(settings); err != nil {
		return fmt.Errorf("failed to save settings to destination: %w", err)
	}

	users, err := src.GetAllUsers()
	if err != nil {
		return fmt.Errorf("failed to get users from source: %w", err)
	}

	kinds := []string{constants.RecordKindStats, constants.RecordKindBadges, constants.RecordKindNotifications}
	for _, u := range users {
		if err := ctx.Store.AddUser(u); err != nil {
			return err
		}

		payloads := make(map[string][]byte, len(kinds))
		for _, kind := range kinds {
			data, err := src.GetUserRecord(u.ID, kind)
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			if err != nil {
				return fmt.Errorf("failed to read %s for %s: %w", kind, u.Name, err)
			}
			payloads[kind] = data
		}
		if len(payloads) == 0 {
			continue
		}
		if err := ctx.Store.PutUserRecords(u.ID, payloads); err != nil {
			return fmt.Errorf("failed to copy records for %s: %w", u.Name, err)
		}
	}
	ctx.Printf("  Copied %d user(s)\n", len(users))

	return nil
}
