package users

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/google/uuid"

	"github.com/julianstephens/mindful/internal/cli"
	"github.com/julianstephens/mindful/internal/cli/render"
	"github.com/julianstephens/mindful/internal/models"
)

type UserCmd struct {
	Add    AddCmd    `cmd:"" help:"Add a local user."`
	List   ListCmd   `cmd:"" help:"List users." default:"1"`
	Use    UseCmd    `cmd:"" help:"Make a user the default."`
	Delete DeleteCmd `cmd:"" help:"Delete a user and all of their progress."`
}

type AddCmd struct {
	Name    string `arg:"" help:"Display name of the user."`
	Default bool   `help:"Make the new user the default user."`
}

func (c *AddCmd) Run(ctx *cli.Context) error {
	name := strings.TrimSpace(c.Name)
	if name == "" {
		return fmt.Errorf("user name cannot be empty")
	}
	if _, err := ctx.Store.GetUserByName(name); err == nil {
		return fmt.Errorf("user name already taken: %s", name)
	}

	user := models.User{
		ID:        uuid.NewString(),
		Name:      name,
		CreatedAt: time.Now(),
	}
	if err := ctx.Store.AddUser(user); err != nil {
		return err
	}

	// Write the starting record so the badge list is pinned from day one.
	record, err := ctx.Repo.Load(user.ID)
	if err != nil {
		return err
	}
	if err := ctx.Repo.Save(user.ID, record); err != nil {
		return err
	}

	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	if c.Default || settings.DefaultUser == "" {
		settings.DefaultUser = user.ID
		if err := ctx.Store.SaveSettings(settings); err != nil {
			return fmt.Errorf("failed to save settings: %w", err)
		}
	}

	ctx.Printf("Added user %s (%s)\n", user.Name, user.ID)
	return nil
}

type ListCmd struct{}

func (c *ListCmd) Run(ctx *cli.Context) error {
	users, err := ctx.Store.GetAllUsers()
	if err != nil {
		return err
	}
	if len(users) == 0 {
		ctx.Println("No users yet. Add one with 'mindful user add <name>'.")
		return nil
	}

	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	for _, u := range users {
		marker := "  "
		if u.ID == settings.DefaultUser {
			marker = render.SuccessStyle.Render("* ")
		}
		ctx.Printf("%s%-20s %s\n", marker, u.Name, u.ID)
	}
	return nil
}

type UseCmd struct {
	User string `arg:"" help:"Name or id of the user."`
}

func (c *UseCmd) Run(ctx *cli.Context) error {
	user, err := ctx.LookupUser(c.User)
	if err != nil {
		return err
	}

	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	settings.DefaultUser = user.ID
	if err := ctx.Store.SaveSettings(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	ctx.Printf("Default user is now %s\n", user.Name)
	return nil
}

type DeleteCmd struct {
	User string `arg:"" help:"Name or id of the user."`
	Yes  bool   `short:"y" help:"Skip the confirmation prompt."`
}

func (c *DeleteCmd) Run(ctx *cli.Context) error {
	user, err := ctx.LookupUser(c.User)
	if err != nil {
		return err
	}

	if !c.Yes {
		confirmed := false
		err := huh.NewConfirm().
			Title(fmt.Sprintf("Delete %s and all of their progress?", user.Name)).
			Affirmative("Delete").
			Negative("Cancel").
			Value(&confirmed).
			Run()
		if err != nil {
			return err
		}
		if !confirmed {
			ctx.Println("Delete cancelled.")
			return nil
		}
	}

	ctx.PerformAutomaticBackup()

	if err := ctx.Store.DeleteUser(user.ID); err != nil {
		return err
	}

	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	if settings.DefaultUser == user.ID {
		settings.DefaultUser = ""
		if err := ctx.Store.SaveSettings(settings); err != nil {
			return fmt.Errorf("failed to save settings: %w", err)
		}
	}

	ctx.Printf("Deleted user %s\n", user.Name)
	return nil
}
