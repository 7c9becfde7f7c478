package cli

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/julianstephens/mindful/internal/achievement"
	"github.com/julianstephens/mindful/internal/backup"
	"github.com/julianstephens/mindful/internal/catalog"
	"github.com/julianstephens/mindful/internal/logger"
	"github.com/julianstephens/mindful/internal/models"
	"github.com/julianstephens/mindful/internal/storage"
)

// ErrNoUser is returned when no user was given and no default user is set.
var ErrNoUser = errors.New("no user selected, run 'mindful user add <name>' first")

type Context struct {
	Store   storage.Provider
	Catalog *catalog.Catalog
	Repo    *storage.Repository
	Engine  *achievement.Engine

	// User is the --user flag: a user id or name. Empty means the default user.
	User string
	Out  io.Writer
}

// NewContext wires the repository and engine on top of store.
func NewContext(store storage.Provider, c *catalog.Catalog, opts ...achievement.Option) *Context {
	repo := storage.NewRepository(store, c)
	return &Context{
		Store:   store,
		Catalog: c,
		Repo:    repo,
		Engine:  achievement.NewEngine(repo, opts...),
		Out:     os.Stdout,
	}
}

func (c *Context) Printf(format string, args ...any) {
	fmt.Fprintf(c.Out, format, args...)
}

func (c *Context) Println(args ...any) {
	fmt.Fprintln(c.Out, args...)
}

// ResolveUser returns the user named by --user, falling back to the
// default_user setting.
func (c *Context) ResolveUser() (models.User, error) {
	if c.User != "" {
		return c.LookupUser(c.User)
	}

	settings, err := c.Store.GetSettings()
	if err != nil {
		return models.User{}, fmt.Errorf("failed to get settings: %w", err)
	}
	if settings.DefaultUser == "" {
		return models.User{}, ErrNoUser
	}

	user, err := c.Store.GetUser(settings.DefaultUser)
	if errors.Is(err, fs.ErrNotExist) {
		return models.User{}, fmt.Errorf("default user %s no longer exists, run 'mindful user use <name>'", settings.DefaultUser)
	}
	return user, err
}

// LookupUser finds a user by id, then by name.
func (c *Context) LookupUser(key string) (models.User, error) {
	user, err := c.Store.GetUser(key)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return models.User{}, err
	}

	user, err = c.Store.GetUserByName(key)
	if errors.Is(err, fs.ErrNotExist) {
		return models.User{}, fmt.Errorf("user not found: %s", key)
	}
	return user, err
}

// PerformAutomaticBackup creates a backup and only logs failures.
func (c *Context) PerformAutomaticBackup() {
	mgr := backup.NewManager(c.Store.GetConfigPath())
	if _, err := mgr.CreateBackup(); err != nil {
		logger.Warn("Automatic backup failed", "error", err)
	}
}
