// Package catalog loads the static, ordered badge catalog.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/BurntSushi/toml"

	"github.com/julianstephens/mindful/internal/logger"
	"github.com/julianstephens/mindful/internal/models"
)

//go:embed badges.toml
var defaultCatalog []byte

// ErrInvalidCatalog is returned when a catalog file fails validation.
var ErrInvalidCatalog = errors.New("invalid badge catalog")

// Catalog is an ordered, read-only list of badge definitions.
type Catalog struct {
	badges []models.Badge
	index  map[string]int
}

type file struct {
	Badges []models.Badge `toml:"badge"`
}

var (
	defaultOnce sync.Once
	defaultCat  *Catalog
	defaultErr  error
)

// Default returns the catalog shipped with the application. It is parsed once.
func Default() (*Catalog, error) {
	defaultOnce.Do(func() {
		defaultCat, defaultErr = Parse(defaultCatalog)
	})
	return defaultCat, defaultErr
}

// Load reads a catalog from a TOML file.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates TOML catalog data. Duplicate or empty ids and
// unknown requirement types are rejected. A non-positive requirement value is
// only logged, since progress reporting clamps it.
func Parse(data []byte) (*Catalog, error) {
	var f file
	if _, err := toml.Decode(string(data), &f); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}
	return New(f.Badges)
}

// New builds a catalog from badge definitions, validating them the same way Parse does.
func New(badges []models.Badge) (*Catalog, error) {
	if len(badges) == 0 {
		return nil, fmt.Errorf("%w: no badges defined", ErrInvalidCatalog)
	}

	c := &Catalog{
		badges: models.LockedCopy(badges),
		index:  make(map[string]int, len(badges)),
	}
	for i, b := range c.badges {
		if b.ID == "" {
			return nil, fmt.Errorf("%w: badge at position %d has no id", ErrInvalidCatalog, i)
		}
		if _, dup := c.index[b.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate badge id %q", ErrInvalidCatalog, b.ID)
		}
		if !b.Requirement.Type.Valid() {
			return nil, fmt.Errorf("%w: badge %q has unknown requirement type %q", ErrInvalidCatalog, b.ID, b.Requirement.Type)
		}
		if b.Requirement.Value <= 0 {
			logger.Warn("Badge requirement value is not positive", "badge", b.ID, "value", b.Requirement.Value)
		}
		c.index[b.ID] = i
	}
	return c, nil
}

// Badges returns a locked copy of every badge, in catalog order. This is the
// initial badge state for a new user.
func (c *Catalog) Badges() []models.Badge {
	return models.LockedCopy(c.badges)
}

// Position returns the catalog order of id, or -1 when id is not in the catalog.
func (c *Catalog) Position(id string) int {
	if i, ok := c.index[id]; ok {
		return i
	}
	return -1
}
