package storage

import (
	"path/filepath"
	"strings"

	"github.com/julianstephens/mindful/internal/storage/sqlite"
)

// Open returns the provider for path: a JSON file store for *.json paths,
// SQLite otherwise. The store still has to be initialized or loaded.
func Open(path string) Provider {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return NewJSONStore(path)
	}
	return sqlite.NewStore(path)
}
