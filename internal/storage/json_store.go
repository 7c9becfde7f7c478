package storage

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/julianstephens/mindful/internal/models"
)

// Store is the on-disk layout of the JSON file store.
type Store struct {
	Version  int                                   `json:"version"`
	Settings models.Settings                       `json:"settings"`
	Users    map[string]models.User                `json:"users"`
	Records  map[string]map[string]json.RawMessage `json:"records"` // user id -> kind -> payload
}

// JSONStore keeps everything in a single JSON document that is rewritten on
// every change.
type JSONStore struct {
	path  string
	store *Store
}

func NewJSONStore(configPath string) *JSONStore {
	return &JSONStore{
		path: configPath,
	}
}

func (s *JSONStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("storage already initialized at %s", s.path)
	}

	s.store = &Store{
		Version: 1,
		Users:   make(map[string]models.User),
		Records: make(map[string]map[string]json.RawMessage),
	}

	return s.save()
}

func (s *JSONStore) Load() error {
	if s.store != nil {
		return nil
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("storage not initialized, run 'mindful init' first")
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	store := &Store{}
	if err := json.Unmarshal(data, store); err != nil {
		return fmt.Errorf("failed to parse storage: %w", err)
	}
	if store.Users == nil {
		store.Users = make(map[string]models.User)
	}
	if store.Records == nil {
		store.Records = make(map[string]map[string]json.RawMessage)
	}
	s.store = store

	return nil
}

func (s *JSONStore) Close() error {
	s.store = nil
	return nil
}

func (s *JSONStore) save() error {
	data, err := json.MarshalIndent(s.store, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	// Write to a temp file first so a crash never leaves a truncated store.
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}

	return nil
}

func (s *JSONStore) GetSettings() (models.Settings, error) {
	if s.store == nil {
		return models.Settings{}, fmt.Errorf("storage not loaded")
	}
	return s.store.Settings, nil
}

func (s *JSONStore) SaveSettings(settings models.Settings) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}
	s.store.Settings = settings
	return s.save()
}

func (s *JSONStore) AddUser(user models.User) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}
	if _, ok := s.store.Users[user.ID]; ok {
		return fmt.Errorf("user already exists: %s", user.ID)
	}
	for _, u := range s.store.Users {
		if u.Name == user.Name {
			return fmt.Errorf("user name already taken: %s", user.Name)
		}
	}

	s.store.Users[user.ID] = user
	return s.save()
}

func (s *JSONStore) GetUser(id string) (models.User, error) {
	if s.store == nil {
		return models.User{}, fmt.Errorf("storage not loaded")
	}
	user, ok := s.store.Users[id]
	if !ok {
		return models.User{}, fmt.Errorf("user %s: %w", id, fs.ErrNotExist)
	}
	return user, nil
}

func (s *JSONStore) GetUserByName(name string) (models.User, error) {
	if s.store == nil {
		return models.User{}, fmt.Errorf("storage not loaded")
	}
	for _, u := range s.store.Users {
		if u.Name == name {
			return u, nil
		}
	}
	return models.User{}, fmt.Errorf("user %s: %w", name, fs.ErrNotExist)
}

func (s *JSONStore) GetAllUsers() ([]models.User, error) {
	if s.store == nil {
		return nil, fmt.Errorf("storage not loaded")
	}

	users := make([]models.User, 0, len(s.store.Users))
	for _, u := range s.store.Users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool {
		return users[i].CreatedAt.Before(users[j].CreatedAt)
	})
	return users, nil
}

func (s *JSONStore) DeleteUser(id string) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}
	if _, ok := s.store.Users[id]; !ok {
		return fmt.Errorf("user %s: %w", id, fs.ErrNotExist)
	}

	delete(s.store.Users, id)
	delete(s.store.Records, id)
	return s.save()
}

func (s *JSONStore) GetUserRecord(userID, kind string) ([]byte, error) {
	if s.store == nil {
		return nil, fmt.Errorf("storage not loaded")
	}
	payload, ok := s.store.Records[userID][kind]
	if !ok {
		return nil, fmt.Errorf("record %s/%s: %w", userID, kind, fs.ErrNotExist)
	}
	return []byte(payload), nil
}

func (s *JSONStore) PutUserRecords(userID string, payloads map[string][]byte) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	prev, had := s.store.Records[userID]
	records := make(map[string]json.RawMessage, len(prev)+len(payloads))
	for kind, payload := range prev {
		records[kind] = payload
	}
	for kind, payload := range payloads {
		records[kind] = json.RawMessage(payload)
	}

	s.store.Records[userID] = records
	if err := s.save(); err != nil {
		if had {
			s.store.Records[userID] = prev
		} else {
			delete(s.store.Records, userID)
		}
		return err
	}
	return nil
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}
