package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/julianstephens/mindful/internal/constants"
)

// GetUserRecord returns the raw payload stored for userID and kind. A missing
// record is reported as fs.ErrNotExist.
func (s *Store) GetUserRecord(userID, kind string) ([]byte, error) {
	var payload string
	err := s.db.QueryRow(`SELECT payload FROM user_records WHERE user_id = ? AND kind = ?`, userID, kind).Scan(&payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("record %s/%s: %w", userID, kind, fs.ErrNotExist)
		}
		return nil, err
	}
	return []byte(payload), nil
}

// PutUserRecords writes every payload in one transaction, keyed by record kind.
func (s *Store) PutUserRecords(userID string, payloads map[string][]byte) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO user_records (user_id, kind, payload, updated_at) VALUES (?, ?, ?, ?)
		ON CONFLICT (user_id, kind) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	now := time.Now().UTC().Format(constants.TimestampFormat)
	for kind, payload := range payloads {
		if _, err := stmt.Exec(userID, kind, string(payload), now); err != nil {
			return fmt.Errorf("failed to write %s record: %w", kind, err)
		}
	}

	return tx.Commit()
}
