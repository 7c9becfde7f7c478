package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/julianstephens/mindful/internal/constants"
	"github.com/julianstephens/mindful/internal/models"
)

func (s *Store) AddUser(user models.User) error {
	_, err := s.db.Exec(`INSERT INTO users (id, name, created_at) VALUES (?, ?, ?)`,
		user.ID, user.Name, user.CreatedAt.Format(constants.TimestampFormat))
	if err != nil {
		return fmt.Errorf("failed to add user %q: %w", user.Name, err)
	}
	return nil
}

func (s *Store) GetUser(id string) (models.User, error) {
	row := s.db.QueryRow(`SELECT id, name, created_at FROM users WHERE id = ?`, id)
	return scanUser(row, id)
}

func (s *Store) GetUserByName(name string) (models.User, error) {
	row := s.db.QueryRow(`SELECT id, name, created_at FROM users WHERE name = ?`, name)
	return scanUser(row, name)
}

func (s *Store) GetAllUsers() ([]models.User, error) {
	rows, err := s.db.Query(`SELECT id, name, created_at FROM users ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var u models.User
		var createdAt string
		if err := rows.Scan(&u.ID, &u.Name, &createdAt); err != nil {
			return nil, err
		}
		u.CreatedAt, err = time.Parse(constants.TimestampFormat, createdAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse created_at for user %s: %w", u.ID, err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// DeleteUser removes the user and every record stored for it.
func (s *Store) DeleteUser(id string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.Exec(`DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("user %s: %w", id, fs.ErrNotExist)
	}
	if _, err := tx.Exec(`DELETE FROM user_records WHERE user_id = ?`, id); err != nil {
		return err
	}

	return tx.Commit()
}

func scanUser(row *sql.Row, key string) (models.User, error) {
	var u models.User
	var createdAt string
	if err := row.Scan(&u.ID, &u.Name, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, fmt.Errorf("user %s: %w", key, fs.ErrNotExist)
		}
		return models.User{}, err
	}

	var err error
	u.CreatedAt, err = time.Parse(constants.TimestampFormat, createdAt)
	if err != nil {
		return models.User{}, fmt.Errorf("failed to parse created_at: %w", err)
	}
	return u, nil
}
