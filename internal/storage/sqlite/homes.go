package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/homefin/hearth/internal/domain"
	"github.com/homefin/hearth/internal/models"
)

// CreateHome persists a new home and assigns the leader to it in one
// transaction, so a half-created home never exists.
func (s *SQLiteStore) CreateHome(ctx context.Context, home *models.Home) error {
	if home.ID == "" {
		home.ID = uuid.New().String()
	}
	if home.CreatedAt == 0 {
		home.CreatedAt = time.Now().Unix()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO homes (id, name, description, leader_username, created_at) VALUES (?, ?, ?, ?, ?)",
		home.ID, home.Name, nullableString(home.Description), home.LeaderUsername, home.CreatedAt,
	)
	if err != nil {
		if strings.Contains(err.Error(), "homes.name") {
			return domain.ErrHomeNameTaken
		}
		return fmt.Errorf("failed to insert home: %w", err)
	}

	res, err := tx.ExecContext(ctx,
		"UPDATE users SET home_id = ? WHERE username = ?",
		home.ID, home.LeaderUsername,
	)
	if err != nil {
		return fmt.Errorf("failed to assign leader: %w", err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return fmt.Errorf("failed to assign leader: %w", err)
	} else if n == 0 {
		return domain.ErrUserNotFound
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func scanHome(row interface{ Scan(...any) error }) (*models.Home, error) {
	home := &models.Home{}
	var description sql.NullString

	err := row.Scan(&home.ID, &home.Name, &description, &home.LeaderUsername, &home.CreatedAt)
	if err != nil {
		return nil, err
	}

	if description.Valid {
		home.Description = description.String
	}
	return home, nil
}

const homeColumns = "id, name, description, leader_username, created_at"

// GetHome retrieves a home by ID.
func (s *SQLiteStore) GetHome(ctx context.Context, homeID string) (*models.Home, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+homeColumns+" FROM homes WHERE id = ?", homeID)

	home, err := scanHome(row)
	if err == sql.ErrNoRows {
		return nil, nil // Home not found
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get home: %w", err)
	}
	return home, nil
}

// GetHomeByName retrieves a home by its unique name.
func (s *SQLiteStore) GetHomeByName(ctx context.Context, name string) (*models.Home, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+homeColumns+" FROM homes WHERE name = ?", name)

	home, err := scanHome(row)
	if err == sql.ErrNoRows {
		return nil, nil // Home not found
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get home by name: %w", err)
	}
	return home, nil
}

// GetHomeMembers returns all users belonging to the home, leader included.
func (s *SQLiteStore) GetHomeMembers(ctx context.Context, homeID string) ([]models.User, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE home_id = ? ORDER BY full_name", homeID)
	if err != nil {
		return nil, fmt.Errorf("failed to get home members: %w", err)
	}
	defer rows.Close()

	var members []models.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		members = append(members, *user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate members: %w", err)
	}

	return members, nil
}

// DeleteHome removes a home. Members' home_id clears via the foreign key.
func (s *SQLiteStore) DeleteHome(ctx context.Context, homeID string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM homes WHERE id = ?", homeID)
	if err != nil {
		return fmt.Errorf("failed to delete home: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete home: %w", err)
	}
	if n == 0 {
		return domain.ErrHomeNotFound
	}
	return nil
}
