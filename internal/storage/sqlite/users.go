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

// CreateUser inserts a new user into the database.
func (s *SQLiteStore) CreateUser(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if user.CreatedAt == 0 {
		user.CreatedAt = time.Now().Unix()
	}

	query := `
		INSERT INTO users (id, username, email, full_name, password_hash, is_active, home_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		user.ID,
		user.Username,
		user.Email,
		user.FullName,
		user.PasswordHash,
		boolToInt(user.Active),
		nullableString(user.HomeID),
		user.CreatedAt,
	)

	if err != nil {
		// Map uniqueness violations to distinguishable conditions.
		msg := err.Error()
		switch {
		case strings.Contains(msg, "users.username"):
			return domain.ErrUsernameTaken
		case strings.Contains(msg, "users.email"):
			return domain.ErrEmailTaken
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

const userColumns = "id, username, email, full_name, password_hash, is_active, home_id, created_at"

func scanUser(row interface{ Scan(...any) error }) (*models.User, error) {
	user := &models.User{}
	var active int
	var homeID sql.NullString

	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.FullName,
		&user.PasswordHash,
		&active,
		&homeID,
		&user.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	user.Active = active != 0
	if homeID.Valid {
		user.HomeID = homeID.String
	}
	return user, nil
}

// GetUser retrieves a user by their username.
func (s *SQLiteStore) GetUser(ctx context.Context, username string) (*models.User, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE username = ?", username)

	user, err := scanUser(row)
	if err == sql.ErrNoRows {
		return nil, nil // User not found
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// GetUserByEmail retrieves a user by their email address.
func (s *SQLiteStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE email = ?", email)

	user, err := scanUser(row)
	if err == sql.ErrNoRows {
		return nil, nil // User not found
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return user, nil
}

// UpdateUserProfile updates a user's display name and email.
func (s *SQLiteStore) UpdateUserProfile(ctx context.Context, username, fullName, email string) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE users SET full_name = ?, email = ? WHERE username = ?",
		fullName, email, username,
	)
	if err != nil {
		if strings.Contains(err.Error(), "users.email") {
			return domain.ErrEmailTaken
		}
		return fmt.Errorf("failed to update profile: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}
	if n == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// ListUsers returns all users ordered by full name.
func (s *SQLiteStore) ListUsers(ctx context.Context) ([]models.User, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+userColumns+" FROM users ORDER BY full_name")
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, *user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate users: %w", err)
	}

	return users, nil
}

// SetUserHome assigns or clears a user's home membership.
func (s *SQLiteStore) SetUserHome(ctx context.Context, username, homeID string) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE users SET home_id = ? WHERE username = ?",
		nullableString(homeID), username,
	)
	if err != nil {
		return fmt.Errorf("failed to set user home: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to set user home: %w", err)
	}
	if n == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func nullableString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
