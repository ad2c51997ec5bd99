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

const requestColumns = "id, username, home_id, home_name, status, created_at, processed_at"

// CreateJoinRequest persists a pending request. The partial unique index
// on (username) WHERE status = 'pending' enforces at most one pending
// request per user.
func (s *SQLiteStore) CreateJoinRequest(ctx context.Context, req *models.JoinRequest) error {
	if req.ID == "" {
		req.ID = uuid.New().String()
	}
	if req.CreatedAt == 0 {
		req.CreatedAt = time.Now().Unix()
	}
	if req.Status == "" {
		req.Status = models.JoinRequestPending
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO join_requests (id, username, home_id, home_name, status, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		req.ID, req.Username, req.HomeID, req.HomeName, string(req.Status), req.CreatedAt,
	)
	if err != nil {
		if strings.Contains(err.Error(), "idx_join_requests_one_pending") ||
			strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return domain.ErrRequestAlreadyExists
		}
		return fmt.Errorf("failed to insert join request: %w", err)
	}

	return nil
}

func scanRequest(row interface{ Scan(...any) error }) (*models.JoinRequest, error) {
	req := &models.JoinRequest{}
	var status string
	var processedAt sql.NullInt64

	err := row.Scan(&req.ID, &req.Username, &req.HomeID, &req.HomeName, &status, &req.CreatedAt, &processedAt)
	if err != nil {
		return nil, err
	}

	req.Status = models.JoinRequestStatus(status)
	if processedAt.Valid {
		req.ProcessedAt = processedAt.Int64
	}
	return req, nil
}

// GetJoinRequest retrieves a request by ID.
func (s *SQLiteStore) GetJoinRequest(ctx context.Context, requestID string) (*models.JoinRequest, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+requestColumns+" FROM join_requests WHERE id = ?", requestID)

	req, err := scanRequest(row)
	if err == sql.ErrNoRows {
		return nil, nil // Request not found
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get join request: %w", err)
	}
	return req, nil
}

// GetPendingRequestByUser returns the user's pending request, if any.
func (s *SQLiteStore) GetPendingRequestByUser(ctx context.Context, username string) (*models.JoinRequest, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+requestColumns+" FROM join_requests WHERE username = ? AND status = 'pending'", username)

	req, err := scanRequest(row)
	if err == sql.ErrNoRows {
		return nil, nil // No pending request
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get pending request: %w", err)
	}
	return req, nil
}

// ListPendingRequests returns a home's pending requests with applicant
// details, newest first.
func (s *SQLiteStore) ListPendingRequests(ctx context.Context, homeID string) ([]models.JoinRequestWithUser, error) {
	query := `
		SELECT r.id, r.username, r.home_id, r.home_name, r.status, r.created_at, r.processed_at,
		       u.full_name, u.email
		FROM join_requests r
		JOIN users u ON u.username = r.username
		WHERE r.home_id = ? AND r.status = 'pending'
		ORDER BY r.created_at DESC, r.id`

	rows, err := s.db.QueryContext(ctx, query, homeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending requests: %w", err)
	}
	defer rows.Close()

	var requests []models.JoinRequestWithUser
	for rows.Next() {
		var r models.JoinRequestWithUser
		var status string
		var processedAt sql.NullInt64

		err := rows.Scan(&r.ID, &r.Username, &r.HomeID, &r.HomeName, &status, &r.CreatedAt, &processedAt,
			&r.FullName, &r.Email)
		if err != nil {
			return nil, fmt.Errorf("failed to scan join request: %w", err)
		}

		r.Status = models.JoinRequestStatus(status)
		if processedAt.Valid {
			r.ProcessedAt = processedAt.Int64
		}
		requests = append(requests, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate join requests: %w", err)
	}

	return requests, nil
}

// ApproveJoinRequest marks a pending request approved and assigns the
// applicant to the home in one transaction, so a crash between the two
// writes cannot leave an approved request without the membership.
func (s *SQLiteStore) ApproveJoinRequest(ctx context.Context, requestID string, processedAt int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var username, homeID, status string
	err = tx.QueryRowContext(ctx,
		"SELECT username, home_id, status FROM join_requests WHERE id = ?", requestID,
	).Scan(&username, &homeID, &status)
	if err == sql.ErrNoRows {
		return domain.ErrRequestNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to load join request: %w", err)
	}
	if status != string(models.JoinRequestPending) {
		return domain.ErrRequestNotPending
	}

	_, err = tx.ExecContext(ctx,
		"UPDATE join_requests SET status = ?, processed_at = ? WHERE id = ?",
		string(models.JoinRequestApproved), processedAt, requestID,
	)
	if err != nil {
		return fmt.Errorf("failed to approve join request: %w", err)
	}

	// Guard against the applicant having joined a home since the
	// request was filed; the whole approval rolls back in that case.
	res, err := tx.ExecContext(ctx,
		"UPDATE users SET home_id = ? WHERE username = ? AND home_id IS NULL",
		homeID, username,
	)
	if err != nil {
		return fmt.Errorf("failed to assign home: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to assign home: %w", err)
	}
	if n == 0 {
		var exists int
		if err := tx.QueryRowContext(ctx,
			"SELECT COUNT(*) FROM users WHERE username = ?", username,
		).Scan(&exists); err != nil {
			return fmt.Errorf("failed to check applicant: %w", err)
		}
		if exists == 0 {
			return domain.ErrUserNotFound
		}
		return domain.ErrAlreadyInHome
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// SetJoinRequestStatus transitions a pending request, stamping the
// processed timestamp. Transitioning an already-processed request
// reports domain.ErrRequestNotPending.
func (s *SQLiteStore) SetJoinRequestStatus(ctx context.Context, requestID string, status models.JoinRequestStatus, processedAt int64) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE join_requests SET status = ?, processed_at = ? WHERE id = ? AND status = 'pending'",
		string(status), processedAt, requestID,
	)
	if err != nil {
		return fmt.Errorf("failed to update join request: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update join request: %w", err)
	}
	if n == 0 {
		// Either unknown or already processed; disambiguate for the caller.
		req, err := s.GetJoinRequest(ctx, requestID)
		if err != nil {
			return err
		}
		if req == nil {
			return domain.ErrRequestNotFound
		}
		return domain.ErrRequestNotPending
	}
	return nil
}
