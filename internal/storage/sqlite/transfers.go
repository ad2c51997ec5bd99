package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/homefin/hearth/internal/domain"
	"github.com/homefin/hearth/internal/models"
)

// CreateTransfer writes the transfer row and the paired ledger
// adjustments in one transaction. The sender-total guard runs inside the
// transaction: two concurrent transfers from one sender serialize on the
// write lock and the second re-reads a total that already reflects the
// first, so the sender's total cannot go below zero.
func (s *SQLiteStore) CreateTransfer(ctx context.Context, transfer *models.Transfer, out, in *models.LedgerEntry) error {
	if transfer.ID == "" {
		transfer.ID = uuid.New().String()
	}
	if transfer.CreatedAt == 0 {
		transfer.CreatedAt = time.Now().Unix()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// Authoritative funds check.
	var total sql.NullFloat64
	err = tx.QueryRowContext(ctx,
		"SELECT SUM(amount) FROM ledger_entries WHERE username = ? AND home_id = ?",
		transfer.SenderUsername, transfer.HomeID,
	).Scan(&total)
	if err != nil {
		return fmt.Errorf("failed to check sender total: %w", err)
	}
	if total.Float64 < transfer.Amount {
		return domain.ErrInsufficientFunds
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO transfers (id, sender_username, recipient_username, home_id, amount, description, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		transfer.ID, transfer.SenderUsername, transfer.RecipientUsername, transfer.HomeID,
		transfer.Amount, nullableString(transfer.Description), transfer.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert transfer: %w", err)
	}

	for _, adj := range []*models.LedgerEntry{out, in} {
		if adj.ID == "" {
			adj.ID = uuid.New().String()
		}
		if adj.CreatedAt == 0 {
			adj.CreatedAt = transfer.CreatedAt
		}

		_, err = tx.ExecContext(ctx,
			`INSERT INTO ledger_entries (id, username, home_id, kind, product, amount, description, created_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			adj.ID, adj.Username, nullableString(adj.HomeID), string(adj.Kind),
			adj.Product, adj.Amount, nullableString(adj.Description), adj.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert transfer adjustment: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

const transferJoin = `
	SELECT t.id, t.sender_username, t.recipient_username, t.home_id, t.amount, t.description, t.created_at,
	       su.full_name, ru.full_name
	FROM transfers t
	JOIN users su ON su.username = t.sender_username
	JOIN users ru ON ru.username = t.recipient_username`

func (s *SQLiteStore) listTransfers(ctx context.Context, where string, arg string) ([]models.TransferWithNames, error) {
	rows, err := s.db.QueryContext(ctx, transferJoin+where+" ORDER BY t.created_at DESC, t.id", arg)
	if err != nil {
		return nil, fmt.Errorf("failed to list transfers: %w", err)
	}
	defer rows.Close()

	var transfers []models.TransferWithNames
	for rows.Next() {
		var t models.TransferWithNames
		var description sql.NullString

		err := rows.Scan(&t.ID, &t.SenderUsername, &t.RecipientUsername, &t.HomeID,
			&t.Amount, &description, &t.CreatedAt, &t.SenderFullName, &t.RecipientFullName)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transfer: %w", err)
		}

		if description.Valid {
			t.Description = description.String
		}
		transfers = append(transfers, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate transfers: %w", err)
	}

	return transfers, nil
}

// ListTransfersBySender returns transfers sent by the user, newest first.
func (s *SQLiteStore) ListTransfersBySender(ctx context.Context, username string) ([]models.TransferWithNames, error) {
	return s.listTransfers(ctx, " WHERE t.sender_username = ?", username)
}

// ListTransfersByRecipient returns transfers received by the user, newest first.
func (s *SQLiteStore) ListTransfersByRecipient(ctx context.Context, username string) ([]models.TransferWithNames, error) {
	return s.listTransfers(ctx, " WHERE t.recipient_username = ?", username)
}
