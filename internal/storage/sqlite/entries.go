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
	"github.com/homefin/hearth/internal/storage"
)

const entryColumns = "id, username, home_id, kind, product, amount, description, created_at"

// entryFilterClause builds the WHERE clause for an EntryFilter. Year and
// year+month filters become half-open [start, end) unix ranges.
func entryFilterClause(f storage.EntryFilter) (string, []any) {
	var conds []string
	var args []any

	if f.Username != "" {
		conds = append(conds, "username = ?")
		args = append(args, f.Username)
	}
	if f.HomeID != "" {
		conds = append(conds, "home_id = ?")
		args = append(args, f.HomeID)
	}
	if f.Year != 0 {
		var start, end time.Time
		if f.Month != 0 {
			start = time.Date(f.Year, time.Month(f.Month), 1, 0, 0, 0, 0, time.UTC)
			end = start.AddDate(0, 1, 0)
		} else {
			start = time.Date(f.Year, time.January, 1, 0, 0, 0, 0, time.UTC)
			end = start.AddDate(1, 0, 0)
		}
		conds = append(conds, "created_at >= ? AND created_at < ?")
		args = append(args, start.Unix(), end.Unix())
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func scanEntry(row interface{ Scan(...any) error }) (*models.LedgerEntry, error) {
	entry := &models.LedgerEntry{}
	var homeID, description sql.NullString
	var kind string

	err := row.Scan(
		&entry.ID,
		&entry.Username,
		&homeID,
		&kind,
		&entry.Product,
		&entry.Amount,
		&description,
		&entry.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	entry.Kind = models.EntryKind(kind)
	if homeID.Valid {
		entry.HomeID = homeID.String
	}
	if description.Valid {
		entry.Description = description.String
	}
	return entry, nil
}

// CreateEntry persists a signed ledger entry.
func (s *SQLiteStore) CreateEntry(ctx context.Context, entry *models.LedgerEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.CreatedAt == 0 {
		entry.CreatedAt = time.Now().Unix()
	}
	if entry.Kind == "" {
		entry.Kind = models.KindPurchase
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO ledger_entries (id, username, home_id, kind, product, amount, description, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.ID, entry.Username, nullableString(entry.HomeID), string(entry.Kind),
		entry.Product, entry.Amount, nullableString(entry.Description), entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert entry: %w", err)
	}

	return nil
}

// ListEntries returns entries matching the filter, newest first.
func (s *SQLiteStore) ListEntries(ctx context.Context, f storage.EntryFilter) ([]models.LedgerEntry, error) {
	where, args := entryFilterClause(f)
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+entryColumns+" FROM ledger_entries"+where+" ORDER BY created_at DESC, id", args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}
	defer rows.Close()

	var entries []models.LedgerEntry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}
		entries = append(entries, *entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate entries: %w", err)
	}

	return entries, nil
}

// ListEntriesWithUsers returns entries joined with owner display names,
// newest first.
func (s *SQLiteStore) ListEntriesWithUsers(ctx context.Context, f storage.EntryFilter) ([]models.EntryWithUser, error) {
	where, args := entryFilterClause(f)
	where = qualify(where)

	query := `
		SELECT e.id, e.username, e.home_id, e.kind, e.product, e.amount, e.description, e.created_at, u.full_name
		FROM ledger_entries e
		JOIN users u ON u.username = e.username` + where + `
		ORDER BY e.created_at DESC, e.id`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries with users: %w", err)
	}
	defer rows.Close()

	var entries []models.EntryWithUser
	for rows.Next() {
		var e models.EntryWithUser
		var homeID, description sql.NullString
		var kind string

		err := rows.Scan(&e.ID, &e.Username, &homeID, &kind, &e.Product, &e.Amount, &description, &e.CreatedAt, &e.UserFullName)
		if err != nil {
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}

		e.Kind = models.EntryKind(kind)
		if homeID.Valid {
			e.HomeID = homeID.String
		}
		if description.Valid {
			e.Description = description.String
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate entries: %w", err)
	}

	return entries, nil
}

// DeleteEntry removes an entry only when owned by the requesting user.
// A wrong owner and a missing entry report the same condition, so other
// users cannot probe for entry existence.
func (s *SQLiteStore) DeleteEntry(ctx context.Context, entryID, username string) error {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM ledger_entries WHERE id = ? AND username = ?",
		entryID, username,
	)
	if err != nil {
		return fmt.Errorf("failed to delete entry: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete entry: %w", err)
	}
	if n == 0 {
		return domain.ErrEntryNotFound
	}
	return nil
}

// SumEntries returns the signed total of entries matching the filter.
func (s *SQLiteStore) SumEntries(ctx context.Context, f storage.EntryFilter) (float64, error) {
	where, args := entryFilterClause(f)

	var total sql.NullFloat64
	err := s.db.QueryRowContext(ctx,
		"SELECT SUM(amount) FROM ledger_entries"+where, args...).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to sum entries: %w", err)
	}

	// SUM over no rows is NULL, which is a zero balance here.
	return total.Float64, nil
}
