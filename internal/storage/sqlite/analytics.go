package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/homefin/hearth/internal/models"
	"github.com/homefin/hearth/internal/storage"
)

// Aggregate recomputes the read-side analytics for entries matching the
// filter. Totals, per-user and monthly groupings cover every entry kind
// so they stay consistent with balances; the per-product grouping covers
// purchases only, keyed off the kind column rather than label text.
func (s *SQLiteStore) Aggregate(ctx context.Context, f storage.EntryFilter) (*models.Analytics, error) {
	where, args := entryFilterClause(f)
	a := &models.Analytics{}

	// Totals.
	var total sql.NullFloat64
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*), SUM(amount) FROM ledger_entries"+where, args...,
	).Scan(&a.TotalContributions, &total)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate totals: %w", err)
	}
	a.TotalAmount = total.Float64

	// Per user, joined with display names.
	userQuery := `
		SELECT e.username, u.full_name, SUM(e.amount), COUNT(*)
		FROM ledger_entries e
		JOIN users u ON u.username = e.username` +
		qualify(where) + `
		GROUP BY e.username, u.full_name
		ORDER BY SUM(e.amount) DESC`

	rows, err := s.db.QueryContext(ctx, userQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate by user: %w", err)
	}
	for rows.Next() {
		var ut models.UserTotal
		if err := rows.Scan(&ut.Username, &ut.FullName, &ut.TotalAmount, &ut.Count); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan user total: %w", err)
		}
		a.ByUser = append(a.ByUser, ut)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate user totals: %w", err)
	}

	// Per product, purchases only.
	productWhere := where
	if productWhere == "" {
		productWhere = " WHERE kind = 'purchase'"
	} else {
		productWhere += " AND kind = 'purchase'"
	}
	productQuery := "SELECT product, SUM(amount), COUNT(*) FROM ledger_entries" +
		productWhere + " GROUP BY product ORDER BY SUM(amount) DESC"

	rows, err = s.db.QueryContext(ctx, productQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate by product: %w", err)
	}
	for rows.Next() {
		var pt models.ProductTotal
		if err := rows.Scan(&pt.Product, &pt.TotalAmount, &pt.Count); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan product total: %w", err)
		}
		a.ByProduct = append(a.ByProduct, pt)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate product totals: %w", err)
	}

	// Per (year, month), newest first.
	monthQuery := `
		SELECT CAST(strftime('%Y', created_at, 'unixepoch') AS INTEGER) AS y,
		       CAST(strftime('%m', created_at, 'unixepoch') AS INTEGER) AS m,
		       SUM(amount), COUNT(*)
		FROM ledger_entries` + where + `
		GROUP BY y, m
		ORDER BY y DESC, m DESC`

	rows, err = s.db.QueryContext(ctx, monthQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate by month: %w", err)
	}
	for rows.Next() {
		var mt models.MonthTotal
		if err := rows.Scan(&mt.Year, &mt.Month, &mt.TotalAmount, &mt.Count); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan month total: %w", err)
		}
		a.Monthly = append(a.Monthly, mt)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate month totals: %w", err)
	}

	return a, nil
}

// qualify prefixes filter columns with the entries table alias for
// queries that join users.
func qualify(where string) string {
	where = strings.ReplaceAll(where, "username = ?", "e.username = ?")
	where = strings.ReplaceAll(where, "home_id = ?", "e.home_id = ?")
	where = strings.ReplaceAll(where, "created_at", "e.created_at")
	return where
}
