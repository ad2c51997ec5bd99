package service

import (
	"context"
	"log/slog"

	"github.com/homefin/hearth/internal/domain"
	"github.com/homefin/hearth/internal/ledger"
	"github.com/homefin/hearth/internal/models"
	"github.com/homefin/hearth/internal/storage"
)

// LedgerService owns contributions, balances, standings and the
// read-side analytics.
type LedgerService struct {
	store storage.Store
}

// NewLedgerService creates a new LedgerService with the given storage backend.
func NewLedgerService(store storage.Store) *LedgerService {
	return &LedgerService{store: store}
}

func (s *LedgerService) requireUser(ctx context.Context, username string) (*models.User, error) {
	user, err := s.store.GetUser(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

// AddContribution records a purchase against the caller and their
// current home. Only positive amounts can be logged; negative entries
// exist solely as transfer adjustments.
func (s *LedgerService) AddContribution(ctx context.Context, username, product string, amount float64, description string) (*models.LedgerEntry, error) {
	if amount <= 0 {
		return nil, domain.ErrNonPositiveAmount
	}

	user, err := s.requireUser(ctx, username)
	if err != nil {
		return nil, err
	}

	entry := &models.LedgerEntry{
		Username:    username,
		HomeID:      user.HomeID,
		Kind:        models.KindPurchase,
		Product:     product,
		Amount:      amount,
		Description: description,
	}
	if err := s.store.CreateEntry(ctx, entry); err != nil {
		return nil, err
	}

	slog.Info("Contribution added", "entry_id", entry.ID, "username", username, "amount", amount)
	return entry, nil
}

// MyContributions lists the caller's entries, newest first.
func (s *LedgerService) MyContributions(ctx context.Context, username string) ([]models.LedgerEntry, error) {
	return s.store.ListEntries(ctx, storage.EntryFilter{Username: username})
}

// HomeContributions lists the caller's home entries with display names.
func (s *LedgerService) HomeContributions(ctx context.Context, username string) ([]models.EntryWithUser, error) {
	user, err := s.requireUser(ctx, username)
	if err != nil {
		return nil, err
	}
	if user.HomeID == "" {
		return nil, domain.ErrNoHome
	}
	return s.store.ListEntriesWithUsers(ctx, storage.EntryFilter{HomeID: user.HomeID})
}

// DeleteContribution removes one of the caller's own entries.
func (s *LedgerService) DeleteContribution(ctx context.Context, username, entryID string) error {
	if err := s.store.DeleteEntry(ctx, entryID, username); err != nil {
		return err
	}
	slog.Info("Contribution deleted", "entry_id", entryID, "username", username)
	return nil
}

// Balance returns the signed sum of the user's ledger entries.
func (s *LedgerService) Balance(ctx context.Context, username string) (float64, error) {
	if _, err := s.requireUser(ctx, username); err != nil {
		return 0, err
	}
	return s.store.SumEntries(ctx, storage.EntryFilter{Username: username})
}

// Statistics summarizes the user's ledger activity: entry count, signed
// total, and the five most recent entries.
func (s *LedgerService) Statistics(ctx context.Context, username string) (*models.UserStatistics, error) {
	if _, err := s.requireUser(ctx, username); err != nil {
		return nil, err
	}

	entries, err := s.store.ListEntries(ctx, storage.EntryFilter{Username: username})
	if err != nil {
		return nil, err
	}

	stats := &models.UserStatistics{
		TotalContributions: len(entries),
		TotalAmount:        ledger.Balance(entries),
	}
	if len(entries) > 5 {
		stats.Recent = entries[:5]
	} else {
		stats.Recent = entries
	}
	return stats, nil
}

// Standing classifies the user against their home's average
// contribution. A home-less user gets a zero standing, not an error.
func (s *LedgerService) Standing(ctx context.Context, username string) (*models.Standing, error) {
	user, err := s.requireUser(ctx, username)
	if err != nil {
		return nil, err
	}
	if user.HomeID == "" {
		return &models.Standing{}, nil
	}

	members, err := s.store.GetHomeMembers(ctx, user.HomeID)
	if err != nil {
		return nil, err
	}

	homeTotal, err := s.store.SumEntries(ctx, storage.EntryFilter{HomeID: user.HomeID})
	if err != nil {
		return nil, err
	}

	userTotal, err := s.store.SumEntries(ctx, storage.EntryFilter{Username: username, HomeID: user.HomeID})
	if err != nil {
		return nil, err
	}

	standing := ledger.ComputeStanding(userTotal, homeTotal, len(members))
	return &standing, nil
}

// Analytics recomputes the aggregate report: scoped to the caller's home
// when they have one, global otherwise.
func (s *LedgerService) Analytics(ctx context.Context, username string) (*models.Analytics, error) {
	user, err := s.requireUser(ctx, username)
	if err != nil {
		return nil, err
	}
	return s.store.Aggregate(ctx, storage.EntryFilter{HomeID: user.HomeID})
}

// MonthlyContributions lists entries with display names filtered by an
// optional year or year+month window, scoped like Analytics.
func (s *LedgerService) MonthlyContributions(ctx context.Context, username string, year, month int) ([]models.EntryWithUser, error) {
	user, err := s.requireUser(ctx, username)
	if err != nil {
		return nil, err
	}
	return s.store.ListEntriesWithUsers(ctx, storage.EntryFilter{
		HomeID: user.HomeID,
		Year:   year,
		Month:  month,
	})
}

// MonthlySummary aggregates one calendar month, scoped like Analytics.
func (s *LedgerService) MonthlySummary(ctx context.Context, username string, year, month int) (*models.MonthlySummary, error) {
	user, err := s.requireUser(ctx, username)
	if err != nil {
		return nil, err
	}

	a, err := s.store.Aggregate(ctx, storage.EntryFilter{
		HomeID: user.HomeID,
		Year:   year,
		Month:  month,
	})
	if err != nil {
		return nil, err
	}

	return &models.MonthlySummary{
		Year:        year,
		Month:       month,
		TotalAmount: a.TotalAmount,
		TotalCount:  a.TotalContributions,
		ByUser:      a.ByUser,
		ByProduct:   a.ByProduct,
	}, nil
}
