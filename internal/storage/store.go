// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"

	"github.com/homefin/hearth/internal/models"
)

// EntryFilter narrows ledger queries. Zero values mean "no filter";
// Month requires Year.
type EntryFilter struct {
	Username string
	HomeID   string
	Year     int
	Month    int
}

// Store defines the single storage contract for all record sets. One
// implementation backs it, chosen at deployment time.
type Store interface {
	// Users

	// CreateUser persists a new user. Fails with domain.ErrUsernameTaken
	// or domain.ErrEmailTaken on uniqueness violations.
	CreateUser(ctx context.Context, user *models.User) error
	// GetUser retrieves a user by username. Returns nil, nil when absent.
	GetUser(ctx context.Context, username string) (*models.User, error)
	// GetUserByEmail retrieves a user by email. Returns nil, nil when absent.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	// UpdateUserProfile updates display name and email.
	UpdateUserProfile(ctx context.Context, username, fullName, email string) error
	// ListUsers returns all users ordered by full name.
	ListUsers(ctx context.Context) ([]models.User, error)

	// Homes

	// CreateHome persists a new home and assigns its leader to it.
	CreateHome(ctx context.Context, home *models.Home) error
	// GetHome retrieves a home by ID. Returns nil, nil when absent.
	GetHome(ctx context.Context, homeID string) (*models.Home, error)
	// GetHomeByName retrieves a home by its unique name. Returns nil, nil when absent.
	GetHomeByName(ctx context.Context, name string) (*models.Home, error)
	// GetHomeMembers returns all users whose home is homeID, leader included.
	GetHomeMembers(ctx context.Context, homeID string) ([]models.User, error)
	// SetUserHome assigns or clears (empty homeID) a user's home.
	SetUserHome(ctx context.Context, username, homeID string) error
	// DeleteHome removes an empty home.
	DeleteHome(ctx context.Context, homeID string) error

	// Ledger entries

	// CreateEntry persists a signed ledger entry. ID and CreatedAt are
	// populated by the store if unset.
	CreateEntry(ctx context.Context, entry *models.LedgerEntry) error
	// ListEntries returns entries matching the filter, newest first.
	ListEntries(ctx context.Context, f EntryFilter) ([]models.LedgerEntry, error)
	// ListEntriesWithUsers returns entries joined with owner display
	// names, newest first.
	ListEntriesWithUsers(ctx context.Context, f EntryFilter) ([]models.EntryWithUser, error)
	// DeleteEntry removes an entry only when owned by username; any other
	// combination reports domain.ErrEntryNotFound without revealing
	// whether the entry exists.
	DeleteEntry(ctx context.Context, entryID, username string) error
	// SumEntries returns the signed total of entries matching the filter.
	SumEntries(ctx context.Context, f EntryFilter) (float64, error)

	// Transfers

	// CreateTransfer atomically writes the transfer row and the paired
	// ledger adjustments (+amount transfer_out on the sender, -amount
	// transfer_in on the recipient). The sender-total guard is re-checked
	// inside the same transaction, so concurrent transfers cannot drive a
	// sender's total below zero.
	CreateTransfer(ctx context.Context, transfer *models.Transfer, out, in *models.LedgerEntry) error
	// ListTransfersBySender returns transfers sent by username with
	// counterparty names, newest first.
	ListTransfersBySender(ctx context.Context, username string) ([]models.TransferWithNames, error)
	// ListTransfersByRecipient returns transfers received by username
	// with counterparty names, newest first.
	ListTransfersByRecipient(ctx context.Context, username string) ([]models.TransferWithNames, error)

	// Join requests

	// CreateJoinRequest persists a pending request. Fails with
	// domain.ErrRequestAlreadyExists when the user already has one pending.
	CreateJoinRequest(ctx context.Context, req *models.JoinRequest) error
	// GetJoinRequest retrieves a request by ID. Returns nil, nil when absent.
	GetJoinRequest(ctx context.Context, requestID string) (*models.JoinRequest, error)
	// GetPendingRequestByUser returns the user's pending request, nil when none.
	GetPendingRequestByUser(ctx context.Context, username string) (*models.JoinRequest, error)
	// ListPendingRequests returns a home's pending requests with
	// applicant details, newest first.
	ListPendingRequests(ctx context.Context, homeID string) ([]models.JoinRequestWithUser, error)
	// SetJoinRequestStatus transitions a pending request and stamps the
	// processed timestamp.
	SetJoinRequestStatus(ctx context.Context, requestID string, status models.JoinRequestStatus, processedAt int64) error
	// ApproveJoinRequest atomically marks a pending request approved and
	// assigns the applicant to the requested home. Fails with
	// domain.ErrAlreadyInHome, leaving the request pending, when the
	// applicant joined a home in the meantime.
	ApproveJoinRequest(ctx context.Context, requestID string, processedAt int64) error

	// Analytics

	// Aggregate computes the read-side analytics for entries matching
	// the filter. Product aggregation excludes transfer adjustments.
	Aggregate(ctx context.Context, f EntryFilter) (*models.Analytics, error)

	// Close releases any resources held by the store.
	Close() error
}
