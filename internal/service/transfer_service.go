package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/homefin/hearth/internal/domain"
	"github.com/homefin/hearth/internal/ledger"
	"github.com/homefin/hearth/internal/models"
	"github.com/homefin/hearth/internal/storage"
)

// defaultTransferNote is used when the sender gives no description.
const defaultTransferNote = "Fund transfer to balance contributions"

// TransferService owns the transfer operation and transfer history.
type TransferService struct {
	store storage.Store
}

// NewTransferService creates a new TransferService with the given
// storage backend.
func NewTransferService(store storage.Store) *TransferService {
	return &TransferService{store: store}
}

// TransferHistory is a user's sent and received transfers.
type TransferHistory struct {
	Sent     []models.TransferWithNames `json:"sent"`
	Received []models.TransferWithNames `json:"received"`
}

// Create validates and records a transfer: one transfer row plus the
// paired ledger adjustments, written atomically by the store.
//
// Validation order: existence, self-transfer, same home, positive
// amount, standing rule (below-average sender, above-average recipient),
// sufficient sender total.
func (s *TransferService) Create(ctx context.Context, senderUsername, recipientUsername string, amount float64, description string) (*models.Transfer, error) {
	sender, err := s.store.GetUser(ctx, senderUsername)
	if err != nil {
		return nil, err
	}
	recipient, err := s.store.GetUser(ctx, recipientUsername)
	if err != nil {
		return nil, err
	}
	if sender == nil || recipient == nil {
		return nil, domain.ErrUserNotFound
	}

	senderStanding, err := s.standing(ctx, sender)
	if err != nil {
		return nil, err
	}
	recipientStanding, err := s.standing(ctx, recipient)
	if err != nil {
		return nil, err
	}

	if err := ledger.ValidateTransfer(sender, recipient, senderStanding, recipientStanding, amount); err != nil {
		slog.Warn("Transfer rejected",
			"sender", senderUsername,
			"recipient", recipientUsername,
			"amount", amount,
			"reason", err,
		)
		return nil, err
	}

	note := description
	if note == "" {
		note = defaultTransferNote
	}

	transfer := &models.Transfer{
		SenderUsername:    senderUsername,
		RecipientUsername: recipientUsername,
		HomeID:            sender.HomeID,
		Amount:            amount,
		Description:       note,
	}

	out := &models.LedgerEntry{
		Username:    senderUsername,
		HomeID:      sender.HomeID,
		Kind:        models.KindTransferOut,
		Product:     fmt.Sprintf("Fund transfer to %s", recipient.FullName),
		Amount:      amount,
		Description: fmt.Sprintf("Transfer to %s: %s", recipient.FullName, note),
	}
	in := &models.LedgerEntry{
		Username:    recipientUsername,
		HomeID:      recipient.HomeID,
		Kind:        models.KindTransferIn,
		Product:     fmt.Sprintf("Fund received from %s", sender.FullName),
		Amount:      -amount,
		Description: fmt.Sprintf("Received from %s: %s", sender.FullName, note),
	}

	if err := s.store.CreateTransfer(ctx, transfer, out, in); err != nil {
		return nil, err
	}

	slog.Info("Transfer recorded",
		"transfer_id", transfer.ID,
		"sender", senderUsername,
		"recipient", recipientUsername,
		"amount", amount,
	)
	return transfer, nil
}

// History returns the user's sent and received transfers.
func (s *TransferService) History(ctx context.Context, username string) (*TransferHistory, error) {
	sent, err := s.store.ListTransfersBySender(ctx, username)
	if err != nil {
		return nil, err
	}
	received, err := s.store.ListTransfersByRecipient(ctx, username)
	if err != nil {
		return nil, err
	}
	return &TransferHistory{Sent: sent, Received: received}, nil
}

// Recipients lists the same-home members eligible to receive a transfer
// from the sender.
func (s *TransferService) Recipients(ctx context.Context, senderUsername string) ([]models.EligibleRecipient, error) {
	sender, err := s.store.GetUser(ctx, senderUsername)
	if err != nil {
		return nil, err
	}
	if sender == nil {
		return nil, domain.ErrUserNotFound
	}
	if sender.HomeID == "" {
		return nil, nil
	}

	members, err := s.store.GetHomeMembers(ctx, sender.HomeID)
	if err != nil {
		return nil, err
	}

	totals := make(map[string]float64, len(members))
	for _, m := range members {
		total, err := s.store.SumEntries(ctx, storage.EntryFilter{Username: m.Username, HomeID: sender.HomeID})
		if err != nil {
			return nil, err
		}
		totals[m.Username] = total
	}

	return ledger.EligibleRecipients(senderUsername, members, totals, len(members)), nil
}

// standing computes a member's position against their home average.
func (s *TransferService) standing(ctx context.Context, user *models.User) (models.Standing, error) {
	if user.HomeID == "" {
		return models.Standing{}, nil
	}

	members, err := s.store.GetHomeMembers(ctx, user.HomeID)
	if err != nil {
		return models.Standing{}, err
	}
	homeTotal, err := s.store.SumEntries(ctx, storage.EntryFilter{HomeID: user.HomeID})
	if err != nil {
		return models.Standing{}, err
	}
	userTotal, err := s.store.SumEntries(ctx, storage.EntryFilter{Username: user.Username, HomeID: user.HomeID})
	if err != nil {
		return models.Standing{}, err
	}

	return ledger.ComputeStanding(userTotal, homeTotal, len(members)), nil
}
