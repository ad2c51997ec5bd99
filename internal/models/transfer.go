package models

// Transfer records money moved directly between two members of the same
// home. Transfers are immutable: created by the transfer operation, never
// updated or deleted. The balance effect lives in the paired ledger
// adjustments written in the same transaction.
type Transfer struct {
	// ID is the unique identifier for the transfer (UUID format).
	ID string `json:"id"`

	// SenderUsername is the member giving money.
	SenderUsername string `json:"sender_username"`

	// RecipientUsername is the member receiving money.
	RecipientUsername string `json:"recipient_username"`

	// HomeID is the home both members belonged to at transfer time.
	HomeID string `json:"home_id"`

	// Amount is the transferred amount, always positive.
	Amount float64 `json:"amount"`

	// Description is optional free text.
	Description string `json:"description,omitempty"`

	// CreatedAt is the Unix timestamp when the transfer was recorded.
	CreatedAt int64 `json:"date_created"`
}

// TransferWithNames is a transfer joined with counterparty display names.
type TransferWithNames struct {
	Transfer

	// SenderFullName is the display name of the sender.
	SenderFullName string `json:"sender_full_name"`

	// RecipientFullName is the display name of the recipient.
	RecipientFullName string `json:"recipient_full_name"`
}
