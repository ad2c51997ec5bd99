package models

// EntryKind discriminates real purchases from the paired adjustments a
// transfer writes into the ledger. Reporting code filters on this field;
// balance and average computations include every kind.
type EntryKind string

const (
	// KindPurchase is an ordinary contribution: money spent on the household.
	KindPurchase EntryKind = "purchase"

	// KindTransferOut is the positive adjustment on the sender of a transfer.
	KindTransferOut EntryKind = "transfer_out"

	// KindTransferIn is the negative adjustment on the recipient of a transfer.
	KindTransferIn EntryKind = "transfer_in"
)

// Synthetic reports whether the entry was generated by a transfer rather
// than logged by a user.
func (k EntryKind) Synthetic() bool {
	return k == KindTransferOut || k == KindTransferIn
}

// LedgerEntry is a signed monetary record attributed to a user and,
// denormalized at creation time, to that user's home. Entries are
// immutable once created; the only mutation is owner-scoped deletion.
type LedgerEntry struct {
	// ID is the unique identifier for the entry (UUID format).
	ID string `json:"id"`

	// Username is the owning user.
	Username string `json:"username"`

	// HomeID is the owner's home at creation time, empty if none.
	HomeID string `json:"home_id,omitempty"`

	// Kind tags the entry as a purchase or a transfer adjustment.
	Kind EntryKind `json:"kind"`

	// Product is the product or label string (e.g., "Groceries").
	Product string `json:"product_name"`

	// Amount is the signed monetary amount. Positive = spent on the
	// household. Transfer adjustments use +amount on the sender and
	// -amount on the recipient.
	Amount float64 `json:"amount"`

	// Description is optional free text.
	Description string `json:"description,omitempty"`

	// CreatedAt is the Unix timestamp when the entry was created.
	CreatedAt int64 `json:"date_created"`
}

// EntryWithUser is a ledger entry joined with the owner's display name,
// used by home-wide listings and monthly reports.
type EntryWithUser struct {
	LedgerEntry

	// UserFullName is the display name of the owning user.
	UserFullName string `json:"user_full_name"`
}
