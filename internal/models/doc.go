// Package models defines the core domain records for Hearth.
//
// # Models
//
//   - User: a registered account, optionally belonging to one Home
//   - Home: a household group with a leader and members
//   - LedgerEntry: a signed monetary record attributed to a user and home
//   - Transfer: money moved between two members of the same home
//   - JoinRequest: a pending application to join a home
//
// Report records (Standing, Analytics, MonthlySummary, ...) are derived
// on demand and never persisted.
//
// # Design Principles
//
// 1. **Plain data**: no behavior beyond trivial helpers; computation lives
// in internal/ledger and internal/service
// 2. **Avoid circular references**: relationships use ID/username strings,
// never pointers between models
// 3. **Explicit entry kinds**: transfer adjustments carry a tagged
// EntryKind instead of being inferred from label text
package models
