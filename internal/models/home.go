package models

// Home represents a household group sharing contributions and transfers.
//
// Membership is derived from users.home_id rather than stored as a list,
// so there is a single source of truth for "who belongs here".
type Home struct {
	// ID is the unique identifier for the home (UUID format).
	ID string `json:"id"`

	// Name is the unique display name of the home (e.g., "Smiths").
	Name string `json:"name"`

	// Description is optional free text.
	Description string `json:"description,omitempty"`

	// LeaderUsername is the member who administers the home. The leader
	// is always a member and cannot be removed by others.
	LeaderUsername string `json:"leader_username"`

	// CreatedAt is the Unix timestamp when the home was created.
	CreatedAt int64 `json:"date_created"`
}
