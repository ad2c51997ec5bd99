package models

// JoinRequestStatus is the lifecycle state of a join request.
type JoinRequestStatus string

const (
	JoinRequestPending  JoinRequestStatus = "pending"
	JoinRequestApproved JoinRequestStatus = "approved"
	JoinRequestRejected JoinRequestStatus = "rejected"
)

// JoinRequest is a user's application to join a home, actioned by the
// home's leader. A user has at most one pending request at a time.
type JoinRequest struct {
	// ID is the unique identifier for the request (UUID format).
	ID string `json:"id"`

	// Username is the applying user.
	Username string `json:"username"`

	// HomeID is the home applied to.
	HomeID string `json:"home_id"`

	// HomeName is the home's name at request time (denormalized for display).
	HomeName string `json:"home_name"`

	// Status is pending, approved or rejected. Transitions only via
	// leader action.
	Status JoinRequestStatus `json:"status"`

	// CreatedAt is the Unix timestamp when the request was created.
	CreatedAt int64 `json:"date_created"`

	// ProcessedAt is the Unix timestamp when the leader approved or
	// rejected the request, 0 while pending.
	ProcessedAt int64 `json:"processed_at,omitempty"`
}

// JoinRequestWithUser is a pending request joined with applicant details,
// shown to the leader.
type JoinRequestWithUser struct {
	JoinRequest

	// FullName is the applicant's display name.
	FullName string `json:"full_name"`

	// Email is the applicant's email address.
	Email string `json:"email"`
}
