package reservation

// Status is the lifecycle state of a reservation.
type Status string

const (
	StatusPending   Status = "pending"
	StatusDelegated Status = "delegated"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusApproved  Status = "approved"
	StatusCancelled Status = "cancelled"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusDelegated, StatusConfirmed, StatusCompleted, StatusApproved, StatusCancelled:
		return true
	}
	return false
}

// Terminal statuses accept no further transitions.
func (s Status) Terminal() bool {
	return s == StatusApproved || s == StatusCancelled
}

// ActiveStatuses is used when filtering driver/owner panel listings.
var ActiveStatuses = []Status{
	StatusPending,
	StatusDelegated,
	StatusConfirmed,
	StatusCompleted,
}

// Role identifies who is requesting a transition.
type Role string

const (
	RoleClient Role = "client"
	RoleDriver Role = "driver"
	RoleOwner  Role = "owner"
	// RoleSystem covers automated assignment (e.g. the booking flow
	// delegating to a default driver).
	RoleSystem Role = "system"
)

func (r Role) Valid() bool {
	switch r {
	case RoleClient, RoleDriver, RoleOwner, RoleSystem:
		return true
	}
	return false
}
