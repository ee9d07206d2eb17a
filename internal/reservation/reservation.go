package reservation

import (
	"time"

	"backend/internal/pricing"
)

// ArchiveAfter is how long an approved reservation stays visible in the
// driver panel before the listing hides it. Display-only: nothing is
// written back when it elapses.
const ArchiveAfter = 24 * time.Hour

// Reservation is a booking instance with lifecycle state. The Split is
// a snapshot taken when the reservation is created; package price edits
// never reach it.
type Reservation struct {
	ID        int64                 `json:"id"`
	PackageID int64                 `json:"packageId"`
	ClientID  int64                 `json:"clientId"`
	DriverID  *int64                `json:"driverId,omitempty"`
	TripType  pricing.TripType      `json:"tripType"`
	Method    pricing.PaymentMethod `json:"paymentMethod"`
	Split     pricing.MoneySplit    `json:"moneySplit"`

	Status           Status `json:"status"`
	AwaitingApproval bool   `json:"awaitingApproval"`

	RejectionReason    string `json:"rejectionReason,omitempty"`
	CancellationReason string `json:"cancellationReason,omitempty"`

	DepositPaid      bool   `json:"depositPaid"`
	PaymentReference string `json:"paymentReference,omitempty"`
	ProofFile        string `json:"proofFile,omitempty"`
	ProofFileName    string `json:"proofFileName,omitempty"`

	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
	DelegatedAt   *time.Time `json:"delegatedAt,omitempty"`
	ConfirmedAt   *time.Time `json:"confirmedAt,omitempty"`
	CompletedAt   *time.Time `json:"completedAt,omitempty"`
	ApprovedAt    *time.Time `json:"approvedAt,omitempty"`
	CancelledAt   *time.Time `json:"cancelledAt,omitempty"`
	DepositPaidAt *time.Time `json:"depositPaidAt,omitempty"`
}

// New builds a pending reservation with the split snapshot frozen in.
func New(packageID, clientID int64, sel pricing.TripSelection, split pricing.MoneySplit, now time.Time) Reservation {
	return Reservation{
		PackageID: packageID,
		ClientID:  clientID,
		TripType:  sel.TripType,
		Method:    sel.PaymentMethod,
		Split:     split,
		Status:    StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// ReadOnly reports whether the reservation accepts any further change.
func (r *Reservation) ReadOnly() bool {
	return r.Status.Terminal()
}

// Archived reports whether the driver panel should hide the reservation:
// approved and past the archive window. Derived from ApprovedAt, never
// stored.
func (r *Reservation) Archived(now time.Time) bool {
	if r.Status != StatusApproved || r.ApprovedAt == nil {
		return false
	}
	return now.Sub(*r.ApprovedAt) > ArchiveAfter
}

// PayoutEligible reports whether driver payouts may be released.
func (r *Reservation) PayoutEligible() bool {
	return r.Status == StatusApproved
}

func (r *Reservation) touch(now time.Time) {
	r.UpdatedAt = now
}
