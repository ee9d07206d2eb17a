package reservation

import (
	"strings"
	"time"

	"backend/internal/domain"
)

// Transitions mutate the reservation in place and return an error when
// the request is out of order or the role is not allowed to make it.
// Nothing here retries; callers surface the message verbatim.

// AssignDriver moves a pending reservation to delegated. Reassignment
// while still delegated is allowed and keeps the status.
func (r *Reservation) AssignDriver(driverID int64, role Role, now time.Time) error {
	if role != RoleOwner && role != RoleSystem {
		return roleError(role, "assign driver")
	}
	if driverID <= 0 {
		return domain.ValidationError{Field: "driver_id", Msg: "id inválido"}
	}
	if r.Status != StatusPending && r.Status != StatusDelegated {
		return domain.InvalidTransitionError{From: string(r.Status), To: string(StatusDelegated)}
	}
	r.DriverID = &driverID
	r.Status = StatusDelegated
	r.DelegatedAt = &now
	r.touch(now)
	return nil
}

// Confirm marks the trip as accepted by the driver. Idempotent when the
// reservation is already confirmed. Requires an assigned driver.
func (r *Reservation) Confirm(role Role, now time.Time) error {
	if role != RoleDriver {
		return roleError(role, "confirm")
	}
	if r.Status == StatusConfirmed {
		return nil
	}
	if r.Status != StatusPending && r.Status != StatusDelegated {
		return domain.InvalidTransitionError{From: string(r.Status), To: string(StatusConfirmed)}
	}
	if r.DriverID == nil {
		return domain.MissingDriverError{ReservationID: r.ID}
	}
	r.Status = StatusConfirmed
	r.ConfirmedAt = &now
	r.touch(now)
	return nil
}

// Complete marks the trip as done by the driver and flags it for owner
// approval. A pending reservation can never jump straight here.
func (r *Reservation) Complete(role Role, now time.Time) error {
	if role != RoleDriver {
		return roleError(role, "complete")
	}
	if r.Status != StatusConfirmed && r.Status != StatusDelegated {
		return domain.InvalidTransitionError{From: string(r.Status), To: string(StatusCompleted)}
	}
	if r.DriverID == nil {
		return domain.MissingDriverError{ReservationID: r.ID}
	}
	r.Status = StatusCompleted
	r.AwaitingApproval = true
	r.CompletedAt = &now
	r.touch(now)
	return nil
}

// Approve reconciles a completed trip. Terminal: payouts become
// releasable and the reservation turns read-only.
func (r *Reservation) Approve(role Role, now time.Time) error {
	if role != RoleOwner {
		return roleError(role, "approve")
	}
	if r.Status != StatusCompleted {
		return domain.InvalidTransitionError{From: string(r.Status), To: string(StatusApproved)}
	}
	r.Status = StatusApproved
	r.AwaitingApproval = false
	r.ApprovedAt = &now
	r.touch(now)
	return nil
}

// Reject sends a completed trip back to the driver queue. A reason is
// mandatory so the driver panel can show why.
func (r *Reservation) Reject(role Role, reason string, now time.Time) error {
	if role != RoleOwner {
		return roleError(role, "reject")
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return domain.ValidationError{Field: "rejection_reason", Msg: "motivo obrigatório"}
	}
	if r.Status != StatusCompleted {
		return domain.InvalidTransitionError{From: string(r.Status), To: string(StatusDelegated)}
	}
	r.Status = StatusDelegated
	r.AwaitingApproval = false
	r.RejectionReason = reason
	r.CompletedAt = nil
	r.touch(now)
	return nil
}

// Cancel is reachable by any actor before the trip is completed.
func (r *Reservation) Cancel(role Role, reason string, now time.Time) error {
	if !role.Valid() {
		return roleError(role, "cancel")
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return domain.ValidationError{Field: "cancellation_reason", Msg: "motivo obrigatório"}
	}
	switch r.Status {
	case StatusPending, StatusDelegated, StatusConfirmed:
	default:
		return domain.InvalidTransitionError{From: string(r.Status), To: string(StatusCancelled)}
	}
	r.Status = StatusCancelled
	r.CancellationReason = reason
	r.CancelledAt = &now
	r.touch(now)
	return nil
}

// MarkDepositPaid records payment-provider evidence. Not a status
// transition: it gates Confirm at the service layer.
func (r *Reservation) MarkDepositPaid(reference string, now time.Time) error {
	if r.ReadOnly() {
		return domain.ConflictError{Resource: "reserva", Msg: "reserva encerrada"}
	}
	r.DepositPaid = true
	if reference != "" {
		r.PaymentReference = reference
	}
	r.DepositPaidAt = &now
	r.touch(now)
	return nil
}

func roleError(role Role, action string) error {
	return domain.ValidationError{Field: "role", Msg: string(role) + " não pode executar " + action}
}
