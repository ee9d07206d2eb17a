package services

import (
	"database/sql"
	"strconv"
	"time"

	intconfig "backend/internal/config"
	"backend/internal/domain"
	"backend/internal/notify"
	"backend/internal/repositories"
	"backend/internal/reservation"
	"backend/internal/utils"
)

// LifecycleService applies role-gated transitions and persists the
// result. Ordering rules live in the reservation package; this layer
// adds payment gating, storage and notifications. Failed transitions
// are returned to the caller untouched, never retried.
type LifecycleService struct {
	ReservationRepo repositories.ReservationRepository
	Notifier        notify.Dispatcher
	DB              *sql.DB
	RequestID       string
	Now             func() time.Time

	// Load/Save override storage in tests.
	Load func(int64) (reservation.Reservation, error)
	Save func(*reservation.Reservation) error
}

func (s LifecycleService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

func (s LifecycleService) repo() repositories.ReservationRepository {
	if s.ReservationRepo.DB != nil {
		return s.ReservationRepo
	}
	return repositories.ReservationRepository{DB: s.db()}
}

func (s LifecycleService) load(id int64) (reservation.Reservation, error) {
	if s.Load != nil {
		return s.Load(id)
	}
	return s.repo().GetByID(id)
}

func (s LifecycleService) save(res *reservation.Reservation) error {
	if s.Save != nil {
		return s.Save(res)
	}
	return s.repo().Save(res)
}

func (s LifecycleService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s LifecycleService) notifier() notify.Dispatcher {
	if s.Notifier != nil {
		return s.Notifier
	}
	return notify.LogDispatcher{RequestID: s.RequestID}
}

// AssignDriver delegates the reservation to a driver.
func (s LifecycleService) AssignDriver(id, driverID int64, role reservation.Role) (reservation.Reservation, error) {
	return s.apply(id, notify.TemplateDriverAssigned, func(res *reservation.Reservation) error {
		return res.AssignDriver(driverID, role, s.now())
	})
}

// ConfirmTrip records the driver accepting the trip. Deposit evidence
// from the payment flow gates this entry point.
func (s LifecycleService) ConfirmTrip(id int64, role reservation.Role) (reservation.Reservation, error) {
	return s.apply(id, notify.TemplateTripConfirmed, func(res *reservation.Reservation) error {
		if !res.DepositPaid && res.Status != reservation.StatusConfirmed {
			return domain.ConflictError{Resource: "reserva", Msg: "sinal ainda não confirmado"}
		}
		return res.Confirm(role, s.now())
	})
}

// CompleteTrip flags the reservation for owner approval.
func (s LifecycleService) CompleteTrip(id int64, role reservation.Role) (reservation.Reservation, error) {
	return s.apply(id, notify.TemplateTripCompleted, func(res *reservation.Reservation) error {
		return res.Complete(role, s.now())
	})
}

// ApproveTrip reconciles the trip and releases payout eligibility.
func (s LifecycleService) ApproveTrip(id int64, role reservation.Role) (reservation.Reservation, error) {
	return s.apply(id, notify.TemplateTripApproved, func(res *reservation.Reservation) error {
		return res.Approve(role, s.now())
	})
}

// RejectTrip sends the trip back to the driver queue with a reason.
func (s LifecycleService) RejectTrip(id int64, role reservation.Role, reason string) (reservation.Reservation, error) {
	return s.apply(id, notify.TemplateTripRejected, func(res *reservation.Reservation) error {
		return res.Reject(role, reason, s.now())
	})
}

// CancelReservation cancels on behalf of any actor, with a reason.
func (s LifecycleService) CancelReservation(id int64, role reservation.Role, reason string) (reservation.Reservation, error) {
	return s.apply(id, notify.TemplateReservationCancelled, func(res *reservation.Reservation) error {
		return res.Cancel(role, reason, s.now())
	})
}

func (s LifecycleService) apply(id int64, templateKey string, mutate func(*reservation.Reservation) error) (reservation.Reservation, error) {
	res, err := s.load(id)
	if err != nil {
		return reservation.Reservation{}, err
	}

	before := res.Status
	beforeUpdated := res.UpdatedAt
	if err := mutate(&res); err != nil {
		return reservation.Reservation{}, err
	}
	if res.Status == before && res.UpdatedAt.Equal(beforeUpdated) {
		// idempotent no-op, nothing to persist
		return res, nil
	}

	if err := s.save(&res); err != nil {
		return reservation.Reservation{}, domain.InternalError{Err: err}
	}

	utils.LogEvent(s.RequestID, "lifecycle", templateKey,
		"reservation_id="+strconv.FormatInt(res.ID, 10)+" status="+string(res.Status))
	if res.Status != before {
		if err := s.notifier().Dispatch(res, templateKey); err != nil {
			utils.LogEvent(s.RequestID, "lifecycle", "notify_warning", err.Error())
		}
	}
	return res, nil
}
