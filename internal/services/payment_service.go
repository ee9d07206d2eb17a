package services

import (
	"context"
	"database/sql"
	"strconv"
	"strings"
	"time"

	intconfig "backend/internal/config"
	"backend/internal/domain"
	"backend/internal/notify"
	"backend/internal/payments"
	"backend/internal/repositories"
	"backend/internal/reservation"
	"backend/internal/utils"
)

// PaymentService handles the deposit ("sinal") flow: creating a charge
// with the provider, collecting a transfer proof and the owner's
// validation. Only the paid/not-paid outcome feeds the lifecycle.
type PaymentService struct {
	ReservationRepo repositories.ReservationRepository
	Provider        payments.Provider
	Notifier        notify.Dispatcher
	DB              *sql.DB
	RequestID       string
	Now             func() time.Time
}

func (s PaymentService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

func (s PaymentService) reservations() repositories.ReservationRepository {
	if s.ReservationRepo.DB != nil {
		return s.ReservationRepo
	}
	return repositories.ReservationRepository{DB: s.db()}
}

func (s PaymentService) provider() payments.Provider {
	if s.Provider != nil {
		return s.Provider
	}
	return payments.ManualProvider{}
}

func (s PaymentService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s PaymentService) notifier() notify.Dispatcher {
	if s.Notifier != nil {
		return s.Notifier
	}
	return notify.LogDispatcher{RequestID: s.RequestID}
}

// CreateDepositCharge asks the provider for a charge over the
// discounted deposit of the snapshot.
func (s PaymentService) CreateDepositCharge(ctx context.Context, reservationID int64, payerName, payerPhone string) (payments.Charge, error) {
	repo := s.reservations()
	res, err := repo.GetByID(reservationID)
	if err != nil {
		return payments.Charge{}, err
	}
	if res.ReadOnly() {
		return payments.Charge{}, domain.ConflictError{Resource: "reserva", Msg: "reserva encerrada"}
	}
	if res.DepositPaid {
		return payments.Charge{}, domain.ConflictError{Resource: "reserva", Msg: "sinal já confirmado"}
	}

	charge, err := s.provider().CreateCharge(ctx, payments.CreateChargeRequest{
		ReservationID: res.ID,
		Amount:        res.Split.DepositWithMethodDiscount,
		Method:        res.Method,
		PayerName:     strings.TrimSpace(payerName),
		PayerPhone:    strings.TrimSpace(payerPhone),
	})
	if err != nil {
		return payments.Charge{}, domain.InternalError{Msg: "falha ao criar cobrança", Err: err}
	}

	res.PaymentReference = charge.Reference
	res.UpdatedAt = s.now()
	if err := repo.Save(&res); err != nil {
		return payments.Charge{}, domain.InternalError{Err: err}
	}

	utils.LogEvent(s.RequestID, "payment", "charge_created",
		"reservation_id="+strconv.FormatInt(res.ID, 10)+" ref="+charge.Reference)

	// Provider may settle synchronously (e.g. a sandbox pix charge).
	if charge.Status == payments.ChargePaid {
		if err := s.markPaid(&res, charge.Reference); err != nil {
			return payments.Charge{}, err
		}
	}
	return charge, nil
}

// SubmitProof attaches the client's transfer receipt for owner review.
func (s PaymentService) SubmitProof(reservationID int64, file, fileName string) error {
	if strings.TrimSpace(file) == "" {
		return domain.ValidationError{Field: "proof_file", Msg: "comprovante vazio"}
	}
	repo := s.reservations()
	res, err := repo.GetByID(reservationID)
	if err != nil {
		return err
	}
	if res.ReadOnly() {
		return domain.ConflictError{Resource: "reserva", Msg: "reserva encerrada"}
	}

	res.ProofFile = file
	res.ProofFileName = strings.TrimSpace(fileName)
	res.UpdatedAt = s.now()
	if err := repo.Save(&res); err != nil {
		return domain.InternalError{Err: err}
	}
	utils.LogEvent(s.RequestID, "payment", "proof_submitted",
		"reservation_id="+strconv.FormatInt(res.ID, 10))
	return nil
}

// ApproveDeposit records the owner's validation of the deposit. After
// this, the driver may confirm the trip.
func (s PaymentService) ApproveDeposit(reservationID int64) error {
	repo := s.reservations()
	res, err := repo.GetByID(reservationID)
	if err != nil {
		return err
	}
	return s.markPaid(&res, res.PaymentReference)
}

func (s PaymentService) markPaid(res *reservation.Reservation, reference string) error {
	if err := res.MarkDepositPaid(reference, s.now()); err != nil {
		return err
	}
	if err := s.reservations().Save(res); err != nil {
		return domain.InternalError{Err: err}
	}
	utils.LogEvent(s.RequestID, "payment", "deposit_paid",
		"reservation_id="+strconv.FormatInt(res.ID, 10))
	if err := s.notifier().Dispatch(*res, notify.TemplateDepositPaid); err != nil {
		utils.LogEvent(s.RequestID, "payment", "notify_warning", err.Error())
	}
	return nil
}
