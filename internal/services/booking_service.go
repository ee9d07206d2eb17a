package services

import (
	"database/sql"
	"strconv"
	"time"

	intconfig "backend/internal/config"
	"backend/internal/domain"
	"backend/internal/notify"
	"backend/internal/pricing"
	"backend/internal/repositories"
	"backend/internal/reservation"
	"backend/internal/utils"
)

// BookingService quotes packages and creates reservations. The split is
// computed once here and snapshotted; later package edits never reach
// an existing reservation.
type BookingService struct {
	PackageRepo     repositories.PackageRepository
	ReservationRepo repositories.ReservationRepository
	Engine          pricing.Engine
	Notifier        notify.Dispatcher
	DB              *sql.DB
	RequestID       string
	Now             func() time.Time
}

func (s BookingService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

func (s BookingService) packages() repositories.PackageRepository {
	if s.PackageRepo.DB != nil {
		return s.PackageRepo
	}
	return repositories.PackageRepository{DB: s.db()}
}

func (s BookingService) reservations() repositories.ReservationRepository {
	if s.ReservationRepo.DB != nil {
		return s.ReservationRepo
	}
	return repositories.ReservationRepository{DB: s.db()}
}

func (s BookingService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s BookingService) notifier() notify.Dispatcher {
	if s.Notifier != nil {
		return s.Notifier
	}
	return notify.LogDispatcher{RequestID: s.RequestID}
}

// Quote prices a stored package for the given selection.
func (s BookingService) Quote(packageID int64, sel pricing.TripSelection) (pricing.MoneySplit, error) {
	if err := validateSelection(sel); err != nil {
		return pricing.MoneySplit{}, err
	}
	pkg, err := s.packages().GetByID(packageID)
	if err != nil {
		return pricing.MoneySplit{}, err
	}

	split, err := s.Engine.ComputeSplit(pkg.PricingConfig(), sel)
	if err != nil {
		return pricing.MoneySplit{}, err
	}
	if split.Warning != "" {
		utils.LogEvent(s.RequestID, "pricing", "quote_warning",
			"package_id="+strconv.FormatInt(packageID, 10)+" "+split.Warning)
	}
	return split, nil
}

// CreateReservation prices the package and persists a pending
// reservation carrying the split snapshot.
func (s BookingService) CreateReservation(clientID, packageID int64, sel pricing.TripSelection) (reservation.Reservation, error) {
	if clientID <= 0 {
		return reservation.Reservation{}, domain.ValidationError{Field: "client_id", Msg: "id inválido"}
	}
	split, err := s.Quote(packageID, sel)
	if err != nil {
		return reservation.Reservation{}, err
	}

	res := reservation.New(packageID, clientID, sel, split, s.now())
	repo := s.reservations()
	if err := repo.EnsureSchema(); err != nil {
		return reservation.Reservation{}, domain.InternalError{Err: err}
	}
	if err := repo.Create(&res); err != nil {
		return reservation.Reservation{}, domain.InternalError{Err: err}
	}

	utils.LogEvent(s.RequestID, "booking", "reservation_created",
		"reservation_id="+strconv.FormatInt(res.ID, 10))
	if err := s.notifier().Dispatch(res, notify.TemplateReservationCreated); err != nil {
		utils.LogEvent(s.RequestID, "booking", "notify_warning", err.Error())
	}
	return res, nil
}

func validateSelection(sel pricing.TripSelection) error {
	if !sel.TripType.Valid() {
		return domain.ValidationError{Field: "tripType", Msg: "tipo de viagem inválido"}
	}
	if !sel.PaymentMethod.Valid() {
		return domain.ValidationError{Field: "paymentMethod", Msg: "forma de pagamento inválida"}
	}
	return nil
}
