package repositories

import (
	"database/sql"
	"errors"
	"strings"
	"time"

	intconfig "backend/internal/config"
	intdb "backend/internal/db"
	"backend/internal/domain"
	"backend/internal/pricing"
	"backend/internal/reservation"
)

// ReservationRepository persists reservations. Lifecycle writes are
// single-document updates; ordering guarantees live in the reservation
// package, not here.
type ReservationRepository struct {
	DB *sql.DB
}

func (r ReservationRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const reservationColumns = `
	id,
	package_id,
	client_id,
	driver_id,
	COALESCE(trip_type,''),
	COALESCE(payment_method,''),
	COALESCE(total_price,0),
	COALESCE(deposit,0),
	COALESCE(deposit_discounted,0),
	COALESCE(first_leg_payout,0),
	COALESCE(second_leg_payout,0),
	COALESCE(split_warning,''),
	COALESCE(status,''),
	COALESCE(awaiting_approval,0),
	COALESCE(rejection_reason,''),
	COALESCE(cancellation_reason,''),
	COALESCE(deposit_paid,0),
	COALESCE(payment_reference,''),
	COALESCE(proof_file,''),
	COALESCE(proof_file_name,''),
	created_at,
	updated_at,
	delegated_at,
	confirmed_at,
	completed_at,
	approved_at,
	cancelled_at,
	deposit_paid_at`

// ReservationFilter narrows listings for the role-specific panels.
type ReservationFilter struct {
	ClientID int64
	DriverID int64
	Status   reservation.Status
}

func (r ReservationRepository) Create(res *reservation.Reservation) error {
	db := r.db()
	if db == nil {
		return domain.InternalError{Msg: "banco indisponível"}
	}

	out, err := db.Exec(`
		INSERT INTO reservations
			(package_id, client_id, driver_id, trip_type, payment_method,
			 total_price, deposit, deposit_discounted, first_leg_payout, second_leg_payout, split_warning,
			 status, awaiting_approval, deposit_paid,
			 created_at, updated_at)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		res.PackageID, res.ClientID, nullID(res.DriverID), string(res.TripType), string(res.Method),
		int64(res.Split.TotalPrice), int64(res.Split.Deposit), int64(res.Split.DepositWithMethodDiscount),
		int64(res.Split.FirstLegPayout), int64(res.Split.SecondLegPayout), intdb.NullIfEmpty(res.Split.Warning),
		string(res.Status), res.AwaitingApproval, res.DepositPaid,
		res.CreatedAt, res.UpdatedAt,
	)
	if err != nil {
		return err
	}
	id, err := out.LastInsertId()
	if err != nil {
		return err
	}
	res.ID = id
	return nil
}

func (r ReservationRepository) GetByID(id int64) (reservation.Reservation, error) {
	if id <= 0 {
		return reservation.Reservation{}, domain.ValidationError{Field: "id", Msg: "id inválido"}
	}
	db := r.db()
	if db == nil {
		return reservation.Reservation{}, domain.InternalError{Msg: "banco indisponível"}
	}

	row := db.QueryRow(`SELECT `+reservationColumns+` FROM reservations WHERE id=? LIMIT 1`, id)
	res, err := scanReservation(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return reservation.Reservation{}, domain.NotFoundError{Resource: "reserva", Err: err}
		}
		return reservation.Reservation{}, err
	}
	return res, nil
}

func (r ReservationRepository) List(f ReservationFilter) ([]reservation.Reservation, error) {
	db := r.db()
	if db == nil {
		return nil, domain.InternalError{Msg: "banco indisponível"}
	}

	where := []string{}
	args := []any{}
	if f.ClientID > 0 {
		where = append(where, "client_id=?")
		args = append(args, f.ClientID)
	}
	if f.DriverID > 0 {
		where = append(where, "driver_id=?")
		args = append(args, f.DriverID)
	}
	if f.Status != "" {
		where = append(where, "status=?")
		args = append(args, string(f.Status))
	}

	query := `SELECT ` + reservationColumns + ` FROM reservations`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY id DESC`

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []reservation.Reservation{}
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	return out, rows.Err()
}

// Save writes back every mutable lifecycle field. The money snapshot is
// intentionally not part of the update.
func (r ReservationRepository) Save(res *reservation.Reservation) error {
	if res.ID <= 0 {
		return domain.ValidationError{Field: "id", Msg: "id inválido"}
	}
	db := r.db()
	if db == nil {
		return domain.InternalError{Msg: "banco indisponível"}
	}

	_, err := db.Exec(`
		UPDATE reservations SET
			driver_id=?,
			status=?,
			awaiting_approval=?,
			rejection_reason=?,
			cancellation_reason=?,
			deposit_paid=?,
			payment_reference=?,
			proof_file=?,
			proof_file_name=?,
			updated_at=?,
			delegated_at=?,
			confirmed_at=?,
			completed_at=?,
			approved_at=?,
			cancelled_at=?,
			deposit_paid_at=?
		WHERE id=?`,
		nullID(res.DriverID),
		string(res.Status),
		res.AwaitingApproval,
		intdb.NullIfEmpty(res.RejectionReason),
		intdb.NullIfEmpty(res.CancellationReason),
		res.DepositPaid,
		intdb.NullIfEmpty(res.PaymentReference),
		intdb.NullIfEmpty(res.ProofFile),
		intdb.NullIfEmpty(res.ProofFileName),
		res.UpdatedAt,
		nullTime(res.DelegatedAt),
		nullTime(res.ConfirmedAt),
		nullTime(res.CompletedAt),
		nullTime(res.ApprovedAt),
		nullTime(res.CancelledAt),
		nullTime(res.DepositPaidAt),
		res.ID,
	)
	return err
}

// EnsureSchema creates the reservations table when absent.
func (r ReservationRepository) EnsureSchema() error {
	db := r.db()
	if db == nil {
		return domain.InternalError{Msg: "banco indisponível"}
	}
	if intdb.HasTable(db, "reservations") {
		return nil
	}
	ddl := `
CREATE TABLE IF NOT EXISTS reservations (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	package_id BIGINT NOT NULL,
	client_id BIGINT NOT NULL,
	driver_id BIGINT NULL,
	trip_type VARCHAR(20) NOT NULL,
	payment_method VARCHAR(20) NOT NULL,
	total_price BIGINT NOT NULL DEFAULT 0,
	deposit BIGINT NOT NULL DEFAULT 0,
	deposit_discounted BIGINT NOT NULL DEFAULT 0,
	first_leg_payout BIGINT NOT NULL DEFAULT 0,
	second_leg_payout BIGINT NOT NULL DEFAULT 0,
	split_warning VARCHAR(255) NULL,
	status VARCHAR(20) NOT NULL,
	awaiting_approval TINYINT(1) NOT NULL DEFAULT 0,
	rejection_reason VARCHAR(500) NULL,
	cancellation_reason VARCHAR(500) NULL,
	deposit_paid TINYINT(1) NOT NULL DEFAULT 0,
	payment_reference VARCHAR(100) NULL,
	proof_file TEXT NULL,
	proof_file_name VARCHAR(255) NULL,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL,
	delegated_at DATETIME NULL,
	confirmed_at DATETIME NULL,
	completed_at DATETIME NULL,
	approved_at DATETIME NULL,
	cancelled_at DATETIME NULL,
	deposit_paid_at DATETIME NULL,
	KEY idx_client (client_id),
	KEY idx_driver (driver_id),
	KEY idx_status (status)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;
`
	_, err := db.Exec(ddl)
	return err
}

func scanReservation(row rowScanner) (reservation.Reservation, error) {
	var res reservation.Reservation
	var driverID sql.NullInt64
	var tripType, method string
	var total, deposit, discounted, firstLeg, secondLeg int64
	var delegatedAt, confirmedAt, completedAt, approvedAt, cancelledAt, paidAt sql.NullTime

	err := row.Scan(
		&res.ID,
		&res.PackageID,
		&res.ClientID,
		&driverID,
		&tripType,
		&method,
		&total,
		&deposit,
		&discounted,
		&firstLeg,
		&secondLeg,
		&res.Split.Warning,
		(*string)(&res.Status),
		&res.AwaitingApproval,
		&res.RejectionReason,
		&res.CancellationReason,
		&res.DepositPaid,
		&res.PaymentReference,
		&res.ProofFile,
		&res.ProofFileName,
		&res.CreatedAt,
		&res.UpdatedAt,
		&delegatedAt,
		&confirmedAt,
		&completedAt,
		&approvedAt,
		&cancelledAt,
		&paidAt,
	)
	if err != nil {
		return reservation.Reservation{}, err
	}

	res.TripType = pricing.TripType(tripType)
	res.Method = pricing.PaymentMethod(method)
	res.Split.TotalPrice = pricing.Money(total)
	res.Split.Deposit = pricing.Money(deposit)
	res.Split.DepositWithMethodDiscount = pricing.Money(discounted)
	res.Split.FirstLegPayout = pricing.Money(firstLeg)
	res.Split.SecondLegPayout = pricing.Money(secondLeg)

	if driverID.Valid {
		v := driverID.Int64
		res.DriverID = &v
	}
	res.DelegatedAt = timePtr(delegatedAt)
	res.ConfirmedAt = timePtr(confirmedAt)
	res.CompletedAt = timePtr(completedAt)
	res.ApprovedAt = timePtr(approvedAt)
	res.CancelledAt = timePtr(cancelledAt)
	res.DepositPaidAt = timePtr(paidAt)
	return res, nil
}

func nullID(id *int64) any {
	if id == nil {
		return nil
	}
	return *id
}

func nullTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return *t
}

func timePtr(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}
