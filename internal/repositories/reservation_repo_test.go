package repositories

import (
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"

	"backend/internal/pricing"
	"backend/internal/reservation"
)

func TestReservationRepositoryCreateSetsID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	res := reservation.New(7, 42, pricing.TripSelection{
		TripType:      pricing.TripRoundTrip,
		PaymentMethod: pricing.MethodPix,
	}, pricing.MoneySplit{
		TotalPrice:                pricing.FromReais(300),
		Deposit:                   pricing.FromReais(90),
		DepositWithMethodDiscount: pricing.FromReais(85.5),
		FirstLegPayout:            pricing.FromReais(105),
		SecondLegPayout:           pricing.FromReais(105),
	}, now)

	mock.ExpectExec("INSERT INTO reservations").
		WillReturnResult(sqlmock.NewResult(11, 1))

	if err := (ReservationRepository{DB: db}).Create(&res); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if res.ID != 11 {
		t.Fatalf("id not set from insert, got %d", res.ID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestReservationRepositoryGetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{
		"id", "package_id", "client_id", "driver_id", "trip_type", "payment_method",
		"total_price", "deposit", "deposit_discounted", "first_leg_payout", "second_leg_payout", "split_warning",
		"status", "awaiting_approval", "rejection_reason", "cancellation_reason",
		"deposit_paid", "payment_reference", "proof_file", "proof_file_name",
		"created_at", "updated_at",
		"delegated_at", "confirmed_at", "completed_at", "approved_at", "cancelled_at", "deposit_paid_at",
	}).AddRow(
		11, 7, 42, int64(9), "round_trip", "pix",
		int64(30000), int64(9000), int64(8550), int64(10500), int64(10500), "",
		"delegated", 0, "", "",
		1, "PIX-123", "", "",
		now, now,
		now, nil, nil, nil, nil, now,
	)
	mock.ExpectQuery("SELECT(.|\n)+FROM reservations WHERE id=\\?").WithArgs(int64(11)).WillReturnRows(rows)

	res, err := ReservationRepository{DB: db}.GetByID(11)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if res.Status != reservation.StatusDelegated {
		t.Fatalf("status = %s", res.Status)
	}
	if res.DriverID == nil || *res.DriverID != 9 {
		t.Fatalf("driver id lost: %+v", res.DriverID)
	}
	if res.Split.DepositWithMethodDiscount != pricing.FromReais(85.5) {
		t.Fatalf("split snapshot lost: %+v", res.Split)
	}
	if !res.DepositPaid || res.PaymentReference != "PIX-123" {
		t.Fatalf("payment evidence lost: %+v", res)
	}
	if res.ConfirmedAt != nil || res.DelegatedAt == nil {
		t.Fatalf("timestamps mapped incorrectly")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestReservationRepositorySaveRequiresID(t *testing.T) {
	res := reservation.Reservation{}
	if err := (ReservationRepository{}).Save(&res); err == nil {
		t.Fatalf("expected validation error for missing id")
	}
}

func TestReservationRepositoryListFiltersByDriver(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	rows := sqlmock.NewRows([]string{
		"id", "package_id", "client_id", "driver_id", "trip_type", "payment_method",
		"total_price", "deposit", "deposit_discounted", "first_leg_payout", "second_leg_payout", "split_warning",
		"status", "awaiting_approval", "rejection_reason", "cancellation_reason",
		"deposit_paid", "payment_reference", "proof_file", "proof_file_name",
		"created_at", "updated_at",
		"delegated_at", "confirmed_at", "completed_at", "approved_at", "cancelled_at", "deposit_paid_at",
	})
	mock.ExpectQuery("SELECT(.|\n)+FROM reservations WHERE driver_id=\\? AND status=\\?").
		WithArgs(int64(9), "confirmed").
		WillReturnRows(rows)

	out, err := ReservationRepository{DB: db}.List(ReservationFilter{DriverID: 9, Status: reservation.StatusConfirmed})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(out) != 0 {
		t.Fatalf("expected empty list")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}
