package repositories

import (
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"

	"backend/internal/pricing"
)

func TestBuildPackagePatch_MissingKeysNotPresent(t *testing.T) {
	raw := []byte(`{"title":"Transfer Litoral"}`)

	upd, err := buildPackagePatch(raw)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if upd.Title == nil || *upd.Title != "Transfer Litoral" {
		t.Fatalf("title should be present")
	}
	if upd.DepositAmount != nil || upd.PriceRoundTrip != nil || upd.Active != nil {
		t.Fatalf("absent keys must stay nil: %+v", upd)
	}
}

func TestBuildPackagePatch_MoneyKeysParsedAsCentavos(t *testing.T) {
	raw := []byte(`{"priceRoundTrip":300,"depositAmount":50.5}`)

	upd, err := buildPackagePatch(raw)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if upd.PriceRoundTrip == nil || *upd.PriceRoundTrip != pricing.FromReais(300) {
		t.Fatalf("priceRoundTrip parsed incorrectly: %+v", upd.PriceRoundTrip)
	}
	if upd.DepositAmount == nil || *upd.DepositAmount != pricing.FromReais(50.5) {
		t.Fatalf("depositAmount parsed incorrectly: %+v", upd.DepositAmount)
	}
}

func TestBuildPackagePatch_ExplicitZeroStillPresent(t *testing.T) {
	raw := []byte(`{"secondLegPayout":0}`)

	upd, err := buildPackagePatch(raw)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if upd.SecondLegPayout == nil || *upd.SecondLegPayout != 0 {
		t.Fatalf("explicit zero must count as present")
	}
}

func TestBuildPackagePatch_BadPayload(t *testing.T) {
	if _, err := buildPackagePatch([]byte(`{"priceRoundTrip":"abc"}`)); err == nil {
		t.Fatalf("expected error for non-numeric price")
	}
}

func TestPackageRepositoryGetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	rows := sqlmock.NewRows([]string{
		"id", "title", "origin", "destination", "description",
		"price_one_way", "price_return_only", "price_round_trip", "supports_round_trip",
		"deposit_amount", "first_leg_payout", "second_leg_payout", "deposit_percentage", "active",
	}).AddRow(
		7, "Transfer Serra", "Curitiba", "Morretes", "",
		int64(15000), int64(15000), int64(30000), 1,
		nil, nil, nil, 30.0, 1,
	)
	mock.ExpectQuery("SELECT(.|\n)+FROM packages WHERE id=\\?").WithArgs(int64(7)).WillReturnRows(rows)

	p, err := PackageRepository{DB: db}.GetByID(7)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if p.Title != "Transfer Serra" || p.PriceRoundTrip != pricing.FromReais(300) {
		t.Fatalf("unexpected package: %+v", p)
	}
	if p.DepositAmount != nil {
		t.Fatalf("NULL deposit_amount must stay unset so legacy mode applies")
	}
	if p.DepositPercentage == nil || *p.DepositPercentage != 30 {
		t.Fatalf("deposit percentage lost: %+v", p.DepositPercentage)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestPackageRepositoryGetByIDInvalid(t *testing.T) {
	if _, err := (PackageRepository{}).GetByID(0); err == nil {
		t.Fatalf("expected validation error for id 0")
	}
}
