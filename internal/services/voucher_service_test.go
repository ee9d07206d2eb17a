package services

import (
	"testing"
	"time"

	"backend/internal/pricing"
	"backend/internal/reservation"
)

func TestVoucherServiceGenerate(t *testing.T) {
	loader := func(id int64) (voucherData, error) {
		return voucherData{
			ReservationID: id,
			PackageTitle:  "Transfer Serra",
			Origin:        "Curitiba",
			Destination:   "Morretes",
			TripType:      pricing.TripRoundTrip,
			Method:        pricing.MethodPix,
			Status:        reservation.StatusConfirmed,
			Split: pricing.MoneySplit{
				TotalPrice:                pricing.FromReais(300),
				Deposit:                   pricing.FromReais(90),
				DepositWithMethodDiscount: pricing.FromReais(85.5),
				FirstLegPayout:            pricing.FromReais(105),
				SecondLegPayout:           pricing.FromReais(105),
			},
			CreatedAt: time.Now(),
		}, nil
	}

	svc := VoucherService{Loader: loader}

	pdf, filename, err := svc.GenerateVoucher(1)
	if err != nil {
		t.Fatalf("GenerateVoucher returned error: %v", err)
	}
	if len(pdf) == 0 || filename == "" {
		t.Fatalf("GenerateVoucher returned empty data")
	}

	receipt, recName, err := svc.GenerateDriverReceipt(1)
	if err != nil {
		t.Fatalf("GenerateDriverReceipt returned error: %v", err)
	}
	if len(receipt) == 0 || recName == "" {
		t.Fatalf("GenerateDriverReceipt returned empty data")
	}
}
