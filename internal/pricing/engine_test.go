package pricing

import (
	"testing"

	"backend/internal/domain"
)

func moneyPtr(m Money) *Money { return &m }

func floatPtr(f float64) *float64 { return &f }

func TestComputeSplitLegacyPercentageRoundTripPix(t *testing.T) {
	cfg := PackageConfig{
		ID:                "pkg-1",
		PriceRoundTrip:    FromReais(300),
		SupportsRoundTrip: true,
		DepositPercentage: floatPtr(30),
	}
	split, err := Engine{}.ComputeSplit(cfg, TripSelection{TripType: TripRoundTrip, PaymentMethod: MethodPix})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if split.Deposit != FromReais(90) {
		t.Fatalf("deposit = %s, want 90.00", split.Deposit)
	}
	if split.DepositWithMethodDiscount != FromReais(85.5) {
		t.Fatalf("discounted deposit = %s, want 85.50", split.DepositWithMethodDiscount)
	}
	if split.FirstLegPayout != FromReais(105) || split.SecondLegPayout != FromReais(105) {
		t.Fatalf("legs = %s / %s, want 105.00 each", split.FirstLegPayout, split.SecondLegPayout)
	}
	if split.Warning != "" {
		t.Fatalf("unexpected warning: %s", split.Warning)
	}
}

func TestComputeSplitDefaultPercentage(t *testing.T) {
	cfg := PackageConfig{ID: "pkg-2", PriceOneWay: FromReais(200)}
	split, err := Engine{}.ComputeSplit(cfg, TripSelection{TripType: TripOneWay, PaymentMethod: MethodCard})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if split.Deposit != FromReais(60) {
		t.Fatalf("deposit = %s, want 60.00 (default 30%%)", split.Deposit)
	}
	if split.FirstLegPayout != FromReais(140) || split.SecondLegPayout != 0 {
		t.Fatalf("legs = %s / %s, want 140.00 / 0.00", split.FirstLegPayout, split.SecondLegPayout)
	}
	if split.DepositWithMethodDiscount != split.Deposit {
		t.Fatalf("card must not discount the deposit")
	}
}

func TestComputeSplitFixedModeConsistent(t *testing.T) {
	cfg := PackageConfig{
		ID:                "pkg-3",
		PriceRoundTrip:    FromReais(190),
		SupportsRoundTrip: true,
		DepositAmount:     moneyPtr(FromReais(50)),
		FirstLegPayout:    moneyPtr(FromReais(70)),
		SecondLegPayout:   moneyPtr(FromReais(70)),
	}
	split, err := Engine{}.ComputeSplit(cfg, TripSelection{TripType: TripRoundTrip, PaymentMethod: MethodCard})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if sum := split.Deposit + split.FirstLegPayout + split.SecondLegPayout; sum != split.TotalPrice {
		t.Fatalf("split sums to %s, want exactly %s", sum, split.TotalPrice)
	}
	if split.Warning != "" {
		t.Fatalf("unexpected warning: %s", split.Warning)
	}
}

func TestComputeSplitFixedModeSecondLegMirrorsFirst(t *testing.T) {
	cfg := PackageConfig{
		ID:                "pkg-4",
		PriceRoundTrip:    FromReais(190),
		SupportsRoundTrip: true,
		DepositAmount:     moneyPtr(FromReais(50)),
		FirstLegPayout:    moneyPtr(FromReais(70)),
	}
	split, err := Engine{}.ComputeSplit(cfg, TripSelection{TripType: TripRoundTrip, PaymentMethod: MethodCard})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if split.SecondLegPayout != FromReais(70) {
		t.Fatalf("second leg = %s, want mirrored 70.00", split.SecondLegPayout)
	}
}

func TestComputeSplitFixedModeSumMismatchWarns(t *testing.T) {
	cfg := PackageConfig{
		ID:                "pkg-5",
		PriceRoundTrip:    FromReais(300),
		SupportsRoundTrip: true,
		DepositAmount:     moneyPtr(FromReais(50)),
		FirstLegPayout:    moneyPtr(FromReais(70)),
		SecondLegPayout:   moneyPtr(FromReais(70)),
	}
	split, err := Engine{}.ComputeSplit(cfg, TripSelection{TripType: TripRoundTrip, PaymentMethod: MethodCard})
	if err != nil {
		t.Fatalf("mismatch must not fail, got %v", err)
	}
	if split.Warning == "" {
		t.Fatalf("expected sum-mismatch warning")
	}
	// values still returned verbatim
	if split.Deposit != FromReais(50) || split.FirstLegPayout != FromReais(70) {
		t.Fatalf("fixed amounts were altered: %+v", split)
	}
}

func TestComputeSplitFixedModeIgnoresSecondLegForOneWay(t *testing.T) {
	cfg := PackageConfig{
		ID:              "pkg-6",
		PriceOneWay:     FromReais(120),
		DepositAmount:   moneyPtr(FromReais(40)),
		FirstLegPayout:  moneyPtr(FromReais(80)),
		SecondLegPayout: moneyPtr(FromReais(80)),
	}
	split, err := Engine{}.ComputeSplit(cfg, TripSelection{TripType: TripOneWay, PaymentMethod: MethodCard})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if split.SecondLegPayout != 0 {
		t.Fatalf("one-way second leg = %s, want 0.00", split.SecondLegPayout)
	}
}

func TestComputeSplitRoundTripNotSupported(t *testing.T) {
	cfg := PackageConfig{ID: "pkg-7", PriceOneWay: FromReais(100), PriceRoundTrip: FromReais(180)}
	_, err := Engine{}.ComputeSplit(cfg, TripSelection{TripType: TripRoundTrip, PaymentMethod: MethodCard})
	if !domain.IsInvalidSelection(err) {
		t.Fatalf("expected InvalidSelectionError, got %v", err)
	}
}

func TestComputeSplitMissingPrice(t *testing.T) {
	cfg := PackageConfig{ID: "pkg-8", PriceOneWay: FromReais(100)}
	_, err := Engine{}.ComputeSplit(cfg, TripSelection{TripType: TripReturnOnly, PaymentMethod: MethodCard})
	if !domain.IsInvalidSelection(err) {
		t.Fatalf("expected InvalidSelectionError, got %v", err)
	}
}

func TestComputeSplitNegativePrice(t *testing.T) {
	cfg := PackageConfig{ID: "pkg-9", PriceOneWay: -1}
	_, err := Engine{}.ComputeSplit(cfg, TripSelection{TripType: TripOneWay, PaymentMethod: MethodCard})
	if !domain.IsInvalidConfig(err) {
		t.Fatalf("expected InvalidConfigError, got %v", err)
	}
}

func TestComputeSplitSumsToTotalInPercentageMode(t *testing.T) {
	totals := []float64{300, 199.99, 123.45, 0.03, 777.77}
	pcts := []float64{30, 25, 33.3, 50}
	trips := []TripType{TripOneWay, TripRoundTrip}

	for _, total := range totals {
		for _, pct := range pcts {
			for _, trip := range trips {
				cfg := PackageConfig{
					ID:                "prop",
					PriceOneWay:       FromReais(total),
					PriceRoundTrip:    FromReais(total),
					SupportsRoundTrip: true,
					DepositPercentage: floatPtr(pct),
				}
				split, err := Engine{}.ComputeSplit(cfg, TripSelection{TripType: trip, PaymentMethod: MethodCard})
				if err != nil {
					t.Fatalf("total=%v pct=%v trip=%s: %v", total, pct, trip, err)
				}
				sum := split.Deposit + split.FirstLegPayout + split.SecondLegPayout
				if diff := (sum - split.TotalPrice).Abs(); diff > 1 {
					t.Fatalf("total=%v pct=%v trip=%s: sum %s differs from total %s by more than one centavo",
						total, pct, trip, sum, split.TotalPrice)
				}
			}
		}
	}
}

func TestPixDiscountAppliesToDepositOnly(t *testing.T) {
	cfg := PackageConfig{ID: "pkg-10", PriceOneWay: FromReais(250)}
	pix, err := Engine{}.ComputeSplit(cfg, TripSelection{TripType: TripOneWay, PaymentMethod: MethodPix})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	card, _ := Engine{}.ComputeSplit(cfg, TripSelection{TripType: TripOneWay, PaymentMethod: MethodCard})

	if pix.DepositWithMethodDiscount != pix.Deposit.MulRate(0.95) {
		t.Fatalf("pix discount = %s, want round(deposit*0.95)", pix.DepositWithMethodDiscount)
	}
	if pix.TotalPrice != card.TotalPrice || pix.FirstLegPayout != card.FirstLegPayout {
		t.Fatalf("pix must not change total or payouts")
	}
}

func TestComputeEqualThirdsAutoDivide(t *testing.T) {
	total := FromReais(100)
	parts := ComputeEqualThirdsAutoDivide(total)
	for i, p := range parts {
		if p != FromReais(33.33) {
			t.Fatalf("part %d = %s, want 33.33", i, p)
		}
	}
	sum := parts[0] + parts[1] + parts[2]
	if diff := (sum - total).Abs(); diff > 1 {
		t.Fatalf("thirds sum %s drifts from total %s by more than one centavo", sum, total)
	}
}
