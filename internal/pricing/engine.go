package pricing

import (
	"fmt"

	"backend/internal/domain"
)

// TripType selects which package price applies.
type TripType string

const (
	TripOneWay     TripType = "one_way"
	TripReturnOnly TripType = "return_only"
	TripRoundTrip  TripType = "round_trip"
)

func (t TripType) Valid() bool {
	switch t {
	case TripOneWay, TripReturnOnly, TripRoundTrip:
		return true
	}
	return false
}

// PaymentMethod influences only the deposit, never the full price.
type PaymentMethod string

const (
	MethodPix  PaymentMethod = "pix"
	MethodCard PaymentMethod = "card"
)

func (p PaymentMethod) Valid() bool {
	return p == MethodPix || p == MethodCard
}

// PixDiscountRate is applied to the deposit when paying via Pix.
const PixDiscountRate = 0.95

// DefaultDepositPercentage is the legacy fallback when a package has no
// fixed deposit and no authored percentage.
const DefaultDepositPercentage = 30.0

// PackageConfig is the canonical pricing shape of a sellable package.
// Optional fields are pointers: presence decides fixed-split mode and
// the second-leg fallback, so zero must stay distinguishable from unset.
type PackageConfig struct {
	ID                string
	PriceOneWay       Money
	PriceReturnOnly   Money
	PriceRoundTrip    Money
	SupportsRoundTrip bool

	// Fixed-split mode: used verbatim when DepositAmount is present.
	DepositAmount   *Money
	FirstLegPayout  *Money
	SecondLegPayout *Money

	// Legacy percentage mode.
	DepositPercentage *float64
}

// TripSelection is the customer's chosen itinerary instance.
type TripSelection struct {
	TripType      TripType      `json:"tripType"`
	PaymentMethod PaymentMethod `json:"paymentMethod"`
}

// MoneySplit is the computed deposit/payout breakdown. It is recomputed
// on demand for quotes and snapshotted onto a reservation at creation.
type MoneySplit struct {
	TotalPrice                Money  `json:"totalPrice"`
	Deposit                   Money  `json:"deposit"`
	DepositWithMethodDiscount Money  `json:"depositWithMethodDiscount"`
	FirstLegPayout            Money  `json:"firstLegPayout"`
	SecondLegPayout           Money  `json:"secondLegPayout"`
	Warning                   string `json:"warning,omitempty"`
}

// Engine derives a MoneySplit from a package and a selection. Pure, no
// I/O. The zero value is ready to use.
type Engine struct {
	// SumEpsilon tolerates rounding drift between deposit+payouts and
	// the total. Zero means one centavo.
	SumEpsilon Money
}

func (e Engine) epsilon() Money {
	if e.SumEpsilon > 0 {
		return e.SumEpsilon
	}
	return 1
}

// ComputeSplit selects the total for the trip type, derives deposit and
// per-leg payouts (fixed-split or legacy percentage mode) and applies
// the Pix discount to the deposit. Authoring inconsistencies in fixed
// mode are surfaced on MoneySplit.Warning, never corrected.
func (e Engine) ComputeSplit(cfg PackageConfig, sel TripSelection) (MoneySplit, error) {
	if err := validateConfig(cfg); err != nil {
		return MoneySplit{}, err
	}
	if !sel.TripType.Valid() {
		return MoneySplit{}, domain.InvalidSelectionError{TripType: string(sel.TripType), Msg: "unknown trip type"}
	}

	total, err := priceFor(cfg, sel.TripType)
	if err != nil {
		return MoneySplit{}, err
	}

	var out MoneySplit
	if cfg.DepositAmount != nil {
		out = computeFixedSplit(cfg, sel.TripType, total)
	} else {
		out = computeSplitLegacyPercentage(cfg, sel.TripType, total)
	}

	out.DepositWithMethodDiscount = out.Deposit
	if sel.PaymentMethod == MethodPix {
		out.DepositWithMethodDiscount = out.Deposit.MulRate(PixDiscountRate)
	}

	e.applyWarnings(cfg, &out)
	return out, nil
}

// computeFixedSplit uses authored amounts verbatim. When a round trip has
// no authored second leg, the first leg is mirrored (legacy data quirk,
// kept on purpose).
func computeFixedSplit(cfg PackageConfig, trip TripType, total Money) MoneySplit {
	out := MoneySplit{
		TotalPrice: total,
		Deposit:    *cfg.DepositAmount,
	}
	if cfg.FirstLegPayout != nil {
		out.FirstLegPayout = *cfg.FirstLegPayout
	}
	if trip == TripRoundTrip {
		if cfg.SecondLegPayout != nil {
			out.SecondLegPayout = *cfg.SecondLegPayout
		} else {
			out.SecondLegPayout = out.FirstLegPayout
		}
	}
	return out
}

// computeSplitLegacyPercentage takes the deposit as a percentage of the
// total and hands the remainder to the driver, halved across legs for a
// round trip. Distinct from ComputeEqualThirdsAutoDivide.
func computeSplitLegacyPercentage(cfg PackageConfig, trip TripType, total Money) MoneySplit {
	pct := DefaultDepositPercentage
	if cfg.DepositPercentage != nil {
		pct = *cfg.DepositPercentage
	}

	deposit := total.Percent(pct)
	remainder := total - deposit

	out := MoneySplit{
		TotalPrice: total,
		Deposit:    deposit,
	}
	if trip == TripRoundTrip {
		out.FirstLegPayout = remainder.Half()
		out.SecondLegPayout = remainder.Half()
	} else {
		out.FirstLegPayout = remainder
	}
	return out
}

// ComputeEqualThirdsAutoDivide splits a total into three equal parts
// with no separate deposit. Used by the admin auto-divide action only;
// it is intentionally not the same formula as the quote split.
func ComputeEqualThirdsAutoDivide(total Money) [3]Money {
	part := total.Third()
	return [3]Money{part, part, part}
}

func (e Engine) applyWarnings(cfg PackageConfig, out *MoneySplit) {
	eps := e.epsilon()

	if out.Deposit > out.TotalPrice+eps {
		out.Warning = fmt.Sprintf("deposit %s exceeds total %s",
			FormatReais(out.Deposit), FormatReais(out.TotalPrice))
		return
	}

	sum := out.Deposit + out.FirstLegPayout + out.SecondLegPayout
	if diff := (sum - out.TotalPrice).Abs(); diff > eps {
		out.Warning = fmt.Sprintf("split sums to %s but total is %s",
			FormatReais(sum), FormatReais(out.TotalPrice))
	}
}

func priceFor(cfg PackageConfig, trip TripType) (Money, error) {
	switch trip {
	case TripOneWay:
		if cfg.PriceOneWay <= 0 {
			return 0, domain.InvalidSelectionError{TripType: string(trip), Msg: "no one-way price configured"}
		}
		return cfg.PriceOneWay, nil
	case TripReturnOnly:
		if cfg.PriceReturnOnly <= 0 {
			return 0, domain.InvalidSelectionError{TripType: string(trip), Msg: "no return price configured"}
		}
		return cfg.PriceReturnOnly, nil
	case TripRoundTrip:
		if !cfg.SupportsRoundTrip {
			return 0, domain.InvalidSelectionError{TripType: string(trip), Msg: "package does not support round trips"}
		}
		if cfg.PriceRoundTrip <= 0 {
			return 0, domain.InvalidSelectionError{TripType: string(trip), Msg: "no round-trip price configured"}
		}
		return cfg.PriceRoundTrip, nil
	}
	return 0, domain.InvalidSelectionError{TripType: string(trip), Msg: "unknown trip type"}
}

func validateConfig(cfg PackageConfig) error {
	if cfg.PriceOneWay < 0 || cfg.PriceReturnOnly < 0 || cfg.PriceRoundTrip < 0 {
		return domain.InvalidConfigError{PackageID: cfg.ID, Msg: "negative price"}
	}
	for _, p := range []*Money{cfg.DepositAmount, cfg.FirstLegPayout, cfg.SecondLegPayout} {
		if p != nil && *p < 0 {
			return domain.InvalidConfigError{PackageID: cfg.ID, Msg: "negative split amount"}
		}
	}
	if cfg.DepositPercentage != nil && (*cfg.DepositPercentage < 0 || *cfg.DepositPercentage > 100) {
		return domain.InvalidConfigError{PackageID: cfg.ID, Msg: "deposit percentage out of range"}
	}
	return nil
}
