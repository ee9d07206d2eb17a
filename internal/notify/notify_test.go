package notify

import (
	"testing"
	"time"

	"backend/internal/pricing"
	"backend/internal/reservation"
)

func TestWhatsAppLink(t *testing.T) {
	link := WhatsAppLink("+55 (41) 99888-7766", "Sua reserva #11 foi confirmada")
	if link != "https://wa.me/5541998887766?text=Sua+reserva+%2311+foi+confirmada" {
		t.Fatalf("link = %q", link)
	}
	if WhatsAppLink("", "oi") != "" {
		t.Fatalf("empty phone must yield empty link")
	}
}

func TestTemplateVarsCarrySnapshotAmounts(t *testing.T) {
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
	res.ID = 11

	vars := TemplateVars(res)
	if vars["deposit_due"] != "R$ 85,50" {
		t.Fatalf("deposit_due = %q", vars["deposit_due"])
	}
	if vars["status"] != "pending" {
		t.Fatalf("status = %q", vars["status"])
	}
	if _, ok := vars["rejection_reason"]; ok {
		t.Fatalf("empty reason must not be exported")
	}

	_ = res.AssignDriver(9, reservation.RoleOwner, now)
	_ = res.Confirm(reservation.RoleDriver, now)
	_ = res.Complete(reservation.RoleDriver, now)
	if err := res.Reject(reservation.RoleOwner, "document mismatch", now); err != nil {
		t.Fatalf("reject: %v", err)
	}
	vars = TemplateVars(res)
	if vars["rejection_reason"] != "document mismatch" {
		t.Fatalf("rejection_reason = %q", vars["rejection_reason"])
	}
}
