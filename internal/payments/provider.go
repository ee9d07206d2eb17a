package payments

import (
	"context"
	"fmt"
	"time"

	"backend/internal/pricing"
)

// ChargeStatus is the only thing this system reads off a provider
// result: paid or not yet paid.
type ChargeStatus string

const (
	ChargePending ChargeStatus = "pending"
	ChargePaid    ChargeStatus = "paid"
	ChargeFailed  ChargeStatus = "failed"
)

// Charge is a provider-specific payment/session reference.
type Charge struct {
	Reference  string                `json:"reference"`
	Status     ChargeStatus          `json:"status"`
	Amount     pricing.Money         `json:"amount"`
	Method     pricing.PaymentMethod `json:"method"`
	PaymentURL string                `json:"paymentUrl,omitempty"`
	CreatedAt  time.Time             `json:"createdAt"`
}

type CreateChargeRequest struct {
	ReservationID int64
	Amount        pricing.Money
	Method        pricing.PaymentMethod
	PayerName     string
	PayerPhone    string
}

// Provider abstracts the payment SaaS. The provider's own protocol is
// out of scope; callers only care whether the deposit got paid.
type Provider interface {
	CreateCharge(ctx context.Context, req CreateChargeRequest) (Charge, error)
	GetCharge(ctx context.Context, reference string) (Charge, error)
}

// ManualProvider backs the proof-upload flow: the client transfers the
// deposit out of band and the owner validates the submitted receipt.
type ManualProvider struct {
	Now func() time.Time
}

func (p ManualProvider) now() time.Time {
	if p.Now != nil {
		return p.Now()
	}
	return time.Now()
}

func (p ManualProvider) CreateCharge(_ context.Context, req CreateChargeRequest) (Charge, error) {
	now := p.now()
	return Charge{
		Reference: fmt.Sprintf("MAN-%d-%d", req.ReservationID, now.Unix()),
		Status:    ChargePending,
		Amount:    req.Amount,
		Method:    req.Method,
		CreatedAt: now,
	}, nil
}

// GetCharge never reports paid: manual charges are settled only by the
// owner approving the proof.
func (p ManualProvider) GetCharge(_ context.Context, reference string) (Charge, error) {
	return Charge{Reference: reference, Status: ChargePending, CreatedAt: p.now()}, nil
}
