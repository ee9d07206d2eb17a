package notify

import (
	"fmt"
	"net/url"

	"backend/internal/pricing"
	"backend/internal/reservation"
	"backend/internal/utils"
)

// Template keys understood by the delivery layer.
const (
	TemplateReservationCreated   = "reservation_created"
	TemplateDriverAssigned       = "driver_assigned"
	TemplateTripConfirmed        = "trip_confirmed"
	TemplateTripCompleted        = "trip_completed"
	TemplateTripApproved         = "trip_approved"
	TemplateTripRejected         = "trip_rejected"
	TemplateReservationCancelled = "reservation_cancelled"
	TemplateDepositPaid          = "deposit_paid"
)

// Dispatcher delivers a templated message about a reservation. This
// core only supplies the variables; formatting and sending live behind
// the interface.
type Dispatcher interface {
	Dispatch(res reservation.Reservation, templateKey string) error
}

// TemplateVars flattens the reservation and its money snapshot into the
// variables every template consumes.
func TemplateVars(res reservation.Reservation) map[string]string {
	vars := map[string]string{
		"reservation_id":    fmt.Sprintf("%d", res.ID),
		"status":            string(res.Status),
		"trip_type":         string(res.TripType),
		"payment_method":    string(res.Method),
		"total_price":       pricing.FormatReais(res.Split.TotalPrice),
		"deposit":           pricing.FormatReais(res.Split.Deposit),
		"deposit_due":       pricing.FormatReais(res.Split.DepositWithMethodDiscount),
		"first_leg_payout":  pricing.FormatReais(res.Split.FirstLegPayout),
		"second_leg_payout": pricing.FormatReais(res.Split.SecondLegPayout),
	}
	if res.RejectionReason != "" {
		vars["rejection_reason"] = res.RejectionReason
	}
	if res.CancellationReason != "" {
		vars["cancellation_reason"] = res.CancellationReason
	}
	return vars
}

// WhatsAppLink builds a wa.me link with a prefilled message.
func WhatsAppLink(phone, message string) string {
	digits := utils.DigitsOnly(phone)
	if digits == "" {
		return ""
	}
	return "https://wa.me/" + digits + "?text=" + url.QueryEscape(message)
}

// LogDispatcher is the default delivery: it only logs. Real channels
// (email, WhatsApp API) plug in behind the same interface.
type LogDispatcher struct {
	RequestID string
}

func (d LogDispatcher) Dispatch(res reservation.Reservation, templateKey string) error {
	utils.LogEvent(d.RequestID, "notify", templateKey,
		fmt.Sprintf("reservation_id=%d status=%s", res.ID, res.Status))
	return nil
}
