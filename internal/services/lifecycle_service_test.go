package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"backend/internal/domain"
	"backend/internal/notify"
	"backend/internal/pricing"
	"backend/internal/reservation"
)

type recordingDispatcher struct {
	keys []string
}

func (d *recordingDispatcher) Dispatch(_ reservation.Reservation, templateKey string) error {
	d.keys = append(d.keys, templateKey)
	return nil
}

func lifecycleFixture(t *testing.T) (*LifecycleService, *reservation.Reservation, *recordingDispatcher) {
	t.Helper()

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

	stored := &res
	dispatcher := &recordingDispatcher{}
	svc := &LifecycleService{
		Notifier: dispatcher,
		Now:      func() time.Time { return now.Add(time.Hour) },
		Load: func(id int64) (reservation.Reservation, error) {
			if id != stored.ID {
				return reservation.Reservation{}, domain.NotFoundError{Resource: "reserva"}
			}
			return *stored, nil
		},
		Save: func(r *reservation.Reservation) error {
			*stored = *r
			return nil
		},
	}
	return svc, stored, dispatcher
}

func TestLifecycleServiceFullFlow(t *testing.T) {
	svc, stored, dispatcher := lifecycleFixture(t)

	_, err := svc.AssignDriver(11, 9, reservation.RoleOwner)
	require.NoError(t, err)
	assert.Equal(t, reservation.StatusDelegated, stored.Status)

	// deposit unpaid: confirm is gated
	_, err = svc.ConfirmTrip(11, reservation.RoleDriver)
	require.Error(t, err)
	assert.True(t, domain.IsConflict(err))
	assert.Equal(t, reservation.StatusDelegated, stored.Status)

	require.NoError(t, stored.MarkDepositPaid("PIX-123", time.Now()))

	_, err = svc.ConfirmTrip(11, reservation.RoleDriver)
	require.NoError(t, err)
	assert.Equal(t, reservation.StatusConfirmed, stored.Status)

	_, err = svc.CompleteTrip(11, reservation.RoleDriver)
	require.NoError(t, err)
	assert.True(t, stored.AwaitingApproval)

	out, err := svc.ApproveTrip(11, reservation.RoleOwner)
	require.NoError(t, err)
	assert.Equal(t, reservation.StatusApproved, out.Status)
	assert.True(t, out.PayoutEligible())

	assert.Contains(t, dispatcher.keys, notify.TemplateDriverAssigned)
	assert.Contains(t, dispatcher.keys, notify.TemplateTripConfirmed)
	assert.Contains(t, dispatcher.keys, notify.TemplateTripCompleted)
	assert.Contains(t, dispatcher.keys, notify.TemplateTripApproved)
}

func TestLifecycleServiceIdempotentConfirmSkipsSaveAndNotify(t *testing.T) {
	svc, stored, dispatcher := lifecycleFixture(t)

	_, err := svc.AssignDriver(11, 9, reservation.RoleOwner)
	require.NoError(t, err)
	require.NoError(t, stored.MarkDepositPaid("PIX-123", time.Now()))
	_, err = svc.ConfirmTrip(11, reservation.RoleDriver)
	require.NoError(t, err)

	saves := 0
	svc.Save = func(r *reservation.Reservation) error {
		saves++
		*stored = *r
		return nil
	}
	notified := len(dispatcher.keys)

	out, err := svc.ConfirmTrip(11, reservation.RoleDriver)
	require.NoError(t, err)
	assert.Equal(t, reservation.StatusConfirmed, out.Status)
	assert.Zero(t, saves, "repeat confirm must not write")
	assert.Len(t, dispatcher.keys, notified, "repeat confirm must not notify")
}

func TestLifecycleServiceRejectStoresReason(t *testing.T) {
	svc, stored, _ := lifecycleFixture(t)

	_, err := svc.AssignDriver(11, 9, reservation.RoleOwner)
	require.NoError(t, err)
	require.NoError(t, stored.MarkDepositPaid("PIX-123", time.Now()))
	_, err = svc.ConfirmTrip(11, reservation.RoleDriver)
	require.NoError(t, err)
	_, err = svc.CompleteTrip(11, reservation.RoleDriver)
	require.NoError(t, err)

	out, err := svc.RejectTrip(11, reservation.RoleOwner, "document mismatch")
	require.NoError(t, err)
	assert.Equal(t, reservation.StatusDelegated, out.Status)
	assert.False(t, out.AwaitingApproval)
	assert.Equal(t, "document mismatch", out.RejectionReason)
}

func TestLifecycleServiceInvalidTransitionSurfacesStates(t *testing.T) {
	svc, stored, _ := lifecycleFixture(t)

	_, err := svc.ApproveTrip(11, reservation.RoleOwner)
	require.Error(t, err)
	assert.True(t, domain.IsInvalidTransition(err))
	assert.Equal(t, "invalid transition from pending to approved", err.Error())
	assert.Equal(t, reservation.StatusPending, stored.Status, "failed transition must not persist")
}

func TestLifecycleServiceCancel(t *testing.T) {
	svc, stored, dispatcher := lifecycleFixture(t)

	_, err := svc.CancelReservation(11, reservation.RoleClient, "mudança de planos")
	require.NoError(t, err)
	assert.Equal(t, reservation.StatusCancelled, stored.Status)
	assert.Contains(t, dispatcher.keys, notify.TemplateReservationCancelled)

	_, err = svc.CancelReservation(11, reservation.RoleClient, "de novo")
	require.Error(t, err)
	assert.True(t, domain.IsInvalidTransition(err))
}
