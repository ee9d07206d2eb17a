package handlers

import (
	"net/http"
	"time"

	"backend/internal/domain"
	"backend/internal/http/middleware"
	"backend/internal/pricing"
	"backend/internal/repositories"
	"backend/internal/reservation"
	"backend/internal/services"

	"github.com/gin-gonic/gin"
)

type createReservationRequest struct {
	PackageID     int64                 `json:"packageId"`
	TripType      pricing.TripType      `json:"tripType"`
	PaymentMethod pricing.PaymentMethod `json:"paymentMethod"`
}

// POST /api/reservations
func CreateReservation(c *gin.Context) {
	var req createReservationRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	svc := services.BookingService{RequestID: middleware.GetRequestID(c)}
	res, err := svc.CreateReservation(middleware.GetUserID(c), req.PackageID, pricing.TripSelection{
		TripType:      req.TripType,
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

// GET /api/reservations
// Listing is scoped by role: clients see their own reservations,
// drivers see assigned trips minus the archived ones, the owner sees
// everything with an optional ?status= filter.
func ListReservations(c *gin.Context) {
	filter := repositories.ReservationFilter{}
	role := actorRole(c)
	switch role {
	case reservation.RoleOwner:
		if s := c.Query("status"); s != "" {
			st := reservation.Status(s)
			if !st.Valid() {
				RespondError(c, http.StatusBadRequest, "status inválido", nil)
				return
			}
			filter.Status = st
		}
	case reservation.RoleDriver:
		filter.DriverID = middleware.GetUserID(c)
	default:
		filter.ClientID = middleware.GetUserID(c)
	}

	list, err := repositories.ReservationRepository{}.List(filter)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	if role == reservation.RoleDriver {
		now := time.Now()
		visible := list[:0]
		for i := range list {
			if !list[i].Archived(now) {
				visible = append(visible, list[i])
			}
		}
		list = visible
	}

	page := domain.NewPagination(
		queryInt(c, "page"),
		queryInt(c, "pageSize"),
	)
	page.Total = len(list)
	start, end := page.Slice(len(list))

	c.JSON(http.StatusOK, gin.H{
		"reservations": list[start:end],
		"pagination":   page,
	})
}

// GET /api/reservations/:id
func GetReservation(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	res, err := repositories.ReservationRepository{}.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if !canViewReservation(c, res) {
		RespondError(c, http.StatusForbidden, "reserva de outro usuário", nil)
		return
	}
	c.JSON(http.StatusOK, res)
}

type assignDriverRequest struct {
	DriverID int64 `json:"driverId"`
}

// POST /api/reservations/:id/assign-driver
func AssignDriver(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req assignDriverRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if req.DriverID <= 0 {
		RespondError(c, http.StatusBadRequest, "driverId inválido", nil)
		return
	}

	svc := services.LifecycleService{RequestID: middleware.GetRequestID(c)}
	res, err := svc.AssignDriver(id, req.DriverID, actorRole(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// POST /api/reservations/:id/confirm
func ConfirmReservation(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	svc := services.LifecycleService{RequestID: middleware.GetRequestID(c)}
	res, err := svc.ConfirmTrip(id, actorRole(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// POST /api/reservations/:id/complete
func CompleteReservation(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	svc := services.LifecycleService{RequestID: middleware.GetRequestID(c)}
	res, err := svc.CompleteTrip(id, actorRole(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// POST /api/reservations/:id/approve
func ApproveReservation(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	svc := services.LifecycleService{RequestID: middleware.GetRequestID(c)}
	res, err := svc.ApproveTrip(id, actorRole(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

type reasonRequest struct {
	Reason string `json:"reason"`
}

// POST /api/reservations/:id/reject
func RejectReservation(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req reasonRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	svc := services.LifecycleService{RequestID: middleware.GetRequestID(c)}
	res, err := svc.RejectTrip(id, actorRole(c), req.Reason)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// POST /api/reservations/:id/cancel
func CancelReservation(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req reasonRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	svc := services.LifecycleService{RequestID: middleware.GetRequestID(c)}
	res, err := svc.CancelReservation(id, actorRole(c), req.Reason)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func canViewReservation(c *gin.Context, res reservation.Reservation) bool {
	switch actorRole(c) {
	case reservation.RoleOwner:
		return true
	case reservation.RoleDriver:
		return res.DriverID != nil && *res.DriverID == middleware.GetUserID(c)
	default:
		return res.ClientID == middleware.GetUserID(c)
	}
}
