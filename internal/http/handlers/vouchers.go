package handlers

import (
	"net/http"

	"backend/internal/http/middleware"
	"backend/internal/services"

	"github.com/gin-gonic/gin"
)

// GET /api/reservations/:id/voucher
func GetReservationVoucher(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	svc := services.VoucherService{RequestID: middleware.GetRequestID(c)}
	pdfBytes, filename, err := svc.GenerateVoucher(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", `inline; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}

// GET /api/reservations/:id/driver-receipt
// Per-leg payout receipt for the assigned driver.
func GetDriverReceipt(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	svc := services.VoucherService{RequestID: middleware.GetRequestID(c)}
	pdfBytes, filename, err := svc.GenerateDriverReceipt(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", `inline; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}
