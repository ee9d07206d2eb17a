package handlers

import (
	"net/http"

	"backend/internal/http/middleware"
	"backend/internal/services"

	"github.com/gin-gonic/gin"
)

type depositChargeRequest struct {
	PayerName  string `json:"payerName"`
	PayerPhone string `json:"payerPhone"`
}

// POST /api/reservations/:id/payment
// Creates a deposit charge for the discounted sinal of the snapshot.
func CreateDepositCharge(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req depositChargeRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	svc := services.PaymentService{RequestID: middleware.GetRequestID(c)}
	charge, err := svc.CreateDepositCharge(c.Request.Context(), id, req.PayerName, req.PayerPhone)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, charge)
}

type proofRequest struct {
	File     string `json:"file"` // base64 or storage key, opaque here
	FileName string `json:"fileName"`
}

// POST /api/reservations/:id/payment/proof
func SubmitPaymentProof(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req proofRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	svc := services.PaymentService{RequestID: middleware.GetRequestID(c)}
	if err := svc.SubmitProof(id, req.File, req.FileName); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "comprovante recebido, aguardando validação"})
}

// POST /api/reservations/:id/payment/approve
// Owner validates the transfer proof; after this the driver may confirm.
func ApproveDeposit(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	svc := services.PaymentService{RequestID: middleware.GetRequestID(c)}
	if err := svc.ApproveDeposit(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "sinal confirmado"})
}
