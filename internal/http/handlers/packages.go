package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"backend/internal/domain/models"
	"backend/internal/http/middleware"
	"backend/internal/pricing"
	"backend/internal/repositories"
	"backend/internal/services"
	"backend/internal/utils"

	"github.com/gin-gonic/gin"
)

// GET /api/packages
func ListPackages(c *gin.Context) {
	onlyActive := true
	if c.Query("all") == "1" && actorRoleIsOwner(c) {
		onlyActive = false
	}
	pkgs, err := repositories.PackageRepository{}.List(onlyActive)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"packages": pkgs})
}

// GET /api/packages/:id
func GetPackage(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	pkg, err := repositories.PackageRepository{}.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, pkg)
}

// POST /api/packages
func CreatePackage(c *gin.Context) {
	var pkg models.TourPackage
	if !BindJSONOrError(c, &pkg) {
		return
	}
	pkg.Title = utils.NormalizeSpace(pkg.Title)
	pkg.Origin = utils.TrimOrEmpty(pkg.Origin)
	pkg.Destination = utils.TrimOrEmpty(pkg.Destination)
	if pkg.Title == "" {
		RespondError(c, http.StatusBadRequest, "título é obrigatório", nil)
		return
	}

	repo := repositories.PackageRepository{}
	if err := repo.EnsureSchema(); err != nil {
		RespondDomainError(c, err)
		return
	}
	id, err := repo.Create(pkg)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	pkg.ID = id
	pkg.Active = true
	c.JSON(http.StatusCreated, pkg)
}

// PUT /api/packages/:id
// Key presence in the body decides which columns change.
func UpdatePackage(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	raw, err := io.ReadAll(c.Request.Body)
	if err != nil || len(raw) == 0 {
		RespondError(c, http.StatusBadRequest, "corpo vazio", err)
		return
	}

	repo := repositories.PackageRepository{}
	if err := repo.Update(id, json.RawMessage(raw)); err != nil {
		RespondDomainError(c, err)
		return
	}
	pkg, err := repo.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, pkg)
}

// DELETE /api/packages/:id
func DeletePackage(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := (repositories.PackageRepository{}).Delete(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "pacote desativado"})
}

type quoteRequest struct {
	TripType      pricing.TripType      `json:"tripType"`
	PaymentMethod pricing.PaymentMethod `json:"paymentMethod"`
}

// POST /api/packages/:id/quote
func QuotePackage(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req quoteRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	svc := services.BookingService{RequestID: middleware.GetRequestID(c)}
	split, err := svc.Quote(id, pricing.TripSelection{
		TripType:      req.TripType,
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, split)
}

type autoDivideRequest struct {
	TripType pricing.TripType `json:"tripType"`
	Total    *pricing.Money   `json:"total"`
}

// POST /api/packages/:id/auto-divide
// Splits a trip total into three equal parts (deposit and the two leg
// payouts). An explicit total in the body overrides the stored price.
func AutoDivide(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req autoDivideRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	total := pricing.Money(0)
	if req.Total != nil {
		total = *req.Total
	} else {
		// The card split carries the undiscounted total for the trip.
		svc := services.BookingService{RequestID: middleware.GetRequestID(c)}
		split, err := svc.Quote(id, pricing.TripSelection{
			TripType:      req.TripType,
			PaymentMethod: pricing.MethodCard,
		})
		if err != nil {
			RespondDomainError(c, err)
			return
		}
		total = split.TotalPrice
	}
	if total <= 0 {
		RespondError(c, http.StatusBadRequest, "total deve ser positivo", nil)
		return
	}

	parts := pricing.ComputeEqualThirdsAutoDivide(total)
	c.JSON(http.StatusOK, gin.H{
		"total":           total,
		"depositAmount":   parts[0],
		"firstLegPayout":  parts[1],
		"secondLegPayout": parts[2],
	})
}

func actorRoleIsOwner(c *gin.Context) bool {
	role := middleware.GetUserRole(c)
	return role == "owner" || role == "admin"
}
