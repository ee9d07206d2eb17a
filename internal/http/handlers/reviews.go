package handlers

import (
	"net/http"

	"backend/internal/domain/models"
	"backend/internal/http/middleware"
	"backend/internal/repositories"

	"github.com/gin-gonic/gin"
)

type createReviewRequest struct {
	PackageID int64  `json:"packageId"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment"`
}

// POST /api/reviews
func CreateReview(c *gin.Context) {
	var req createReviewRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if req.PackageID <= 0 {
		RespondError(c, http.StatusBadRequest, "packageId inválido", nil)
		return
	}

	id, err := repositories.ReviewRepository{}.Create(models.Review{
		PackageID: req.PackageID,
		ClientID:  middleware.GetUserID(c),
		Rating:    req.Rating,
		Comment:   req.Comment,
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id, "message": "avaliação registrada"})
}

// GET /api/packages/:id/reviews
func ListPackageReviews(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	reviews, err := repositories.ReviewRepository{}.ListByPackage(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reviews": reviews})
}
