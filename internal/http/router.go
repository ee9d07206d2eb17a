package api

import (
	"log"
	stdhttp "net/http"
	"time"

	intconfig "backend/internal/config"
	h "backend/internal/http/handlers"
	"backend/internal/http/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func NewRouter(env intconfig.Env) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     env.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Authorization", "Accept", "Origin", "X-Request-ID"},
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           24 * time.Hour,
	}))

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("aviso: falha ao configurar trusted proxies: %v", err)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "rota não encontrada",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/db-check", h.DBCheck)
		api.GET("/routes", h.Routes)

		// Auth
		auth := api.Group("/auth")
		auth.POST("/login", h.Login)
		auth.POST("/register", h.Register)

		// Packages: public catalog, owner-gated writes
		packages := api.Group("/packages")
		packages.GET("", h.ListPackages)
		packages.GET("/:id", h.GetPackage)
		packages.GET("/:id/reviews", h.ListPackageReviews)
		packages.POST("/:id/quote", h.QuotePackage)

		packagesAdmin := packages.Group("")
		packagesAdmin.Use(middleware.RequireAuth(), middleware.RequireRoles("owner", "admin"))
		packagesAdmin.POST("", h.CreatePackage)
		packagesAdmin.PUT("/:id", h.UpdatePackage)
		packagesAdmin.DELETE("/:id", h.DeletePackage)
		packagesAdmin.POST("/:id/auto-divide", h.AutoDivide)

		// Reservations and lifecycle transitions
		reservations := api.Group("/reservations")
		reservations.Use(middleware.RequireAuth())
		reservations.POST("", h.CreateReservation)
		reservations.GET("", h.ListReservations)
		reservations.GET("/:id", h.GetReservation)
		reservations.GET("/:id/voucher", h.GetReservationVoucher)
		reservations.GET("/:id/driver-receipt", middleware.RequireRoles("driver", "owner", "admin"), h.GetDriverReceipt)

		reservations.POST("/:id/assign-driver", middleware.RequireRoles("owner", "admin"), h.AssignDriver)
		reservations.POST("/:id/confirm", middleware.RequireRoles("driver"), h.ConfirmReservation)
		reservations.POST("/:id/complete", middleware.RequireRoles("driver"), h.CompleteReservation)
		reservations.POST("/:id/approve", middleware.RequireRoles("owner", "admin"), h.ApproveReservation)
		reservations.POST("/:id/reject", middleware.RequireRoles("owner", "admin"), h.RejectReservation)
		reservations.POST("/:id/cancel", h.CancelReservation)

		// Deposit ("sinal") flow
		reservations.POST("/:id/payment", h.CreateDepositCharge)
		reservations.POST("/:id/payment/proof", h.SubmitPaymentProof)
		reservations.POST("/:id/payment/approve", middleware.RequireRoles("owner", "admin"), h.ApproveDeposit)

		// Reviews
		reviews := api.Group("/reviews")
		reviews.Use(middleware.RequireAuth())
		reviews.POST("", h.CreateReview)
	}

	h.SetRouter(r)
	return r
}
