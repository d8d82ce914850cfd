package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/adityar/hostelhub/internal/app/controllers"
	"github.com/adityar/hostelhub/internal/app/models"
	"github.com/adityar/hostelhub/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	allotmentController *controllers.AllotmentController,
	authMiddleware *middleware.AuthMiddleware,
) {
	// API version group
	v1 := router.Group("/api/v1")

	// Health check
	v1.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now(),
		})
	})

	// --- Public routes ---
	// Availability is read-only and safe to expose without authentication
	v1.GET("/allotments/availability", allotmentController.GetAvailability)

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())

	allotments := authenticated.Group("/allotments")
	{
		allotments.GET("", allotmentController.ListAllotments)
		allotments.GET("/student/:profileId", allotmentController.GetAllotment)
	}

	// --- Provost-only routes ---
	privileged := authenticated.Group("/allotments")
	privileged.Use(authMiddleware.RoleRequired(
		string(models.RoleProvost),
		string(models.RoleChiefProvost),
	))
	{
		privileged.POST("/run", allotmentController.RunAllotment)
		privileged.PATCH("/:profileId/fees", allotmentController.UpdateFees)
	}
}
