package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/adityar/hostelhub/internal/app/models/dto"
	"github.com/adityar/hostelhub/internal/app/services"
	"github.com/adityar/hostelhub/internal/middleware"
	"github.com/adityar/hostelhub/internal/pkg/helpers"
)

// AllotmentController handles allotment-related operations
type AllotmentController struct {
	allotmentService services.AllotmentService
}

// NewAllotmentController creates a new AllotmentController
func NewAllotmentController(allotmentService services.AllotmentService) *AllotmentController {
	return &AllotmentController{
		allotmentService: allotmentService,
	}
}

// RunAllotment triggers one allotment pass
// @Summary Run an allotment pass
// @Description Runs one allotment pass over the current eligible candidate pool and returns the assignment summary
// @Tags allotments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.AllotmentRunResponse} "Allotment run completed"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - User does not have permission"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /allotments/run [post]
func (c *AllotmentController) RunAllotment(ctx *gin.Context) {
	result, err := c.allotmentService.RunAllotment(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      result,
		Timestamp: time.Now(),
	})
}

// GetAvailability reports current bed availability
// @Summary Get bed availability
// @Description Recomputes aggregate occupancy and availability counts from the current durable state
// @Tags allotments
// @Accept json
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.AvailabilityResponse} "Availability retrieved successfully"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /allotments/availability [get]
func (c *AllotmentController) GetAvailability(ctx *gin.Context) {
	availability, err := c.allotmentService.Availability(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      availability,
		Timestamp: time.Now(),
	})
}

// ListAllotments retrieves allotment records
// @Summary List allotment records
// @Description Retrieves a paginated list of all allotment records
// @Tags allotments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number (1-based)" default(1)
// @Param size query int false "Page size" default(10)
// @Success 200 {object} dto.APIResponse{data=dto.AllotmentListResponse} "Allotments retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /allotments [get]
func (c *AllotmentController) ListAllotments(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)

	list, err := c.allotmentService.ListAllotments(ctx, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      list,
		Timestamp: time.Now(),
	})
}

// GetAllotment retrieves one student's allotment record
// @Summary Get a student's allotment
// @Description Retrieves the allotment record of one student profile
// @Tags allotments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param profileId path int true "Student profile ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=models.AllotmentRecord} "Allotment retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "Allotment record not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /allotments/student/{profileId} [get]
func (c *AllotmentController) GetAllotment(ctx *gin.Context) {
	profileIDStr := ctx.Param("profileId")
	profileID, err := strconv.ParseInt(profileIDStr, 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid student profile ID")
		errorDetail = errorDetail.WithDetails("Profile ID must be a valid number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	record, err := c.allotmentService.GetAllotment(ctx, profileID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      record,
		Timestamp: time.Now(),
	})
}

// UpdateFees updates fee statuses on an allotment record
// @Summary Update fee statuses
// @Description Mutates hostel/mess fee status fields on a student's allotment record; called after payment settlement
// @Tags allotments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param profileId path int true "Student profile ID" Format(int64) minimum(1)
// @Param request body dto.UpdateFeesRequest true "Fee statuses to set"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Fee status updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "Allotment record not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /allotments/{profileId}/fees [patch]
func (c *AllotmentController) UpdateFees(ctx *gin.Context) {
	profileIDStr := ctx.Param("profileId")
	profileID, err := strconv.ParseInt(profileIDStr, 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid student profile ID")
		errorDetail = errorDetail.WithDetails("Profile ID must be a valid number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	var req dto.UpdateFeesRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid fee update data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	if err := c.allotmentService.UpdateFees(ctx, profileID, &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Fee status updated"},
		Timestamp: time.Now(),
	})
}
