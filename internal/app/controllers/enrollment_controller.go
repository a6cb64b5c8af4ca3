package controllers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campusgrid/campusgrid/internal/app/models/dto"
	"github.com/campusgrid/campusgrid/internal/app/services"
	"github.com/campusgrid/campusgrid/internal/middleware"
	"github.com/campusgrid/campusgrid/internal/pkg/cache"
	"github.com/campusgrid/campusgrid/internal/pkg/helpers"
)

const enrollmentEntity = "enrollment"

// EnrollmentController handles enrollment endpoints.
type EnrollmentController struct {
	enrollmentService *services.EnrollmentService
	cache             *cache.Cache
}

// NewEnrollmentController creates a new EnrollmentController
func NewEnrollmentController(enrollmentService *services.EnrollmentService, cache *cache.Cache) *EnrollmentController {
	return &EnrollmentController{
		enrollmentService: enrollmentService,
		cache:             cache,
	}
}

// CreateEnrollment handles POST /api/v1/enrollments
func (ctrl *EnrollmentController) CreateEnrollment(c *gin.Context) {
	var req dto.CreateEnrollmentRequest
	if !middleware.BindAndValidate(c, &req) {
		return
	}

	enrollment, err := ctrl.enrollmentService.CreateEnrollment(c.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewSuccessResponse(dto.ToEnrollmentResponse(enrollment), "Enrollment created successfully"))
}

// GetEnrollment handles GET /api/v1/enrollments/:id
func (ctrl *EnrollmentController) GetEnrollment(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	enrollment, err := ctrl.enrollmentService.GetEnrollment(c.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(dto.ToEnrollmentResponse(enrollment), "Enrollment retrieved"))
}

// ListEnrollments handles GET /api/v1/enrollments
func (ctrl *EnrollmentController) ListEnrollments(c *gin.Context) {
	page, size := helpers.ParsePaginationParams(c)
	key := cache.ListKey(enrollmentEntity, c.Request.URL.Query())

	respondCached(c, ctrl.cache, key, func(ctx context.Context) ([]byte, error) {
		offset, limit := helpers.CalculateOffsetLimit(page, size)
		enrollments, total, err := ctrl.enrollmentService.ListEnrollments(ctx, offset, limit)
		if err != nil {
			return nil, err
		}
		return json.Marshal(dto.NewPaginatedResponse(
			dto.ToEnrollmentResponses(enrollments),
			helpers.NewPaginationInfo(total, page, size),
			"Enrollments retrieved"))
	})
}

// GetStudentEnrollments handles GET /api/v1/enrollments/students/:id. The
// student service probes this endpoint before deleting a student, so an
// empty result answers 404 rather than an empty list. Not cached: the probe
// must always see current state.
func (ctrl *EnrollmentController) GetStudentEnrollments(c *gin.Context) {
	studentID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	enrollments, err := ctrl.enrollmentService.GetStudentEnrollments(c.Request.Context(), studentID)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(dto.ToEnrollmentResponses(enrollments), "Student enrollments retrieved"))
}

// DeleteEnrollment handles DELETE /api/v1/enrollments/:id
func (ctrl *EnrollmentController) DeleteEnrollment(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := ctrl.enrollmentService.DeleteEnrollment(c.Request.Context(), id); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(nil, "Enrollment deleted successfully"))
}
