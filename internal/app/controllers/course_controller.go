package controllers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campusgrid/campusgrid/internal/app/models/dto"
	"github.com/campusgrid/campusgrid/internal/app/repositories"
	"github.com/campusgrid/campusgrid/internal/app/services"
	"github.com/campusgrid/campusgrid/internal/middleware"
	"github.com/campusgrid/campusgrid/internal/pkg/cache"
	"github.com/campusgrid/campusgrid/internal/pkg/helpers"
)

const courseEntity = "course"

// CourseController handles course endpoints.
type CourseController struct {
	courseService *services.CourseService
	cache         *cache.Cache
}

// NewCourseController creates a new CourseController
func NewCourseController(courseService *services.CourseService, cache *cache.Cache) *CourseController {
	return &CourseController{
		courseService: courseService,
		cache:         cache,
	}
}

// CreateCourse handles POST /api/v1/courses
func (ctrl *CourseController) CreateCourse(c *gin.Context) {
	var req dto.CreateCourseRequest
	if !middleware.BindAndValidate(c, &req) {
		return
	}

	course, err := ctrl.courseService.CreateCourse(c.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	ctrl.evict(c, course.CourseID)
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(dto.ToCourseResponse(course), "Course created successfully"))
}

// GetCourse handles GET /api/v1/courses/:id
func (ctrl *CourseController) GetCourse(c *gin.Context) {
	courseID := c.Param("id")
	key := cache.EntityKey(courseEntity, courseID)

	respondCached(c, ctrl.cache, key, func(ctx context.Context) ([]byte, error) {
		course, err := ctrl.courseService.GetCourse(ctx, courseID)
		if err != nil {
			return nil, err
		}
		return json.Marshal(dto.NewSuccessResponse(dto.ToCourseResponse(course), "Course retrieved"))
	})
}

// ListCourses handles GET /api/v1/courses with optional department and
// instructor filters.
func (ctrl *CourseController) ListCourses(c *gin.Context) {
	page, size := helpers.ParsePaginationParams(c)
	filter := repositories.CourseFilter{
		Department: c.Query("department"),
		Instructor: c.Query("instructor"),
	}
	key := cache.ListKey(courseEntity, c.Request.URL.Query())

	respondCached(c, ctrl.cache, key, func(ctx context.Context) ([]byte, error) {
		offset, limit := helpers.CalculateOffsetLimit(page, size)
		courses, total, err := ctrl.courseService.ListCourses(ctx, filter, offset, limit)
		if err != nil {
			return nil, err
		}
		return json.Marshal(dto.NewPaginatedResponse(
			dto.ToCourseResponses(courses),
			helpers.NewPaginationInfo(total, page, size),
			"Courses retrieved"))
	})
}

// UpdateCourse handles PUT /api/v1/courses/:id
func (ctrl *CourseController) UpdateCourse(c *gin.Context) {
	courseID := c.Param("id")

	var req dto.UpdateCourseRequest
	if !middleware.BindAndValidate(c, &req) {
		return
	}

	course, err := ctrl.courseService.UpdateCourse(c.Request.Context(), courseID, &req)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	ctrl.evict(c, courseID)
	c.JSON(http.StatusOK, dto.NewSuccessResponse(dto.ToCourseResponse(course), "Course updated successfully"))
}

// DeleteCourse handles DELETE /api/v1/courses/:id
func (ctrl *CourseController) DeleteCourse(c *gin.Context) {
	courseID := c.Param("id")

	if err := ctrl.courseService.DeleteCourse(c.Request.Context(), courseID); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	ctrl.evict(c, courseID)
	c.JSON(http.StatusOK, dto.NewSuccessResponse(nil, "Course deleted successfully"))
}

// GetCourseStudents handles GET /api/v1/courses/:id/students. Not cached:
// the roster mixes local enrollment state with remote student records.
func (ctrl *CourseController) GetCourseStudents(c *gin.Context) {
	courseID := c.Param("id")

	students, err := ctrl.courseService.GetCourseStudents(c.Request.Context(), courseID)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(students, "Course students retrieved"))
}

// evict drops the cached entity after a write. List entries age out on TTL.
func (ctrl *CourseController) evict(c *gin.Context, courseID string) {
	if ctrl.cache == nil {
		return
	}
	_ = ctrl.cache.Remove(c.Request.Context(), cache.EntityKey(courseEntity, courseID))
}
