package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/campusgrid/campusgrid/internal/app/models/dto"
	"github.com/campusgrid/campusgrid/internal/app/services"
	"github.com/campusgrid/campusgrid/internal/middleware"
	"github.com/campusgrid/campusgrid/internal/pkg/cache"
	"github.com/campusgrid/campusgrid/internal/pkg/helpers"
)

const studentEntity = "student"

// StudentController handles student endpoints.
type StudentController struct {
	studentService *services.StudentService
	cache          *cache.Cache
}

// NewStudentController creates a new StudentController
func NewStudentController(studentService *services.StudentService, cache *cache.Cache) *StudentController {
	return &StudentController{
		studentService: studentService,
		cache:          cache,
	}
}

// CreateStudent handles POST /api/v1/students
func (ctrl *StudentController) CreateStudent(c *gin.Context) {
	var req dto.CreateStudentRequest
	if !middleware.BindAndValidate(c, &req) {
		return
	}

	student, err := ctrl.studentService.CreateStudent(c.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	ctrl.evict(c, student.ID)
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(dto.ToStudentResponse(student), "Student created successfully"))
}

// GetStudent handles GET /api/v1/students/:id
func (ctrl *StudentController) GetStudent(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	key := cache.EntityKey(studentEntity, strconv.FormatInt(id, 10))

	respondCached(c, ctrl.cache, key, func(ctx context.Context) ([]byte, error) {
		student, err := ctrl.studentService.GetStudent(ctx, id)
		if err != nil {
			return nil, err
		}
		return json.Marshal(dto.NewSuccessResponse(dto.ToStudentResponse(student), "Student retrieved"))
	})
}

// ListStudents handles GET /api/v1/students
func (ctrl *StudentController) ListStudents(c *gin.Context) {
	page, size := helpers.ParsePaginationParams(c)
	key := cache.ListKey(studentEntity, c.Request.URL.Query())

	respondCached(c, ctrl.cache, key, func(ctx context.Context) ([]byte, error) {
		offset, limit := helpers.CalculateOffsetLimit(page, size)
		students, total, err := ctrl.studentService.ListStudents(ctx, offset, limit)
		if err != nil {
			return nil, err
		}
		return json.Marshal(dto.NewPaginatedResponse(
			dto.ToStudentResponses(students),
			helpers.NewPaginationInfo(total, page, size),
			"Students retrieved"))
	})
}

// UpdateStudent handles PUT /api/v1/students/:id
func (ctrl *StudentController) UpdateStudent(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateStudentRequest
	if !middleware.BindAndValidate(c, &req) {
		return
	}

	student, err := ctrl.studentService.UpdateStudent(c.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	ctrl.evict(c, id)
	c.JSON(http.StatusOK, dto.NewSuccessResponse(dto.ToStudentResponse(student), "Student updated successfully"))
}

// DeleteStudent handles DELETE /api/v1/students/:id
func (ctrl *StudentController) DeleteStudent(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := ctrl.studentService.DeleteStudent(c.Request.Context(), id); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	ctrl.evict(c, id)
	c.JSON(http.StatusOK, dto.NewSuccessResponse(nil, "Student deleted successfully"))
}

func (ctrl *StudentController) evict(c *gin.Context, id int64) {
	if ctrl.cache == nil {
		return
	}
	_ = ctrl.cache.Remove(c.Request.Context(), cache.EntityKey(studentEntity, strconv.FormatInt(id, 10)))
}
