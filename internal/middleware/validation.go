package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/campusgrid/campusgrid/internal/app/models/dto"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// DTOs carry their rules in gin binding tags.
	v.SetTagName("binding")
	return v
}

// BindAndValidate binds the JSON body into obj and runs struct validation on
// top of gin's binding tags. It writes the error response itself; callers
// bail out when it returns false.
func BindAndValidate(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request format")
		errorDetail = errorDetail.WithDetails(err.Error())
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return false
	}

	if err := validate.Struct(obj); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Validation failed")
		if fieldErrs, ok := err.(validator.ValidationErrors); ok && len(fieldErrs) > 0 {
			errorDetail = errorDetail.
				WithField(fieldErrs[0].Field()).
				WithDetails(formatValidationError(fieldErrs[0]))
		}
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return false
	}

	return true
}

func formatValidationError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return e.Field() + " is required"
	case "min":
		return e.Field() + " must be at least " + e.Param()
	case "max":
		return e.Field() + " must be at most " + e.Param()
	case "email":
		return e.Field() + " must be a valid email address"
	case "gtfield":
		return e.Field() + " must be after " + e.Param()
	default:
		return e.Field() + " validation failed: " + e.Tag()
	}
}
