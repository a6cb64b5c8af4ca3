package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/campusgrid/campusgrid/internal/app/controllers"
)

// SetupStudentRoutes configures the student service REST routes. requireAuth
// is the auth strategy picked at bootstrap.
func SetupStudentRoutes(
	router *gin.Engine,
	studentController *controllers.StudentController,
	requireAuth gin.HandlerFunc,
) {
	v1 := router.Group("/api/v1")

	authenticated := v1.Group("")
	authenticated.Use(requireAuth)

	students := authenticated.Group("/students")
	{
		students.POST("", studentController.CreateStudent)
		students.GET("", studentController.ListStudents)
		students.GET("/:id", studentController.GetStudent)
		students.PUT("/:id", studentController.UpdateStudent)
		students.DELETE("/:id", studentController.DeleteStudent)
	}
}
