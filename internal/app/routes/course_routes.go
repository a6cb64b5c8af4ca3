package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/campusgrid/campusgrid/internal/app/controllers"
)

// SetupCourseRoutes configures the course service routes. The course service
// also owns enrollments. requireAuth is the auth strategy picked at
// bootstrap (JWT validation or trusted gateway headers).
//
// The per-student enrollment listing stays outside the authenticated group:
// the student service probes it server-to-server before deleting a student.
func SetupCourseRoutes(
	router *gin.Engine,
	courseController *controllers.CourseController,
	enrollmentController *controllers.EnrollmentController,
	requireAuth gin.HandlerFunc,
) {
	v1 := router.Group("/api/v1")

	v1.GET("/enrollments/students/:id", enrollmentController.GetStudentEnrollments)

	authenticated := v1.Group("")
	authenticated.Use(requireAuth)

	courses := authenticated.Group("/courses")
	{
		courses.POST("", courseController.CreateCourse)
		courses.GET("", courseController.ListCourses)
		courses.GET("/:id", courseController.GetCourse)
		courses.PUT("/:id", courseController.UpdateCourse)
		courses.DELETE("/:id", courseController.DeleteCourse)
		courses.GET("/:id/students", courseController.GetCourseStudents)
	}

	enrollments := authenticated.Group("/enrollments")
	{
		enrollments.POST("", enrollmentController.CreateEnrollment)
		enrollments.GET("", enrollmentController.ListEnrollments)
		enrollments.GET("/:id", enrollmentController.GetEnrollment)
		enrollments.DELETE("/:id", enrollmentController.DeleteEnrollment)
	}
}
