package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/ozgur/rollcall/internal/app/controllers"
	"github.com/ozgur/rollcall/internal/app/models"
	"github.com/ozgur/rollcall/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	courseController *controllers.CourseController,
	enrollmentController *controllers.EnrollmentController,
	sessionController *controllers.SessionController,
	attendanceController *controllers.AttendanceController,
	reportController *controllers.ReportController,
	authMiddleware *middleware.AuthMiddleware,
	checkInLimiter *middleware.TokenBucketLimiter,
) {
	// API version group; every route requires a valid token
	v1 := router.Group("/api/v1")
	v1.Use(authMiddleware.JWTAuth())

	courses := v1.Group("/courses")
	{
		courses.GET("", courseController.ListCourses)
		courses.GET("/:id/attendance-report", reportController.AttendanceReport)

		coursesFaculty := courses.Group("")
		coursesFaculty.Use(authMiddleware.RoleRequired(models.RoleFaculty))
		{
			coursesFaculty.POST("", courseController.CreateCourse)
		}

		coursesStaff := courses.Group("")
		coursesStaff.Use(authMiddleware.RoleRequired(models.RoleFaculty, models.RoleFacultyIntern))
		{
			coursesStaff.GET("/:id/students", courseController.GetCourseStudents)
		}

		coursesStudent := courses.Group("")
		coursesStudent.Use(authMiddleware.RoleRequired(models.RoleStudent))
		{
			coursesStudent.POST("/:id/enrollments", enrollmentController.JoinCourse)
		}

		coursesIntern := courses.Group("")
		coursesIntern.Use(authMiddleware.RoleRequired(models.RoleFacultyIntern))
		{
			coursesIntern.POST("/:id/intern", courseController.ClaimInternship)
		}
	}

	enrollments := v1.Group("/enrollments")
	enrollments.Use(authMiddleware.RoleRequired(models.RoleFaculty))
	{
		enrollments.GET("/pending", enrollmentController.PendingRequests)
		enrollments.POST("/:id/review", enrollmentController.ReviewEnrollment)
	}

	sessions := v1.Group("/sessions")
	{
		sessions.GET("", sessionController.ListSessions)

		sessionsStaff := sessions.Group("")
		sessionsStaff.Use(authMiddleware.RoleRequired(models.RoleFaculty, models.RoleFacultyIntern))
		{
			sessionsStaff.POST("", sessionController.CreateSession)
			sessionsStaff.GET("/:id/attendance", attendanceController.SessionRoster)
		}
	}

	attendance := v1.Group("/attendance")
	{
		attendanceStudent := attendance.Group("")
		attendanceStudent.Use(authMiddleware.RoleRequired(models.RoleStudent))
		attendanceStudent.Use(checkInLimiter.Middleware())
		{
			attendanceStudent.POST("/check-in", attendanceController.CheckIn)
		}

		attendanceStaff := attendance.Group("")
		attendanceStaff.Use(authMiddleware.RoleRequired(models.RoleFaculty, models.RoleFacultyIntern))
		{
			attendanceStaff.POST("/mark", attendanceController.MarkAttendance)
		}
	}
}
