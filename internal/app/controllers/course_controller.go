package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/ozgur/rollcall/internal/app/models/dto"
	"github.com/ozgur/rollcall/internal/app/services"
	"github.com/ozgur/rollcall/internal/middleware"
)

// CourseController handles course related operations
type CourseController struct {
	courseService services.CourseService
}

// NewCourseController creates a new CourseController
func NewCourseController(courseService services.CourseService) *CourseController {
	return &CourseController{
		courseService: courseService,
	}
}

// CreateCourse handles course creation by faculty
// @Summary Create a course
// @Description Creates a course owned by the authenticated faculty member
// @Tags courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateCourseRequest true "Course details"
// @Success 201 {object} dto.APIResponse{data=dto.CreateCourseResponse} "Course created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request"
// @Failure 409 {object} dto.ErrorResponse "Course code already exists"
// @Router /courses [post]
func (c *CourseController) CreateCourse(ctx *gin.Context) {
	var req dto.CreateCourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	userID, _ := middleware.GetUserID(ctx)

	resp, err := c.courseService.CreateCourse(ctx.Request.Context(), userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(resp))
}

// ListCourses handles listing courses for the authenticated user
// @Summary List courses
// @Description Lists courses for the caller. Faculty see their own courses, interns their assignments, students pick a view.
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Param type query string false "Student/intern view (enrolled, pending, available)"
// @Success 200 {object} dto.APIResponse{data=[]models.CourseSummary} "Courses retrieved"
// @Failure 400 {object} dto.ErrorResponse "Unknown view"
// @Router /courses [get]
func (c *CourseController) ListCourses(ctx *gin.Context) {
	userID, _ := middleware.GetUserID(ctx)
	role, _ := middleware.GetRoleType(ctx)
	view := dto.CourseListView(ctx.Query("type"))

	courses, err := c.courseService.ListCourses(ctx.Request.Context(), userID, role, view)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(courses))
}

// GetCourseStudents handles listing a course's approved roster
// @Summary List enrolled students
// @Description Lists the approved students of a course, for the owning faculty or assigned intern
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Success 200 {object} dto.APIResponse{data=[]models.EnrolledStudent} "Roster retrieved"
// @Failure 403 {object} dto.ErrorResponse "Not the course's faculty or intern"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /courses/{id}/students [get]
func (c *CourseController) GetCourseStudents(ctx *gin.Context) {
	courseID, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "Invalid course ID")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	userID, _ := middleware.GetUserID(ctx)

	students, err := c.courseService.GetCourseStudents(ctx.Request.Context(), userID, courseID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(students))
}

// ClaimInternship handles a faculty intern assigning themselves to a course
// @Summary Claim a course internship
// @Description Assigns the authenticated intern to the course and enrolls them as an approved observer
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Success 200 {object} dto.APIResponse "Internship claimed"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 409 {object} dto.ErrorResponse "Course already has an intern"
// @Router /courses/{id}/intern [post]
func (c *CourseController) ClaimInternship(ctx *gin.Context) {
	courseID, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "Invalid course ID")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	userID, _ := middleware.GetUserID(ctx)

	if err := c.courseService.ClaimInternship(ctx.Request.Context(), userID, courseID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessMessage("Internship claimed"))
}
