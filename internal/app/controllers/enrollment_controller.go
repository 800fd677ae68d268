package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/ozgur/rollcall/internal/app/models/dto"
	"github.com/ozgur/rollcall/internal/app/services"
	"github.com/ozgur/rollcall/internal/middleware"
)

// EnrollmentController handles enrollment related operations
type EnrollmentController struct {
	enrollmentService services.EnrollmentService
}

// NewEnrollmentController creates a new EnrollmentController
func NewEnrollmentController(enrollmentService services.EnrollmentService) *EnrollmentController {
	return &EnrollmentController{
		enrollmentService: enrollmentService,
	}
}

// JoinCourse handles a student's request to join a course
// @Summary Request enrollment
// @Description Files a pending enrollment request for the authenticated student
// @Tags enrollments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Param request body dto.JoinCourseRequest false "Enrollment type"
// @Success 201 {object} dto.APIResponse "Enrollment requested"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 409 {object} dto.ErrorResponse "Existing enrollment blocks the request"
// @Router /courses/{id}/enrollments [post]
func (c *EnrollmentController) JoinCourse(ctx *gin.Context) {
	courseID, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "Invalid course ID")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	// The body is optional; an empty one means a regular enrollment.
	var req dto.JoinCourseRequest
	if ctx.Request.ContentLength > 0 {
		if err := ctx.ShouldBindJSON(&req); err != nil {
			middleware.HandleBindingError(ctx, err)
			return
		}
	}

	userID, _ := middleware.GetUserID(ctx)

	id, err := c.enrollmentService.JoinCourse(ctx.Request.Context(), userID, courseID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(gin.H{"enrollmentId": id}))
}

// PendingRequests handles listing pending enrollment requests for review
// @Summary List pending enrollment requests
// @Description Lists pending requests across all courses the authenticated faculty member owns
// @Tags enrollments
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.EnrollmentRequest} "Pending requests retrieved"
// @Router /enrollments/pending [get]
func (c *EnrollmentController) PendingRequests(ctx *gin.Context) {
	userID, _ := middleware.GetUserID(ctx)

	requests, err := c.enrollmentService.PendingRequests(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(requests))
}

// ReviewEnrollment handles approving or rejecting a pending request
// @Summary Review an enrollment request
// @Description Approves or rejects a pending request on a course the authenticated faculty member owns
// @Tags enrollments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Enrollment ID"
// @Param request body dto.ReviewEnrollmentRequest true "Decision"
// @Success 200 {object} dto.APIResponse "Enrollment reviewed"
// @Failure 403 {object} dto.ErrorResponse "Not the course owner"
// @Failure 404 {object} dto.ErrorResponse "Enrollment not found"
// @Failure 409 {object} dto.ErrorResponse "Already reviewed"
// @Router /enrollments/{id}/review [post]
func (c *EnrollmentController) ReviewEnrollment(ctx *gin.Context) {
	enrollmentID, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "Invalid enrollment ID")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	var req dto.ReviewEnrollmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	userID, _ := middleware.GetUserID(ctx)

	if err := c.enrollmentService.ReviewEnrollment(ctx.Request.Context(), userID, enrollmentID, &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	message := "Enrollment approved"
	if req.Action == "reject" {
		message = "Enrollment rejected"
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessMessage(message))
}
