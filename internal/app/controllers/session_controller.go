package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/ozgur/rollcall/internal/app/models/dto"
	"github.com/ozgur/rollcall/internal/app/services"
	"github.com/ozgur/rollcall/internal/middleware"
)

// SessionController handles class session related operations
type SessionController struct {
	sessionService services.SessionService
}

// NewSessionController creates a new SessionController
func NewSessionController(sessionService services.SessionService) *SessionController {
	return &SessionController{
		sessionService: sessionService,
	}
}

// CreateSession handles scheduling a session and issuing its attendance code
// @Summary Create a session
// @Description Schedules a class session and returns the generated six-digit attendance code
// @Tags sessions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateSessionRequest true "Session details"
// @Success 201 {object} dto.APIResponse{data=dto.CreateSessionResponse} "Session created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request"
// @Failure 403 {object} dto.ErrorResponse "Not the course's faculty or intern"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /sessions [post]
func (c *SessionController) CreateSession(ctx *gin.Context) {
	var req dto.CreateSessionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	userID, _ := middleware.GetUserID(ctx)

	resp, err := c.sessionService.CreateSession(ctx.Request.Context(), userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(resp))
}

// ListSessions handles listing a course's sessions
// @Summary List sessions
// @Description Lists a course's sessions, newest first. Students see the attendance code only while it is redeemable.
// @Tags sessions
// @Produce json
// @Security BearerAuth
// @Param courseId query int true "Course ID"
// @Success 200 {object} dto.APIResponse{data=[]dto.SessionResponse} "Sessions retrieved"
// @Failure 403 {object} dto.ErrorResponse "No access to the course"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /sessions [get]
func (c *SessionController) ListSessions(ctx *gin.Context) {
	courseID, err := strconv.ParseInt(ctx.Query("courseId"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "Invalid or missing courseId")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	userID, _ := middleware.GetUserID(ctx)
	role, _ := middleware.GetRoleType(ctx)

	sessions, err := c.sessionService.ListSessions(ctx.Request.Context(), userID, role, courseID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(sessions))
}
