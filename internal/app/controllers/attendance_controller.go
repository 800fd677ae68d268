package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/ozgur/rollcall/internal/app/models/dto"
	"github.com/ozgur/rollcall/internal/app/services"
	"github.com/ozgur/rollcall/internal/middleware"
)

// AttendanceController handles attendance related operations
type AttendanceController struct {
	attendanceService services.AttendanceService
}

// NewAttendanceController creates a new AttendanceController
func NewAttendanceController(attendanceService services.AttendanceService) *AttendanceController {
	return &AttendanceController{
		attendanceService: attendanceService,
	}
}

// CheckIn handles a student redeeming an attendance code
// @Summary Check in with a code
// @Description Redeems a six-digit attendance code for the authenticated student
// @Tags attendance
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CheckInRequest true "Attendance code"
// @Success 200 {object} dto.APIResponse{data=dto.CheckInResponse} "Checked in"
// @Failure 403 {object} dto.ErrorResponse "Not enrolled in the session's course"
// @Failure 404 {object} dto.ErrorResponse "Unknown code"
// @Failure 410 {object} dto.ErrorResponse "Code expired"
// @Router /attendance/check-in [post]
func (c *AttendanceController) CheckIn(ctx *gin.Context) {
	var req dto.CheckInRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	userID, _ := middleware.GetUserID(ctx)

	resp, err := c.attendanceService.CheckInByCode(ctx.Request.Context(), userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// MarkAttendance handles a manual attendance write by course staff
// @Summary Mark attendance manually
// @Description Writes a faculty-asserted status for a student, overwriting any existing row
// @Tags attendance
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.MarkAttendanceRequest true "Attendance mark"
// @Success 200 {object} dto.APIResponse "Attendance marked"
// @Failure 403 {object} dto.ErrorResponse "Not the course's faculty or intern, or student not enrolled"
// @Failure 404 {object} dto.ErrorResponse "Session not found"
// @Router /attendance/mark [post]
func (c *AttendanceController) MarkAttendance(ctx *gin.Context) {
	var req dto.MarkAttendanceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	userID, _ := middleware.GetUserID(ctx)

	if err := c.attendanceService.MarkAttendance(ctx.Request.Context(), userID, &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessMessage("Attendance marked"))
}

// SessionRoster handles listing a session's attendance records
// @Summary Get a session's attendance
// @Description Lists the attendance rows of a session joined with student identity, for course staff
// @Tags attendance
// @Produce json
// @Security BearerAuth
// @Param id path int true "Session ID"
// @Success 200 {object} dto.APIResponse{data=[]dto.AttendanceRecordResponse} "Roster retrieved"
// @Failure 403 {object} dto.ErrorResponse "Not the course's faculty or intern"
// @Failure 404 {object} dto.ErrorResponse "Session not found"
// @Router /sessions/{id}/attendance [get]
func (c *AttendanceController) SessionRoster(ctx *gin.Context) {
	sessionID, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "Invalid session ID")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	userID, _ := middleware.GetUserID(ctx)

	records, err := c.attendanceService.SessionRoster(ctx.Request.Context(), userID, sessionID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(records))
}
