package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/ozgur/rollcall/internal/app/models/dto"
	"github.com/ozgur/rollcall/internal/app/services"
	"github.com/ozgur/rollcall/internal/middleware"
)

// ReportController handles attendance reporting
type ReportController struct {
	reportService services.ReportService
}

// NewReportController creates a new ReportController
func NewReportController(reportService services.ReportService) *ReportController {
	return &ReportController{
		reportService: reportService,
	}
}

// AttendanceReport handles the overall and daily report variants
// @Summary Get an attendance report
// @Description Returns the overall or daily attendance report for one student of a course. Students read their own record; course staff pass studentId.
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Param type query string false "Report type (overall or daily, default overall)"
// @Param date query string false "Calendar date for daily reports (YYYY-MM-DD, default today)"
// @Param studentId query int false "Subject student, staff only"
// @Success 200 {object} dto.APIResponse{data=dto.OverallReportResponse} "Report computed"
// @Failure 400 {object} dto.ErrorResponse "Invalid parameters"
// @Failure 403 {object} dto.ErrorResponse "No access to the requested record"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /courses/{id}/attendance-report [get]
func (c *ReportController) AttendanceReport(ctx *gin.Context) {
	courseID, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "Invalid course ID")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	var studentID *int64
	if raw := ctx.Query("studentId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "Invalid studentId")
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
			return
		}
		studentID = &id
	}

	userID, _ := middleware.GetUserID(ctx)
	role, _ := middleware.GetRoleType(ctx)

	switch ctx.DefaultQuery("type", "overall") {
	case "overall":
		report, err := c.reportService.OverallReport(ctx.Request.Context(), userID, role, courseID, studentID)
		if err != nil {
			middleware.HandleAPIError(ctx, err)
			return
		}
		ctx.JSON(http.StatusOK, dto.NewSuccessResponse(report))

	case "daily":
		report, err := c.reportService.DailyReport(ctx.Request.Context(), userID, role, courseID, ctx.Query("date"), studentID)
		if err != nil {
			middleware.HandleAPIError(ctx, err)
			return
		}
		ctx.JSON(http.StatusOK, dto.NewSuccessResponse(report))

	default:
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "Report type must be overall or daily")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
	}
}
