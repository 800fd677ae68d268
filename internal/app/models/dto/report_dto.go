package dto

import "github.com/ozgur/rollcall/internal/app/models"

// ReportSummary aggregates one student's attendance over a whole course.
// AttendancePercentage is nil when the course has no sessions yet; no
// sessions means no rate, not a rate of zero.
type ReportSummary struct {
	TotalSessions        int64    `json:"totalSessions" example:"4"`
	AttendedSessions     int64    `json:"attendedSessions" example:"2"`
	PresentCount         int64    `json:"presentCount" example:"2"`
	LateCount            int64    `json:"lateCount" example:"0"`
	AbsentCount          int64    `json:"absentCount" example:"1"`
	AttendancePercentage *float64 `json:"attendancePercentage" example:"50.00"`
}

// OverallReportResponse is the full-course attendance report for one student
type OverallReportResponse struct {
	Type      string                     `json:"type" example:"overall"`
	StudentID int64                      `json:"studentId" example:"204"`
	Summary   ReportSummary              `json:"summary"`
	Sessions  []models.SessionAttendance `json:"sessions"`
	Count     int                        `json:"count" example:"4"`
}

// DailyReportResponse lists per-session statuses for one calendar date
type DailyReportResponse struct {
	Type      string                     `json:"type" example:"daily"`
	Date      string                     `json:"date" example:"2026-09-14"`
	StudentID int64                      `json:"studentId" example:"204"`
	Sessions  []models.SessionAttendance `json:"sessions"`
	Count     int                        `json:"count" example:"2"`
}
