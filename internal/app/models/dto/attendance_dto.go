package dto

import (
	"time"

	"github.com/ozgur/rollcall/internal/app/models"
)

// CheckInRequest carries the attendance code a student submits
type CheckInRequest struct {
	Code string `json:"code" binding:"required,len=6,numeric" example:"004821"`
}

// CheckInResponse confirms a code redemption back to the student
type CheckInResponse struct {
	Status models.AttendanceStatus `json:"status" example:"present"`
	Course string                  `json:"course" example:"CS101 - Introduction to Computer Science"`
	// SessionDate is the calendar date of the session that was checked into
	SessionDate string `json:"sessionDate" example:"2026-09-14"`
	// AlreadyCheckedIn is true when a prior code check-in already recorded
	// this student; the stored status is returned unchanged.
	AlreadyCheckedIn bool `json:"alreadyCheckedIn"`
}

// MarkAttendanceRequest is a faculty/intern-asserted attendance write
type MarkAttendanceRequest struct {
	SessionID int64   `json:"sessionId" binding:"required" example:"73"`
	StudentID int64   `json:"studentId" binding:"required" example:"204"`
	Status    string  `json:"status" binding:"required,oneof=present late absent" example:"present"`
	Remarks   *string `json:"remarks,omitempty" example:"joined 40 minutes in"`
}

// AttendanceRecordResponse is one roster entry for a session
type AttendanceRecordResponse struct {
	AttendanceID  int64                   `json:"attendanceId"`
	StudentID     int64                   `json:"studentId"`
	FirstName     string                  `json:"firstName"`
	LastName      string                  `json:"lastName"`
	Email         string                  `json:"email"`
	Status        models.AttendanceStatus `json:"status"`
	CheckInMethod models.CheckInMethod    `json:"checkInMethod"`
	CheckedInAt   *time.Time              `json:"checkedInAt,omitempty"`
	Remarks       *string                 `json:"remarks,omitempty"`
}
