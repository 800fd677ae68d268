package dto

import "time"

// CreateSessionRequest is the payload for scheduling a class session
type CreateSessionRequest struct {
	CourseID  int64   `json:"courseId" binding:"required" example:"12"`
	Date      string  `json:"date" binding:"required,datetime=2006-01-02" example:"2026-09-14"`
	StartTime string  `json:"startTime" binding:"required,datetime=15:04" example:"09:00"`
	EndTime   string  `json:"endTime" binding:"required,datetime=15:04" example:"10:30"`
	Topic     *string `json:"topic,omitempty" example:"Pointers and memory"`
	Location  *string `json:"location,omitempty" example:"B-204"`
}

// CreateSessionResponse returns the generated attendance code and its expiry
type CreateSessionResponse struct {
	SessionID      int64     `json:"sessionId" example:"73"`
	AttendanceCode string    `json:"attendanceCode" example:"004821"`
	CodeExpiresAt  time.Time `json:"codeExpiresAt"`
}

// SessionResponse is one scheduled session as returned by the listing
// endpoint. AttendanceCode is nil for students once the code has expired.
type SessionResponse struct {
	ID              int64     `json:"id"`
	CourseID        int64     `json:"courseId"`
	CourseCode      string    `json:"courseCode"`
	CourseName      string    `json:"courseName"`
	Date            string    `json:"date" example:"2026-09-14"`
	StartTime       string    `json:"startTime" example:"09:00"`
	EndTime         string    `json:"endTime" example:"10:30"`
	Topic           *string   `json:"topic,omitempty"`
	Location        *string   `json:"location,omitempty"`
	AttendanceCode  *string   `json:"attendanceCode,omitempty"`
	CodeExpiresAt   time.Time `json:"codeExpiresAt"`
	AttendanceCount int64     `json:"attendanceCount"`
}
