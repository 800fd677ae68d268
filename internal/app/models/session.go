package models

import "time"

// Session is one scheduled meeting of a course. Every session carries its
// own single-use attendance code; the code stops being redeemable at
// CodeExpiresAt, which is fixed at creation time and never recomputed.
type Session struct {
	ID             int64     `json:"id" db:"id"`
	CourseID       int64     `json:"courseId" db:"course_id"`
	StartsAt       time.Time `json:"startsAt" db:"starts_at"`
	EndsAt         time.Time `json:"endsAt" db:"ends_at"`
	Topic          *string   `json:"topic,omitempty" db:"topic"`
	Location       *string   `json:"location,omitempty" db:"location"`
	AttendanceCode string    `json:"attendanceCode" db:"attendance_code"`
	CodeExpiresAt  time.Time `json:"codeExpiresAt" db:"code_expires_at"`
	CreatedBy      int64     `json:"createdBy" db:"created_by"`
	CreatedAt      time.Time `json:"createdAt" db:"created_at"`
}

// CodeExpired reports whether the attendance code can no longer be redeemed.
// Expiry is strict: a redemption at the exact expiry instant still succeeds.
func (s *Session) CodeExpired(now time.Time) bool {
	return s.CodeExpiresAt.Before(now)
}

// SessionOverview is a session row joined with its course and the number of
// attendance rows recorded against it.
type SessionOverview struct {
	Session
	CourseCode      string `json:"courseCode"`
	CourseName      string `json:"courseName"`
	AttendanceCount int64  `json:"attendanceCount"`
}

// SessionWithCourse carries the course ownership columns needed for
// permission checks on a session.
type SessionWithCourse struct {
	Session
	CourseCode string `json:"courseCode"`
	CourseName string `json:"courseName"`
	FacultyID  int64  `json:"facultyId"`
	InternID   *int64 `json:"internId,omitempty"`
}
