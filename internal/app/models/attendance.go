package models

import "time"

// Attendance records the state of one student in one session. At most one
// row exists per (session, student); both check-in paths upsert against
// that key.
type Attendance struct {
	ID            int64            `json:"id" db:"id"`
	SessionID     int64            `json:"sessionId" db:"session_id"`
	StudentID     int64            `json:"studentId" db:"student_id"`
	Status        AttendanceStatus `json:"status" db:"status"`
	CheckInMethod CheckInMethod    `json:"checkInMethod" db:"check_in_method"`
	CheckedInAt   *time.Time       `json:"checkedInAt,omitempty" db:"checked_in_at"`
	Remarks       *string          `json:"remarks,omitempty" db:"remarks"`
	CreatedAt     time.Time        `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time        `json:"updatedAt" db:"updated_at"`
}

// AttendanceRecord is an attendance row joined with the student it belongs
// to, as shown on a session roster.
type AttendanceRecord struct {
	Attendance
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

// SessionAttendance pairs a session with the (possibly missing) attendance
// of one student, for report listings. A nil Status means the student has
// not been marked yet, which is not the same as absent.
type SessionAttendance struct {
	SessionID     int64             `json:"sessionId"`
	StartsAt      time.Time         `json:"startsAt"`
	EndsAt        time.Time         `json:"endsAt"`
	Topic         *string           `json:"topic,omitempty"`
	Location      *string           `json:"location,omitempty"`
	Status        *AttendanceStatus `json:"status"`
	CheckInMethod *CheckInMethod    `json:"checkInMethod,omitempty"`
	CheckedInAt   *time.Time        `json:"checkedInAt,omitempty"`
}

// AttendanceCounts is the aggregate a course report is built from.
type AttendanceCounts struct {
	TotalSessions int64 `json:"totalSessions"`
	MarkedCount   int64 `json:"markedCount"`
	PresentCount  int64 `json:"presentCount"`
	LateCount     int64 `json:"lateCount"`
	AbsentCount   int64 `json:"absentCount"`
}
