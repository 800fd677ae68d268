package models

import "time"

// Enrollment is a student's request to join a course and its approval state.
// At most one row exists per (student, course); the transition out of
// 'pending' is terminal.
type Enrollment struct {
	ID             int64            `json:"id" db:"id"`
	StudentID      int64            `json:"studentId" db:"student_id"`
	CourseID       int64            `json:"courseId" db:"course_id"`
	EnrollmentType EnrollmentType   `json:"enrollmentType" db:"enrollment_type"`
	Status         EnrollmentStatus `json:"status" db:"status"`
	RequestedAt    time.Time        `json:"requestedAt" db:"requested_at"`
	ReviewedAt     *time.Time       `json:"reviewedAt,omitempty" db:"reviewed_at"`
}

// EnrollmentRequest is a pending enrollment joined with the student and
// course it refers to, as shown to the reviewing faculty.
type EnrollmentRequest struct {
	Enrollment
	CourseCode   string `json:"courseCode"`
	CourseName   string `json:"courseName"`
	StudentName  string `json:"studentName"`
	StudentEmail string `json:"studentEmail"`
}

// EnrolledStudent is one approved member of a course's roster.
type EnrolledStudent struct {
	StudentID      int64          `json:"studentId"`
	FirstName      string         `json:"firstName"`
	LastName       string         `json:"lastName"`
	Email          string         `json:"email"`
	EnrollmentType EnrollmentType `json:"enrollmentType"`
	RequestedAt    time.Time      `json:"requestedAt"`
}
