package models

import "time"

// Course represents a course owned by exactly one faculty member, with an
// optional assigned faculty intern.
type Course struct {
	ID          int64     `json:"id" db:"id"`
	CourseCode  string    `json:"courseCode" db:"course_code"`
	CourseName  string    `json:"courseName" db:"course_name"`
	Description *string   `json:"description,omitempty" db:"description"`
	CreditHours *int      `json:"creditHours,omitempty" db:"credit_hours"`
	Semester    *string   `json:"semester,omitempty" db:"semester"`
	FacultyID   int64     `json:"facultyId" db:"faculty_id"`
	InternID    *int64    `json:"internId,omitempty" db:"intern_id"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}

// CourseSummary is a course row joined with the people attached to it,
// used by the course listing queries.
type CourseSummary struct {
	Course
	FacultyName   string  `json:"facultyName"`
	FacultyEmail  string  `json:"facultyEmail"`
	InternName    *string `json:"internName,omitempty"`
	InternEmail   *string `json:"internEmail,omitempty"`
	EnrolledCount int64   `json:"enrolledCount"`
}
