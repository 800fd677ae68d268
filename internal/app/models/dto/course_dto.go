package dto

// CreateCourseRequest is the payload for creating a course
type CreateCourseRequest struct {
	CourseCode  string  `json:"courseCode" binding:"required,min=2,max=32" example:"CS101"`
	CourseName  string  `json:"courseName" binding:"required,min=2,max=255" example:"Introduction to Computer Science"`
	Description *string `json:"description,omitempty"`
	CreditHours *int    `json:"creditHours,omitempty" binding:"omitempty,min=0,max=30" example:"3"`
	Semester    *string `json:"semester,omitempty" example:"FALL-2026"`
}

// CreateCourseResponse returns the identifier of a newly created course
type CreateCourseResponse struct {
	CourseID int64 `json:"courseId" example:"12"`
}

// CourseListView selects which slice of courses a student sees
type CourseListView string

const (
	CourseViewEnrolled  CourseListView = "enrolled"
	CourseViewPending   CourseListView = "pending"
	CourseViewAvailable CourseListView = "available"
)
