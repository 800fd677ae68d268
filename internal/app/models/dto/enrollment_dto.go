package dto

// JoinCourseRequest is a student's request to join a course
type JoinCourseRequest struct {
	EnrollmentType string `json:"enrollmentType" binding:"omitempty,oneof=regular auditor observer" example:"regular"`
}

// ReviewEnrollmentRequest approves or rejects a pending enrollment
type ReviewEnrollmentRequest struct {
	Action string `json:"action" binding:"required,oneof=approve reject" example:"approve"`
}
