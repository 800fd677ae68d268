package models

// RoleType defines the user role type
type RoleType string

const (
	RoleStudent       RoleType = "STUDENT"
	RoleFaculty       RoleType = "FACULTY"
	RoleFacultyIntern RoleType = "FACULTY_INTERN"
)

// EnrollmentStatus is the approval state of a join request
type EnrollmentStatus string

const (
	EnrollmentPending  EnrollmentStatus = "pending"
	EnrollmentApproved EnrollmentStatus = "approved"
	EnrollmentRejected EnrollmentStatus = "rejected"
)

// EnrollmentType distinguishes how a student participates in a course
type EnrollmentType string

const (
	EnrollRegular  EnrollmentType = "regular"
	EnrollAuditor  EnrollmentType = "auditor"
	EnrollObserver EnrollmentType = "observer"
)

// AttendanceStatus is the recorded state for one student in one session
type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "present"
	AttendanceLate    AttendanceStatus = "late"
	AttendanceAbsent  AttendanceStatus = "absent"
)

// CheckInMethod records the provenance of an attendance row
type CheckInMethod string

const (
	CheckInByCode CheckInMethod = "code"
	CheckInManual CheckInMethod = "manual"
)

// ValidAttendanceStatus reports whether s is one of the accepted statuses.
func ValidAttendanceStatus(s AttendanceStatus) bool {
	switch s {
	case AttendancePresent, AttendanceLate, AttendanceAbsent:
		return true
	}
	return false
}

// ValidEnrollmentType reports whether t is one of the accepted types.
func ValidEnrollmentType(t EnrollmentType) bool {
	switch t {
	case EnrollRegular, EnrollAuditor, EnrollObserver:
		return true
	}
	return false
}
