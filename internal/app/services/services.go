package services

import (
	"context"
	"time"

	"github.com/ozgur/rollcall/internal/app/models"
)

// Repository interfaces consumed by the services in this package. The
// concrete implementations live in internal/app/repositories; tests swap in
// in-memory fakes.

type courseRepository interface {
	Create(ctx context.Context, course *models.Course) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Course, error)
	ListByFaculty(ctx context.Context, facultyID int64) ([]models.CourseSummary, error)
	ListByIntern(ctx context.Context, internID int64) ([]models.CourseSummary, error)
	ListEnrolledForStudent(ctx context.Context, studentID int64, status models.EnrollmentStatus) ([]models.CourseSummary, error)
	ListAvailableForStudent(ctx context.Context, studentID int64) ([]models.CourseSummary, error)
	ListWithoutIntern(ctx context.Context) ([]models.CourseSummary, error)
	AssignIntern(ctx context.Context, courseID, internID int64) error
}

type enrollmentRepository interface {
	GetByID(ctx context.Context, id int64) (*models.Enrollment, error)
	GetByStudentCourse(ctx context.Context, studentID, courseID int64) (*models.Enrollment, error)
	CreateRequest(ctx context.Context, studentID, courseID int64, enrollmentType models.EnrollmentType) (int64, error)
	HasApproved(ctx context.Context, studentID, courseID int64) (bool, error)
	PendingForFaculty(ctx context.Context, facultyID int64) ([]models.EnrollmentRequest, error)
	UpdateStatus(ctx context.Context, id int64, status models.EnrollmentStatus) error
	EnrolledStudents(ctx context.Context, courseID int64) ([]models.EnrolledStudent, error)
}

type sessionRepository interface {
	Create(ctx context.Context, session *models.Session) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.SessionWithCourse, error)
	GetByCode(ctx context.Context, code string) (*models.SessionWithCourse, error)
	ListByCourse(ctx context.Context, courseID int64) ([]models.SessionOverview, error)
}

type attendanceRepository interface {
	InsertIfAbsent(ctx context.Context, a *models.Attendance) (*models.Attendance, bool, error)
	GetBySessionStudent(ctx context.Context, sessionID, studentID int64) (*models.Attendance, error)
	UpsertManual(ctx context.Context, a *models.Attendance) error
	RosterBySession(ctx context.Context, sessionID int64) ([]models.AttendanceRecord, error)
	CountsForStudent(ctx context.Context, courseID, studentID int64) (*models.AttendanceCounts, error)
	SessionsWithStatus(ctx context.Context, courseID, studentID int64, from, to *time.Time) ([]models.SessionAttendance, error)
}

type codeRegistry interface {
	Reserve(ctx context.Context, code string, ttl time.Duration) (bool, error)
	Release(ctx context.Context, code string) error
}
