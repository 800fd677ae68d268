package services

import (
	"context"
	"errors"

	"github.com/ozgur/rollcall/internal/app/models"
	"github.com/ozgur/rollcall/internal/app/models/dto"
	"github.com/ozgur/rollcall/internal/pkg/apperrors"
	"github.com/ozgur/rollcall/internal/pkg/logger"
)

// EnrollmentService defines the interface for enrollment operations
type EnrollmentService interface {
	JoinCourse(ctx context.Context, studentID, courseID int64, req *dto.JoinCourseRequest) (int64, error)
	PendingRequests(ctx context.Context, facultyID int64) ([]models.EnrollmentRequest, error)
	ReviewEnrollment(ctx context.Context, facultyID, enrollmentID int64, req *dto.ReviewEnrollmentRequest) error
}

// enrollmentServiceImpl implements EnrollmentService
type enrollmentServiceImpl struct {
	enrollmentRepo enrollmentRepository
	courseRepo     courseRepository
}

// NewEnrollmentService creates a new EnrollmentService
func NewEnrollmentService(enrollmentRepo enrollmentRepository, courseRepo courseRepository) EnrollmentService {
	return &enrollmentServiceImpl{
		enrollmentRepo: enrollmentRepo,
		courseRepo:     courseRepo,
	}
}

// JoinCourse files a pending enrollment request. A student gets one row per
// course for life: pending and approved rows block a second request, and a
// rejected row blocks re-applying for good.
func (s *enrollmentServiceImpl) JoinCourse(ctx context.Context, studentID, courseID int64, req *dto.JoinCourseRequest) (int64, error) {
	if _, err := s.courseRepo.GetByID(ctx, courseID); err != nil {
		return 0, err
	}

	existing, err := s.enrollmentRepo.GetByStudentCourse(ctx, studentID, courseID)
	if err != nil && !errors.Is(err, apperrors.ErrEnrollmentNotFound) {
		return 0, err
	}
	if existing != nil {
		switch existing.Status {
		case models.EnrollmentPending:
			return 0, apperrors.ErrEnrollmentPending
		case models.EnrollmentRejected:
			return 0, apperrors.ErrEnrollmentRejected
		default:
			return 0, apperrors.ErrAlreadyEnrolled
		}
	}

	enrollmentType := models.EnrollRegular
	if req.EnrollmentType != "" {
		enrollmentType = models.EnrollmentType(req.EnrollmentType)
	}

	// The unique constraint catches the race where two requests for the
	// same (student, course) pass the lookup above concurrently.
	id, err := s.enrollmentRepo.CreateRequest(ctx, studentID, courseID, enrollmentType)
	if err != nil {
		return 0, err
	}

	logger.Info().
		Int64("enrollmentId", id).
		Int64("studentId", studentID).
		Int64("courseId", courseID).
		Msg("Enrollment requested")

	return id, nil
}

// PendingRequests lists the pending enrollment requests across all courses
// the faculty member owns
func (s *enrollmentServiceImpl) PendingRequests(ctx context.Context, facultyID int64) ([]models.EnrollmentRequest, error) {
	return s.enrollmentRepo.PendingForFaculty(ctx, facultyID)
}

// ReviewEnrollment approves or rejects a pending request. Only the faculty
// who owns the course may decide, and a decided request stays decided.
func (s *enrollmentServiceImpl) ReviewEnrollment(ctx context.Context, facultyID, enrollmentID int64, req *dto.ReviewEnrollmentRequest) error {
	enrollment, err := s.enrollmentRepo.GetByID(ctx, enrollmentID)
	if err != nil {
		return err
	}

	course, err := s.courseRepo.GetByID(ctx, enrollment.CourseID)
	if err != nil {
		return err
	}
	if course.FacultyID != facultyID {
		return apperrors.ErrPermissionDenied
	}

	if enrollment.Status != models.EnrollmentPending {
		return apperrors.NewConflictError("enrollment has already been reviewed")
	}

	status := models.EnrollmentApproved
	if req.Action == "reject" {
		status = models.EnrollmentRejected
	}

	if err := s.enrollmentRepo.UpdateStatus(ctx, enrollmentID, status); err != nil {
		return err
	}

	logger.Info().
		Int64("enrollmentId", enrollmentID).
		Int64("facultyId", facultyID).
		Str("status", string(status)).
		Msg("Enrollment reviewed")

	return nil
}
