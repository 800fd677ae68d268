package services

import (
	"context"
	"fmt"

	"github.com/ozgur/rollcall/internal/app/models"
	"github.com/ozgur/rollcall/internal/app/models/dto"
	"github.com/ozgur/rollcall/internal/pkg/apperrors"
	"github.com/ozgur/rollcall/internal/pkg/logger"
)

// CourseService defines the interface for course operations
type CourseService interface {
	CreateCourse(ctx context.Context, facultyID int64, req *dto.CreateCourseRequest) (*dto.CreateCourseResponse, error)
	ListCourses(ctx context.Context, userID int64, role models.RoleType, view dto.CourseListView) ([]models.CourseSummary, error)
	GetCourseStudents(ctx context.Context, callerID int64, courseID int64) ([]models.EnrolledStudent, error)
	ClaimInternship(ctx context.Context, internID, courseID int64) error
}

// courseServiceImpl implements CourseService
type courseServiceImpl struct {
	courseRepo     courseRepository
	enrollmentRepo enrollmentRepository
}

// NewCourseService creates a new CourseService
func NewCourseService(courseRepo courseRepository, enrollmentRepo enrollmentRepository) CourseService {
	return &courseServiceImpl{
		courseRepo:     courseRepo,
		enrollmentRepo: enrollmentRepo,
	}
}

// CreateCourse creates a course owned by the calling faculty member
func (s *courseServiceImpl) CreateCourse(ctx context.Context, facultyID int64, req *dto.CreateCourseRequest) (*dto.CreateCourseResponse, error) {
	course := &models.Course{
		CourseCode:  req.CourseCode,
		CourseName:  req.CourseName,
		Description: req.Description,
		CreditHours: req.CreditHours,
		Semester:    req.Semester,
		FacultyID:   facultyID,
	}

	id, err := s.courseRepo.Create(ctx, course)
	if err != nil {
		return nil, err
	}

	logger.Info().
		Int64("courseId", id).
		Str("courseCode", req.CourseCode).
		Int64("facultyId", facultyID).
		Msg("Course created")

	return &dto.CreateCourseResponse{CourseID: id}, nil
}

// ListCourses returns the course slice appropriate for the caller's role.
// Students pick a view; faculty see their own courses; interns see their
// assignments, or the open courses when asking for the available view.
func (s *courseServiceImpl) ListCourses(ctx context.Context, userID int64, role models.RoleType, view dto.CourseListView) ([]models.CourseSummary, error) {
	switch role {
	case models.RoleFaculty:
		return s.courseRepo.ListByFaculty(ctx, userID)

	case models.RoleFacultyIntern:
		if view == dto.CourseViewAvailable {
			return s.courseRepo.ListWithoutIntern(ctx)
		}
		return s.courseRepo.ListByIntern(ctx, userID)

	case models.RoleStudent:
		switch view {
		case dto.CourseViewEnrolled, "":
			return s.courseRepo.ListEnrolledForStudent(ctx, userID, models.EnrollmentApproved)
		case dto.CourseViewPending:
			return s.courseRepo.ListEnrolledForStudent(ctx, userID, models.EnrollmentPending)
		case dto.CourseViewAvailable:
			return s.courseRepo.ListAvailableForStudent(ctx, userID)
		default:
			return nil, apperrors.NewBadRequestError(fmt.Sprintf("unknown course view %q", view))
		}

	default:
		return nil, apperrors.ErrPermissionDenied
	}
}

// GetCourseStudents returns the approved roster of a course. Only the owning
// faculty or the assigned intern may read it.
func (s *courseServiceImpl) GetCourseStudents(ctx context.Context, callerID int64, courseID int64) ([]models.EnrolledStudent, error) {
	course, err := s.courseRepo.GetByID(ctx, courseID)
	if err != nil {
		return nil, err
	}

	if !canManageCourse(course.FacultyID, course.InternID, callerID) {
		return nil, apperrors.ErrPermissionDenied
	}

	return s.enrollmentRepo.EnrolledStudents(ctx, courseID)
}

// ClaimInternship assigns the calling intern to a course and enrolls them as
// an approved observer. Claiming a course you already hold is a no-op.
func (s *courseServiceImpl) ClaimInternship(ctx context.Context, internID, courseID int64) error {
	course, err := s.courseRepo.GetByID(ctx, courseID)
	if err != nil {
		return err
	}

	if course.InternID != nil {
		if *course.InternID == internID {
			return nil
		}
		return apperrors.ErrInternSlotTaken
	}

	if err := s.courseRepo.AssignIntern(ctx, courseID, internID); err != nil {
		return err
	}

	logger.Info().
		Int64("courseId", courseID).
		Int64("internId", internID).
		Msg("Intern assigned to course")

	return nil
}

// canManageCourse reports whether the caller owns the course or is its
// assigned intern.
func canManageCourse(facultyID int64, internID *int64, callerID int64) bool {
	if callerID == facultyID {
		return true
	}
	return internID != nil && *internID == callerID
}
