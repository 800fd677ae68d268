package services

import (
	"context"
	"math"
	"time"

	"github.com/ozgur/rollcall/internal/app/models"
	"github.com/ozgur/rollcall/internal/app/models/dto"
	"github.com/ozgur/rollcall/internal/pkg/apperrors"
	"github.com/ozgur/rollcall/internal/pkg/helpers"
)

// ReportService defines the interface for attendance reporting
type ReportService interface {
	OverallReport(ctx context.Context, callerID int64, role models.RoleType, courseID int64, studentID *int64) (*dto.OverallReportResponse, error)
	DailyReport(ctx context.Context, callerID int64, role models.RoleType, courseID int64, date string, studentID *int64) (*dto.DailyReportResponse, error)
}

// reportServiceImpl implements ReportService
type reportServiceImpl struct {
	attendanceRepo attendanceRepository
	courseRepo     courseRepository
	enrollmentRepo enrollmentRepository
	nowFn          func() time.Time
}

// NewReportService creates a new ReportService
func NewReportService(attendanceRepo attendanceRepository, courseRepo courseRepository, enrollmentRepo enrollmentRepository) ReportService {
	return &reportServiceImpl{
		attendanceRepo: attendanceRepo,
		courseRepo:     courseRepo,
		enrollmentRepo: enrollmentRepo,
		nowFn:          time.Now,
	}
}

// OverallReport aggregates one student's attendance across every session of
// a course. Reports are recomputed on every call, nothing is cached.
func (s *reportServiceImpl) OverallReport(ctx context.Context, callerID int64, role models.RoleType, courseID int64, studentID *int64) (*dto.OverallReportResponse, error) {
	subjectID, err := s.resolveSubject(ctx, callerID, role, courseID, studentID)
	if err != nil {
		return nil, err
	}

	counts, err := s.attendanceRepo.CountsForStudent(ctx, courseID, subjectID)
	if err != nil {
		return nil, err
	}

	sessions, err := s.attendanceRepo.SessionsWithStatus(ctx, courseID, subjectID, nil, nil)
	if err != nil {
		return nil, err
	}

	attended := counts.PresentCount + counts.LateCount
	summary := dto.ReportSummary{
		TotalSessions:    counts.TotalSessions,
		AttendedSessions: attended,
		PresentCount:     counts.PresentCount,
		LateCount:        counts.LateCount,
		AbsentCount:      counts.AbsentCount,
	}

	// No sessions means no rate, not a rate of zero.
	if counts.TotalSessions > 0 {
		pct := math.Round(float64(attended)/float64(counts.TotalSessions)*100*100) / 100
		summary.AttendancePercentage = &pct
	}

	return &dto.OverallReportResponse{
		Type:      "overall",
		StudentID: subjectID,
		Summary:   summary,
		Sessions:  sessions,
		Count:     len(sessions),
	}, nil
}

// DailyReport lists a student's per-session statuses for one calendar date,
// defaulting to today
func (s *reportServiceImpl) DailyReport(ctx context.Context, callerID int64, role models.RoleType, courseID int64, date string, studentID *int64) (*dto.DailyReportResponse, error) {
	subjectID, err := s.resolveSubject(ctx, callerID, role, courseID, studentID)
	if err != nil {
		return nil, err
	}

	day := s.nowFn()
	if date != "" {
		day, err = time.ParseInLocation(helpers.DateLayout, date, time.Local)
		if err != nil {
			return nil, apperrors.NewBadRequestError("invalid report date")
		}
	}
	from, to := helpers.DayBounds(day)

	sessions, err := s.attendanceRepo.SessionsWithStatus(ctx, courseID, subjectID, &from, &to)
	if err != nil {
		return nil, err
	}

	return &dto.DailyReportResponse{
		Type:      "daily",
		Date:      helpers.FormatDate(day),
		StudentID: subjectID,
		Sessions:  sessions,
		Count:     len(sessions),
	}, nil
}

// resolveSubject decides whose record the report covers and enforces access:
// students read their own record only, the owning faculty and assigned
// intern may read any enrolled student.
func (s *reportServiceImpl) resolveSubject(ctx context.Context, callerID int64, role models.RoleType, courseID int64, studentID *int64) (int64, error) {
	course, err := s.courseRepo.GetByID(ctx, courseID)
	if err != nil {
		return 0, err
	}

	if role == models.RoleStudent {
		if studentID != nil && *studentID != callerID {
			return 0, apperrors.ErrPermissionDenied
		}

		approved, err := s.enrollmentRepo.HasApproved(ctx, callerID, courseID)
		if err != nil {
			return 0, err
		}
		if !approved {
			return 0, apperrors.ErrNotEnrolled
		}

		return callerID, nil
	}

	if !canManageCourse(course.FacultyID, course.InternID, callerID) {
		return 0, apperrors.ErrPermissionDenied
	}

	if studentID == nil {
		return 0, apperrors.NewBadRequestError("studentId is required for staff reports")
	}

	approved, err := s.enrollmentRepo.HasApproved(ctx, *studentID, courseID)
	if err != nil {
		return 0, err
	}
	if !approved {
		return 0, apperrors.ErrNotEnrolled
	}

	return *studentID, nil
}
