package services

import (
	"context"
	"fmt"
	"time"

	"github.com/ozgur/rollcall/internal/app/models"
	"github.com/ozgur/rollcall/internal/app/models/dto"
	"github.com/ozgur/rollcall/internal/metrics"
	"github.com/ozgur/rollcall/internal/pkg/apperrors"
	"github.com/ozgur/rollcall/internal/pkg/helpers"
	"github.com/ozgur/rollcall/internal/pkg/logger"
)

// lateThreshold is the grace window after the scheduled start; a check-in
// strictly after it is recorded as late.
const lateThreshold = 15 * time.Minute

// AttendanceService defines the interface for attendance operations
type AttendanceService interface {
	CheckInByCode(ctx context.Context, studentID int64, req *dto.CheckInRequest) (*dto.CheckInResponse, error)
	MarkAttendance(ctx context.Context, callerID int64, req *dto.MarkAttendanceRequest) error
	SessionRoster(ctx context.Context, callerID, sessionID int64) ([]dto.AttendanceRecordResponse, error)
}

// attendanceServiceImpl implements AttendanceService
type attendanceServiceImpl struct {
	attendanceRepo attendanceRepository
	sessionRepo    sessionRepository
	enrollmentRepo enrollmentRepository
	nowFn          func() time.Time
}

// NewAttendanceService creates a new AttendanceService
func NewAttendanceService(attendanceRepo attendanceRepository, sessionRepo sessionRepository, enrollmentRepo enrollmentRepository) AttendanceService {
	return &attendanceServiceImpl{
		attendanceRepo: attendanceRepo,
		sessionRepo:    sessionRepo,
		enrollmentRepo: enrollmentRepo,
		nowFn:          time.Now,
	}
}

// CheckInByCode redeems an attendance code for the calling student. The
// checks run in a fixed order so each failure is distinct: unknown code,
// expired code, then missing enrollment. The first successful redemption
// freezes the row; redeeming again returns the recorded status unchanged.
func (s *attendanceServiceImpl) CheckInByCode(ctx context.Context, studentID int64, req *dto.CheckInRequest) (*dto.CheckInResponse, error) {
	session, err := s.sessionRepo.GetByCode(ctx, req.Code)
	if err != nil {
		metrics.CheckInFailures.WithLabelValues("unknown_code").Inc()
		return nil, err
	}

	now := s.nowFn()
	if session.CodeExpired(now) {
		metrics.CheckInFailures.WithLabelValues("expired_code").Inc()
		return nil, apperrors.ErrAttendanceCodeExpired
	}

	approved, err := s.enrollmentRepo.HasApproved(ctx, studentID, session.CourseID)
	if err != nil {
		return nil, err
	}
	if !approved {
		metrics.CheckInFailures.WithLabelValues("not_enrolled").Inc()
		return nil, apperrors.ErrNotEnrolled
	}

	status := models.AttendancePresent
	if now.After(session.StartsAt.Add(lateThreshold)) {
		status = models.AttendanceLate
	}

	checkedInAt := now
	record, inserted, err := s.attendanceRepo.InsertIfAbsent(ctx, &models.Attendance{
		SessionID:     session.ID,
		StudentID:     studentID,
		Status:        status,
		CheckInMethod: models.CheckInByCode,
		CheckedInAt:   &checkedInAt,
	})
	if err != nil {
		return nil, err
	}

	if inserted {
		metrics.CheckIns.WithLabelValues(string(models.CheckInByCode), string(record.Status)).Inc()
		logger.Info().
			Int64("sessionId", session.ID).
			Int64("studentId", studentID).
			Str("status", string(record.Status)).
			Msg("Student checked in")
	}

	return &dto.CheckInResponse{
		Status:           record.Status,
		Course:           fmt.Sprintf("%s - %s", session.CourseCode, session.CourseName),
		SessionDate:      helpers.FormatDate(session.StartsAt),
		AlreadyCheckedIn: !inserted,
	}, nil
}

// MarkAttendance writes a faculty-asserted status for a student, overwriting
// any existing row. The check-in time is kept only for present and late;
// absent rows carry none.
func (s *attendanceServiceImpl) MarkAttendance(ctx context.Context, callerID int64, req *dto.MarkAttendanceRequest) error {
	session, err := s.sessionRepo.GetByID(ctx, req.SessionID)
	if err != nil {
		return err
	}
	if !canManageCourse(session.FacultyID, session.InternID, callerID) {
		return apperrors.ErrPermissionDenied
	}

	approved, err := s.enrollmentRepo.HasApproved(ctx, req.StudentID, session.CourseID)
	if err != nil {
		return err
	}
	if !approved {
		return apperrors.ErrNotEnrolled
	}

	status := models.AttendanceStatus(req.Status)
	var checkedInAt *time.Time
	if status != models.AttendanceAbsent {
		now := s.nowFn()
		checkedInAt = &now
	}

	err = s.attendanceRepo.UpsertManual(ctx, &models.Attendance{
		SessionID:     req.SessionID,
		StudentID:     req.StudentID,
		Status:        status,
		CheckInMethod: models.CheckInManual,
		CheckedInAt:   checkedInAt,
		Remarks:       req.Remarks,
	})
	if err != nil {
		return err
	}

	metrics.CheckIns.WithLabelValues(string(models.CheckInManual), string(status)).Inc()
	logger.Info().
		Int64("sessionId", req.SessionID).
		Int64("studentId", req.StudentID).
		Int64("markedBy", callerID).
		Str("status", string(status)).
		Msg("Attendance marked manually")

	return nil
}

// SessionRoster returns every attendance row of a session with the student
// it belongs to, for the owning faculty or assigned intern
func (s *attendanceServiceImpl) SessionRoster(ctx context.Context, callerID, sessionID int64) ([]dto.AttendanceRecordResponse, error) {
	session, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !canManageCourse(session.FacultyID, session.InternID, callerID) {
		return nil, apperrors.ErrPermissionDenied
	}

	records, err := s.attendanceRepo.RosterBySession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.AttendanceRecordResponse, 0, len(records))
	for _, rec := range records {
		responses = append(responses, dto.AttendanceRecordResponse{
			AttendanceID:  rec.ID,
			StudentID:     rec.StudentID,
			FirstName:     rec.FirstName,
			LastName:      rec.LastName,
			Email:         rec.Email,
			Status:        rec.Status,
			CheckInMethod: rec.CheckInMethod,
			CheckedInAt:   rec.CheckedInAt,
			Remarks:       rec.Remarks,
		})
	}

	return responses, nil
}
