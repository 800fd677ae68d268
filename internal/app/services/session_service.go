package services

import (
	"context"
	"time"

	"github.com/ozgur/rollcall/internal/app/models"
	"github.com/ozgur/rollcall/internal/app/models/dto"
	"github.com/ozgur/rollcall/internal/metrics"
	"github.com/ozgur/rollcall/internal/pkg/apperrors"
	"github.com/ozgur/rollcall/internal/pkg/attendancecode"
	"github.com/ozgur/rollcall/internal/pkg/helpers"
	"github.com/ozgur/rollcall/internal/pkg/logger"
)

const (
	// codeValidityAfterEnd is how long past the session's scheduled end the
	// attendance code stays redeemable.
	codeValidityAfterEnd = 2 * time.Hour

	// maxCodeAttempts bounds how many random draws are tried when a freshly
	// generated code is already held by another active session.
	maxCodeAttempts = 5
)

// SessionService defines the interface for class session operations
type SessionService interface {
	CreateSession(ctx context.Context, callerID int64, req *dto.CreateSessionRequest) (*dto.CreateSessionResponse, error)
	ListSessions(ctx context.Context, callerID int64, role models.RoleType, courseID int64) ([]dto.SessionResponse, error)
}

// sessionServiceImpl implements SessionService
type sessionServiceImpl struct {
	sessionRepo    sessionRepository
	courseRepo     courseRepository
	enrollmentRepo enrollmentRepository
	codes          codeRegistry
	nowFn          func() time.Time
}

// NewSessionService creates a new SessionService
func NewSessionService(sessionRepo sessionRepository, courseRepo courseRepository, enrollmentRepo enrollmentRepository, codes codeRegistry) SessionService {
	return &sessionServiceImpl{
		sessionRepo:    sessionRepo,
		courseRepo:     courseRepo,
		enrollmentRepo: enrollmentRepo,
		codes:          codes,
		nowFn:          time.Now,
	}
}

// CreateSession schedules a session and issues its attendance code. The code
// expires two hours after the scheduled end; the expiry is computed here once
// and never recomputed.
func (s *sessionServiceImpl) CreateSession(ctx context.Context, callerID int64, req *dto.CreateSessionRequest) (*dto.CreateSessionResponse, error) {
	course, err := s.courseRepo.GetByID(ctx, req.CourseID)
	if err != nil {
		return nil, err
	}
	if !canManageCourse(course.FacultyID, course.InternID, callerID) {
		return nil, apperrors.ErrPermissionDenied
	}

	startsAt, err := helpers.CombineDateTime(req.Date, req.StartTime)
	if err != nil {
		return nil, apperrors.NewBadRequestError("invalid session date or start time")
	}
	endsAt, err := helpers.CombineDateTime(req.Date, req.EndTime)
	if err != nil {
		return nil, apperrors.NewBadRequestError("invalid session end time")
	}
	if !endsAt.After(startsAt) {
		return nil, apperrors.NewBadRequestError("session must end after it starts")
	}

	expiresAt := endsAt.Add(codeValidityAfterEnd)

	code, err := s.reserveCode(ctx, expiresAt)
	if err != nil {
		return nil, err
	}

	session := &models.Session{
		CourseID:       req.CourseID,
		StartsAt:       startsAt,
		EndsAt:         endsAt,
		Topic:          req.Topic,
		Location:       req.Location,
		AttendanceCode: code,
		CodeExpiresAt:  expiresAt,
		CreatedBy:      callerID,
	}

	id, err := s.sessionRepo.Create(ctx, session)
	if err != nil {
		// Free the reservation so the code can be issued again.
		if releaseErr := s.codes.Release(ctx, code); releaseErr != nil {
			logger.Warn().Err(releaseErr).Str("code", code).Msg("Failed to release attendance code")
		}
		return nil, err
	}

	metrics.SessionsCreated.Inc()
	logger.Info().
		Int64("sessionId", id).
		Int64("courseId", req.CourseID).
		Time("codeExpiresAt", expiresAt).
		Msg("Session created")

	return &dto.CreateSessionResponse{
		SessionID:      id,
		AttendanceCode: code,
		CodeExpiresAt:  expiresAt,
	}, nil
}

// reserveCode draws random six-digit codes until one is free among currently
// active sessions, bounded by maxCodeAttempts.
func (s *sessionServiceImpl) reserveCode(ctx context.Context, expiresAt time.Time) (string, error) {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		ttl = time.Minute
	}

	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		code, err := attendancecode.New()
		if err != nil {
			return "", err
		}

		ok, err := s.codes.Reserve(ctx, code, ttl)
		if err != nil {
			return "", err
		}
		if ok {
			return code, nil
		}

		metrics.CodeCollisions.Inc()
		logger.Debug().Int("attempt", attempt+1).Msg("Attendance code collision, retrying")
	}

	return "", apperrors.ErrCodeReservationFailed
}

// ListSessions returns the sessions of a course, newest first. The owning
// faculty, the assigned intern and approved students may read them; students
// see the attendance code only while it is still redeemable.
func (s *sessionServiceImpl) ListSessions(ctx context.Context, callerID int64, role models.RoleType, courseID int64) ([]dto.SessionResponse, error) {
	course, err := s.courseRepo.GetByID(ctx, courseID)
	if err != nil {
		return nil, err
	}

	isStaff := canManageCourse(course.FacultyID, course.InternID, callerID)
	if !isStaff {
		approved, err := s.enrollmentRepo.HasApproved(ctx, callerID, courseID)
		if err != nil {
			return nil, err
		}
		if !approved {
			return nil, apperrors.ErrNotEnrolled
		}
	}

	sessions, err := s.sessionRepo.ListByCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}

	now := s.nowFn()
	responses := make([]dto.SessionResponse, 0, len(sessions))
	for _, sess := range sessions {
		resp := dto.SessionResponse{
			ID:              sess.ID,
			CourseID:        sess.CourseID,
			CourseCode:      sess.CourseCode,
			CourseName:      sess.CourseName,
			Date:            helpers.FormatDate(sess.StartsAt),
			StartTime:       helpers.FormatClock(sess.StartsAt),
			EndTime:         helpers.FormatClock(sess.EndsAt),
			Topic:           sess.Topic,
			Location:        sess.Location,
			CodeExpiresAt:   sess.CodeExpiresAt,
			AttendanceCount: sess.AttendanceCount,
		}

		if isStaff || !sess.CodeExpired(now) {
			code := sess.AttendanceCode
			resp.AttendanceCode = &code
		}

		responses = append(responses, resp)
	}

	return responses, nil
}
