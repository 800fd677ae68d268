package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ozgur/rollcall/internal/app/models"
	"github.com/ozgur/rollcall/internal/pkg/apperrors"
)

// SessionRepository handles database operations for class sessions
type SessionRepository struct {
	db *pgxpool.Pool
}

// NewSessionRepository creates a new SessionRepository
func NewSessionRepository(db *pgxpool.Pool) *SessionRepository {
	return &SessionRepository{db: db}
}

// Create inserts a new session and returns its ID
func (r *SessionRepository) Create(ctx context.Context, session *models.Session) (int64, error) {
	query := squirrel.Insert("sessions").
		Columns("course_id", "starts_at", "ends_at", "topic", "location", "attendance_code", "code_expires_at", "created_by").
		Values(session.CourseID, session.StartsAt, session.EndsAt, session.Topic, session.Location,
			session.AttendanceCode, session.CodeExpiresAt, session.CreatedBy).
		Suffix("RETURNING id").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return 0, fmt.Errorf("error building SQL: %w", err)
	}

	var id int64
	err = r.db.QueryRow(ctx, sql, args...).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("error executing query: %w", err)
	}

	return id, nil
}

// GetByID retrieves a session together with its course's ownership columns
func (r *SessionRepository) GetByID(ctx context.Context, id int64) (*models.SessionWithCourse, error) {
	query := r.withCourseQuery().Where("s.id = ?", id)
	return r.queryOne(ctx, query)
}

// GetByCode retrieves the session a six-digit attendance code belongs to.
// Codes are unique among unexpired sessions, so at most one redeemable row
// matches; ties on recycled codes go to the newest session.
func (r *SessionRepository) GetByCode(ctx context.Context, code string) (*models.SessionWithCourse, error) {
	query := r.withCourseQuery().
		Where("s.attendance_code = ?", code).
		OrderBy("s.created_at DESC").
		Limit(1)

	session, err := r.queryOne(ctx, query)
	if err != nil {
		if errors.Is(err, apperrors.ErrSessionNotFound) {
			return nil, apperrors.ErrAttendanceCodeInvalid
		}
		return nil, err
	}

	return session, nil
}

// ListByCourse retrieves all sessions of a course, newest first, with the
// number of attendance rows recorded against each
func (r *SessionRepository) ListByCourse(ctx context.Context, courseID int64) ([]models.SessionOverview, error) {
	query := squirrel.Select(
		"s.id", "s.course_id", "s.starts_at", "s.ends_at", "s.topic", "s.location",
		"s.attendance_code", "s.code_expires_at", "s.created_by", "s.created_at",
		"c.course_code", "c.course_name",
		"(SELECT COUNT(*) FROM attendance a WHERE a.session_id = s.id) AS attendance_count").
		From("sessions s").
		Join("courses c ON c.id = s.course_id").
		Where("s.course_id = ?", courseID).
		OrderBy("s.starts_at DESC").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var sessions []models.SessionOverview
	for rows.Next() {
		var s models.SessionOverview
		err := rows.Scan(
			&s.ID,
			&s.CourseID,
			&s.StartsAt,
			&s.EndsAt,
			&s.Topic,
			&s.Location,
			&s.AttendanceCode,
			&s.CodeExpiresAt,
			&s.CreatedBy,
			&s.CreatedAt,
			&s.CourseCode,
			&s.CourseName,
			&s.AttendanceCount,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		sessions = append(sessions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return sessions, nil
}

func (r *SessionRepository) withCourseQuery() squirrel.SelectBuilder {
	return squirrel.Select(
		"s.id", "s.course_id", "s.starts_at", "s.ends_at", "s.topic", "s.location",
		"s.attendance_code", "s.code_expires_at", "s.created_by", "s.created_at",
		"c.course_code", "c.course_name", "c.faculty_id", "c.intern_id").
		From("sessions s").
		Join("courses c ON c.id = s.course_id").
		PlaceholderFormat(squirrel.Dollar)
}

func (r *SessionRepository) queryOne(ctx context.Context, query squirrel.SelectBuilder) (*models.SessionWithCourse, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	var s models.SessionWithCourse
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&s.ID,
		&s.CourseID,
		&s.StartsAt,
		&s.EndsAt,
		&s.Topic,
		&s.Location,
		&s.AttendanceCode,
		&s.CodeExpiresAt,
		&s.CreatedBy,
		&s.CreatedAt,
		&s.CourseCode,
		&s.CourseName,
		&s.FacultyID,
		&s.InternID,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrSessionNotFound
		}
		return nil, fmt.Errorf("error executing query: %w", err)
	}

	return &s, nil
}
