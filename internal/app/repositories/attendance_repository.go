package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ozgur/rollcall/internal/app/models"
)

// AttendanceRepository handles database operations for attendance records
type AttendanceRepository struct {
	db *pgxpool.Pool
}

// NewAttendanceRepository creates a new AttendanceRepository
func NewAttendanceRepository(db *pgxpool.Pool) *AttendanceRepository {
	return &AttendanceRepository{db: db}
}

// InsertIfAbsent records a code check-in unless the student already has a row
// for the session. It returns the existing row and inserted=false when one is
// there, so a repeated redemption never overwrites the first result.
func (r *AttendanceRepository) InsertIfAbsent(ctx context.Context, a *models.Attendance) (*models.Attendance, bool, error) {
	query := squirrel.Insert("attendance").
		Columns("session_id", "student_id", "status", "check_in_method", "checked_in_at", "remarks").
		Values(a.SessionID, a.StudentID, a.Status, a.CheckInMethod, a.CheckedInAt, a.Remarks).
		Suffix("ON CONFLICT (session_id, student_id) DO NOTHING RETURNING id").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, false, fmt.Errorf("error building SQL: %w", err)
	}

	var id int64
	err = r.db.QueryRow(ctx, sql, args...).Scan(&id)
	if err == nil {
		inserted := *a
		inserted.ID = id
		return &inserted, true, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, false, fmt.Errorf("error executing query: %w", err)
	}

	// Conflict: the row already existed, fetch it.
	existing, err := r.GetBySessionStudent(ctx, a.SessionID, a.StudentID)
	if err != nil {
		return nil, false, err
	}
	if existing == nil {
		return nil, false, fmt.Errorf("attendance row vanished after conflict for session %d student %d", a.SessionID, a.StudentID)
	}

	return existing, false, nil
}

// GetBySessionStudent retrieves a student's attendance row for a session,
// or nil when none exists
func (r *AttendanceRepository) GetBySessionStudent(ctx context.Context, sessionID, studentID int64) (*models.Attendance, error) {
	query := squirrel.Select("id", "session_id", "student_id", "status", "check_in_method", "checked_in_at", "remarks", "created_at", "updated_at").
		From("attendance").
		Where("session_id = ?", sessionID).
		Where("student_id = ?", studentID).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	var a models.Attendance
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&a.ID,
		&a.SessionID,
		&a.StudentID,
		&a.Status,
		&a.CheckInMethod,
		&a.CheckedInAt,
		&a.Remarks,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error executing query: %w", err)
	}

	return &a, nil
}

// UpsertManual writes a manual attendance mark, replacing whatever row the
// student already has for the session
func (r *AttendanceRepository) UpsertManual(ctx context.Context, a *models.Attendance) error {
	query := squirrel.Insert("attendance").
		Columns("session_id", "student_id", "status", "check_in_method", "checked_in_at", "remarks").
		Values(a.SessionID, a.StudentID, a.Status, a.CheckInMethod, a.CheckedInAt, a.Remarks).
		Suffix(`ON CONFLICT (session_id, student_id) DO UPDATE SET
			status = EXCLUDED.status,
			check_in_method = EXCLUDED.check_in_method,
			checked_in_at = EXCLUDED.checked_in_at,
			remarks = EXCLUDED.remarks,
			updated_at = NOW()`).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("error executing query: %w", err)
	}

	return nil
}

// RosterBySession retrieves all attendance rows of a session joined with the
// students they belong to
func (r *AttendanceRepository) RosterBySession(ctx context.Context, sessionID int64) ([]models.AttendanceRecord, error) {
	query := squirrel.Select(
		"a.id", "a.session_id", "a.student_id", "a.status", "a.check_in_method",
		"a.checked_in_at", "a.remarks", "a.created_at", "a.updated_at",
		"u.first_name", "u.last_name", "u.email").
		From("attendance a").
		Join("users u ON u.id = a.student_id").
		Where("a.session_id = ?", sessionID).
		OrderBy("u.last_name", "u.first_name").
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

	var records []models.AttendanceRecord
	for rows.Next() {
		var rec models.AttendanceRecord
		err := rows.Scan(
			&rec.ID,
			&rec.SessionID,
			&rec.StudentID,
			&rec.Status,
			&rec.CheckInMethod,
			&rec.CheckedInAt,
			&rec.Remarks,
			&rec.CreatedAt,
			&rec.UpdatedAt,
			&rec.FirstName,
			&rec.LastName,
			&rec.Email,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return records, nil
}

// CountsForStudent aggregates one student's attendance across all sessions of
// a course. TotalSessions counts every session of the course, marked or not.
func (r *AttendanceRepository) CountsForStudent(ctx context.Context, courseID, studentID int64) (*models.AttendanceCounts, error) {
	query := squirrel.Select(
		"COUNT(*) AS total_sessions",
		"COUNT(a.id) AS marked_count",
		"COUNT(a.id) FILTER (WHERE a.status = 'present') AS present_count",
		"COUNT(a.id) FILTER (WHERE a.status = 'late') AS late_count",
		"COUNT(a.id) FILTER (WHERE a.status = 'absent') AS absent_count").
		From("sessions s").
		LeftJoin("attendance a ON a.session_id = s.id AND a.student_id = ?", studentID).
		Where("s.course_id = ?", courseID).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	var counts models.AttendanceCounts
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&counts.TotalSessions,
		&counts.MarkedCount,
		&counts.PresentCount,
		&counts.LateCount,
		&counts.AbsentCount,
	)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}

	return &counts, nil
}

// SessionsWithStatus retrieves every session of a course paired with the
// student's attendance, if any. A non-nil from/to bounds the sessions to
// those starting inside the half-open interval [from, to).
func (r *AttendanceRepository) SessionsWithStatus(ctx context.Context, courseID, studentID int64, from, to *time.Time) ([]models.SessionAttendance, error) {
	query := squirrel.Select(
		"s.id", "s.starts_at", "s.ends_at", "s.topic", "s.location",
		"a.status", "a.check_in_method", "a.checked_in_at").
		From("sessions s").
		LeftJoin("attendance a ON a.session_id = s.id AND a.student_id = ?", studentID).
		Where("s.course_id = ?", courseID).
		OrderBy("s.starts_at").
		PlaceholderFormat(squirrel.Dollar)

	if from != nil {
		query = query.Where("s.starts_at >= ?", *from)
	}
	if to != nil {
		query = query.Where("s.starts_at < ?", *to)
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var sessions []models.SessionAttendance
	for rows.Next() {
		var s models.SessionAttendance
		err := rows.Scan(
			&s.SessionID,
			&s.StartsAt,
			&s.EndsAt,
			&s.Topic,
			&s.Location,
			&s.Status,
			&s.CheckInMethod,
			&s.CheckedInAt,
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
