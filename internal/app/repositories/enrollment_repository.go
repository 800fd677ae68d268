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
	"github.com/ozgur/rollcall/internal/pkg/dberrors"
)

// EnrollmentRepository handles database operations for enrollments
type EnrollmentRepository struct {
	db *pgxpool.Pool
}

// NewEnrollmentRepository creates a new EnrollmentRepository
func NewEnrollmentRepository(db *pgxpool.Pool) *EnrollmentRepository {
	return &EnrollmentRepository{db: db}
}

// GetByID retrieves an enrollment by ID
func (r *EnrollmentRepository) GetByID(ctx context.Context, id int64) (*models.Enrollment, error) {
	query := squirrel.Select("id", "student_id", "course_id", "enrollment_type", "status", "requested_at", "reviewed_at").
		From("enrollments").
		Where("id = ?", id).
		PlaceholderFormat(squirrel.Dollar)

	return r.queryOne(ctx, query)
}

// GetByStudentCourse retrieves a student's enrollment row for a course
func (r *EnrollmentRepository) GetByStudentCourse(ctx context.Context, studentID, courseID int64) (*models.Enrollment, error) {
	query := squirrel.Select("id", "student_id", "course_id", "enrollment_type", "status", "requested_at", "reviewed_at").
		From("enrollments").
		Where("student_id = ?", studentID).
		Where("course_id = ?", courseID).
		PlaceholderFormat(squirrel.Dollar)

	return r.queryOne(ctx, query)
}

// CreateRequest inserts a pending enrollment request and returns its ID
func (r *EnrollmentRepository) CreateRequest(ctx context.Context, studentID, courseID int64, enrollmentType models.EnrollmentType) (int64, error) {
	query := squirrel.Insert("enrollments").
		Columns("student_id", "course_id", "enrollment_type", "status").
		Values(studentID, courseID, enrollmentType, models.EnrollmentPending).
		Suffix("RETURNING id").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return 0, fmt.Errorf("error building SQL: %w", err)
	}

	var id int64
	err = r.db.QueryRow(ctx, sql, args...).Scan(&id)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "enrollments_student_course_key") {
			return 0, apperrors.ErrAlreadyEnrolled
		}
		return 0, fmt.Errorf("error executing query: %w", err)
	}

	return id, nil
}

// HasApproved reports whether the student has an approved enrollment in the course
func (r *EnrollmentRepository) HasApproved(ctx context.Context, studentID, courseID int64) (bool, error) {
	query := squirrel.Select("1").
		From("enrollments").
		Where("student_id = ?", studentID).
		Where("course_id = ?", courseID).
		Where("status = ?", models.EnrollmentApproved).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return false, fmt.Errorf("error building SQL: %w", err)
	}

	var one int
	err = r.db.QueryRow(ctx, sql, args...).Scan(&one)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("error executing query: %w", err)
	}

	return true, nil
}

// PendingForFaculty retrieves pending enrollment requests across all courses
// owned by a faculty member
func (r *EnrollmentRepository) PendingForFaculty(ctx context.Context, facultyID int64) ([]models.EnrollmentRequest, error) {
	query := squirrel.Select(
		"e.id", "e.student_id", "e.course_id", "e.enrollment_type", "e.status", "e.requested_at", "e.reviewed_at",
		"c.course_code", "c.course_name",
		"u.first_name || ' ' || u.last_name AS student_name", "u.email AS student_email").
		From("enrollments e").
		Join("courses c ON c.id = e.course_id").
		Join("users u ON u.id = e.student_id").
		Where("c.faculty_id = ?", facultyID).
		Where("e.status = ?", models.EnrollmentPending).
		OrderBy("e.requested_at").
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

	var requests []models.EnrollmentRequest
	for rows.Next() {
		var req models.EnrollmentRequest
		err := rows.Scan(
			&req.ID,
			&req.StudentID,
			&req.CourseID,
			&req.EnrollmentType,
			&req.Status,
			&req.RequestedAt,
			&req.ReviewedAt,
			&req.CourseCode,
			&req.CourseName,
			&req.StudentName,
			&req.StudentEmail,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		requests = append(requests, req)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return requests, nil
}

// UpdateStatus moves a pending enrollment to a decided status. The guard on
// the current status makes the pending -> decided transition one-way.
func (r *EnrollmentRepository) UpdateStatus(ctx context.Context, id int64, status models.EnrollmentStatus) error {
	query := squirrel.Update("enrollments").
		Set("status", status).
		Set("reviewed_at", squirrel.Expr("NOW()")).
		Where("id = ?", id).
		Where("status = ?", models.EnrollmentPending).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error executing query: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrEnrollmentNotFound
	}

	return nil
}

// EnrolledStudents retrieves the approved roster of a course
func (r *EnrollmentRepository) EnrolledStudents(ctx context.Context, courseID int64) ([]models.EnrolledStudent, error) {
	query := squirrel.Select("u.id", "u.first_name", "u.last_name", "u.email", "e.enrollment_type", "e.requested_at").
		From("enrollments e").
		Join("users u ON u.id = e.student_id").
		Where("e.course_id = ?", courseID).
		Where("e.status = ?", models.EnrollmentApproved).
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

	var students []models.EnrolledStudent
	for rows.Next() {
		var s models.EnrolledStudent
		err := rows.Scan(
			&s.StudentID,
			&s.FirstName,
			&s.LastName,
			&s.Email,
			&s.EnrollmentType,
			&s.RequestedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		students = append(students, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return students, nil
}

func (r *EnrollmentRepository) queryOne(ctx context.Context, query squirrel.SelectBuilder) (*models.Enrollment, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	var e models.Enrollment
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&e.ID,
		&e.StudentID,
		&e.CourseID,
		&e.EnrollmentType,
		&e.Status,
		&e.RequestedAt,
		&e.ReviewedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrEnrollmentNotFound
		}
		return nil, fmt.Errorf("error executing query: %w", err)
	}

	return &e, nil
}
