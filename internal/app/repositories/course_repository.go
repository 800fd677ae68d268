package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ozgur/rollcall/internal/app/models"
	"github.com/ozgur/rollcall/internal/db"
	"github.com/ozgur/rollcall/internal/pkg/apperrors"
	"github.com/ozgur/rollcall/internal/pkg/dberrors"
)

// courseSummaryColumns are the columns selected by every course listing query.
// The joins alias the owning faculty as f and the assigned intern as i.
var courseSummaryColumns = []string{
	"c.id", "c.course_code", "c.course_name", "c.description", "c.credit_hours",
	"c.semester", "c.faculty_id", "c.intern_id", "c.created_at",
	"f.first_name || ' ' || f.last_name AS faculty_name", "f.email AS faculty_email",
	"i.first_name || ' ' || i.last_name AS intern_name", "i.email AS intern_email",
	"(SELECT COUNT(*) FROM enrollments e2 WHERE e2.course_id = c.id AND e2.status = 'approved') AS enrolled_count",
}

// CourseRepository handles database operations for courses
type CourseRepository struct {
	db *pgxpool.Pool
}

// NewCourseRepository creates a new CourseRepository
func NewCourseRepository(db *pgxpool.Pool) *CourseRepository {
	return &CourseRepository{db: db}
}

// Create inserts a new course and returns its ID
func (r *CourseRepository) Create(ctx context.Context, course *models.Course) (int64, error) {
	query := squirrel.Insert("courses").
		Columns("course_code", "course_name", "description", "credit_hours", "semester", "faculty_id").
		Values(course.CourseCode, course.CourseName, course.Description, course.CreditHours, course.Semester, course.FacultyID).
		Suffix("RETURNING id").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return 0, fmt.Errorf("error building SQL: %w", err)
	}

	var id int64
	err = r.db.QueryRow(ctx, sql, args...).Scan(&id)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "courses_course_code_key") {
			return 0, apperrors.ErrCourseCodeAlreadyExists
		}
		return 0, fmt.Errorf("error executing query: %w", err)
	}

	return id, nil
}

// GetByID retrieves a course by ID
func (r *CourseRepository) GetByID(ctx context.Context, id int64) (*models.Course, error) {
	query := squirrel.Select("id", "course_code", "course_name", "description", "credit_hours", "semester", "faculty_id", "intern_id", "created_at").
		From("courses").
		Where("id = ?", id).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	var course models.Course
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&course.ID,
		&course.CourseCode,
		&course.CourseName,
		&course.Description,
		&course.CreditHours,
		&course.Semester,
		&course.FacultyID,
		&course.InternID,
		&course.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCourseNotFound
		}
		return nil, fmt.Errorf("error executing query: %w", err)
	}

	return &course, nil
}

// ListByFaculty retrieves all courses owned by a faculty member
func (r *CourseRepository) ListByFaculty(ctx context.Context, facultyID int64) ([]models.CourseSummary, error) {
	query := r.summaryQuery().
		Where("c.faculty_id = ?", facultyID).
		OrderBy("c.course_code")

	return r.querySummaries(ctx, query)
}

// ListByIntern retrieves all courses a faculty intern is assigned to
func (r *CourseRepository) ListByIntern(ctx context.Context, internID int64) ([]models.CourseSummary, error) {
	query := r.summaryQuery().
		Where("c.intern_id = ?", internID).
		OrderBy("c.course_code")

	return r.querySummaries(ctx, query)
}

// ListEnrolledForStudent retrieves the courses a student has an enrollment
// row with the given status in.
func (r *CourseRepository) ListEnrolledForStudent(ctx context.Context, studentID int64, status models.EnrollmentStatus) ([]models.CourseSummary, error) {
	query := r.summaryQuery().
		Join("enrollments e ON e.course_id = c.id").
		Where("e.student_id = ?", studentID).
		Where("e.status = ?", status).
		OrderBy("c.course_code")

	return r.querySummaries(ctx, query)
}

// ListAvailableForStudent retrieves the courses a student has no enrollment
// row in. Rejected enrollments keep the course out of this list.
func (r *CourseRepository) ListAvailableForStudent(ctx context.Context, studentID int64) ([]models.CourseSummary, error) {
	query := r.summaryQuery().
		Where("NOT EXISTS (SELECT 1 FROM enrollments e WHERE e.course_id = c.id AND e.student_id = ?)", studentID).
		OrderBy("c.course_code")

	return r.querySummaries(ctx, query)
}

// ListWithoutIntern retrieves courses with no assigned intern
func (r *CourseRepository) ListWithoutIntern(ctx context.Context) ([]models.CourseSummary, error) {
	query := r.summaryQuery().
		Where("c.intern_id IS NULL").
		OrderBy("c.course_code")

	return r.querySummaries(ctx, query)
}

// AssignIntern sets the course's intern and enrolls the intern as an approved
// observer, atomically. A course can have at most one intern; a second
// assignment attempt fails with ErrInternSlotTaken.
func (r *CourseRepository) AssignIntern(ctx context.Context, courseID, internID int64) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		update := squirrel.Update("courses").
			Set("intern_id", internID).
			Where("id = ?", courseID).
			Where("intern_id IS NULL").
			PlaceholderFormat(squirrel.Dollar)

		sql, args, err := update.ToSql()
		if err != nil {
			return fmt.Errorf("error building SQL: %w", err)
		}

		tag, err := tx.Exec(ctx, sql, args...)
		if err != nil {
			return fmt.Errorf("error executing query: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return apperrors.ErrInternSlotTaken
		}

		insert := squirrel.Insert("enrollments").
			Columns("student_id", "course_id", "enrollment_type", "status", "reviewed_at").
			Values(internID, courseID, models.EnrollObserver, models.EnrollmentApproved, squirrel.Expr("NOW()")).
			Suffix("ON CONFLICT (student_id, course_id) DO NOTHING").
			PlaceholderFormat(squirrel.Dollar)

		sql, args, err = insert.ToSql()
		if err != nil {
			return fmt.Errorf("error building SQL: %w", err)
		}

		if _, err := tx.Exec(ctx, sql, args...); err != nil {
			return fmt.Errorf("error executing query: %w", err)
		}

		return nil
	})
}

func (r *CourseRepository) summaryQuery() squirrel.SelectBuilder {
	return squirrel.Select(courseSummaryColumns...).
		From("courses c").
		Join("users f ON f.id = c.faculty_id").
		LeftJoin("users i ON i.id = c.intern_id").
		PlaceholderFormat(squirrel.Dollar)
}

func (r *CourseRepository) querySummaries(ctx context.Context, query squirrel.SelectBuilder) ([]models.CourseSummary, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var courses []models.CourseSummary
	for rows.Next() {
		var c models.CourseSummary
		err := rows.Scan(
			&c.ID,
			&c.CourseCode,
			&c.CourseName,
			&c.Description,
			&c.CreditHours,
			&c.Semester,
			&c.FacultyID,
			&c.InternID,
			&c.CreatedAt,
			&c.FacultyName,
			&c.FacultyEmail,
			&c.InternName,
			&c.InternEmail,
			&c.EnrolledCount,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		courses = append(courses, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return courses, nil
}
