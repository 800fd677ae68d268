package services

import (
	"context"
	"errors"
	"testing"

	"github.com/ozgur/rollcall/internal/app/models"
	"github.com/ozgur/rollcall/internal/app/models/dto"
	"github.com/ozgur/rollcall/internal/pkg/apperrors"
)

func newEnrollmentFixture(t *testing.T) (EnrollmentService, *fakeEnrollmentRepo, *fakeCourseRepo) {
	t.Helper()
	enrollments := newFakeEnrollmentRepo()
	courses := newFakeCourseRepo()
	return NewEnrollmentService(enrollments, courses), enrollments, courses
}

func TestJoinCourseCreatesPendingRequest(t *testing.T) {
	svc, enrollments, courses := newEnrollmentFixture(t)
	course := courses.add(models.Course{CourseCode: "CS101", CourseName: "Intro", FacultyID: 1})

	id, err := svc.JoinCourse(context.Background(), 204, course.ID, &dto.JoinCourseRequest{})
	if err != nil {
		t.Fatalf("JoinCourse: %v", err)
	}

	row := enrollments.rows[id]
	if row.Status != models.EnrollmentPending {
		t.Errorf("status = %q, want pending", row.Status)
	}
	if row.EnrollmentType != models.EnrollRegular {
		t.Errorf("type = %q, want regular default", row.EnrollmentType)
	}
}

func TestJoinCourseBlockedByExistingRow(t *testing.T) {
	svc, enrollments, courses := newEnrollmentFixture(t)
	course := courses.add(models.Course{CourseCode: "CS101", CourseName: "Intro", FacultyID: 1})

	tests := []struct {
		name    string
		status  models.EnrollmentStatus
		wantErr error
	}{
		{"pending blocks", models.EnrollmentPending, apperrors.ErrEnrollmentPending},
		{"approved blocks", models.EnrollmentApproved, apperrors.ErrAlreadyEnrolled},
		{"rejected blocks for good", models.EnrollmentRejected, apperrors.ErrEnrollmentRejected},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			studentID := int64(300 + len(enrollments.rows))
			enrollments.add(models.Enrollment{StudentID: studentID, CourseID: course.ID, Status: tt.status})

			_, err := svc.JoinCourse(context.Background(), studentID, course.ID, &dto.JoinCourseRequest{})
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestJoinCourseUnknownCourse(t *testing.T) {
	svc, _, _ := newEnrollmentFixture(t)

	_, err := svc.JoinCourse(context.Background(), 204, 42, &dto.JoinCourseRequest{})
	if !errors.Is(err, apperrors.ErrCourseNotFound) {
		t.Errorf("err = %v, want ErrCourseNotFound", err)
	}
}

func TestReviewEnrollmentApprove(t *testing.T) {
	svc, enrollments, courses := newEnrollmentFixture(t)
	course := courses.add(models.Course{CourseCode: "CS101", CourseName: "Intro", FacultyID: 1})
	row := enrollments.add(models.Enrollment{StudentID: 204, CourseID: course.ID, Status: models.EnrollmentPending})

	err := svc.ReviewEnrollment(context.Background(), 1, row.ID, &dto.ReviewEnrollmentRequest{Action: "approve"})
	if err != nil {
		t.Fatalf("ReviewEnrollment: %v", err)
	}
	if enrollments.rows[row.ID].Status != models.EnrollmentApproved {
		t.Errorf("status = %q, want approved", enrollments.rows[row.ID].Status)
	}
	if enrollments.rows[row.ID].ReviewedAt == nil {
		t.Error("review should stamp reviewedAt")
	}
}

func TestReviewEnrollmentReject(t *testing.T) {
	svc, enrollments, courses := newEnrollmentFixture(t)
	course := courses.add(models.Course{CourseCode: "CS101", CourseName: "Intro", FacultyID: 1})
	row := enrollments.add(models.Enrollment{StudentID: 204, CourseID: course.ID, Status: models.EnrollmentPending})

	err := svc.ReviewEnrollment(context.Background(), 1, row.ID, &dto.ReviewEnrollmentRequest{Action: "reject"})
	if err != nil {
		t.Fatalf("ReviewEnrollment: %v", err)
	}
	if enrollments.rows[row.ID].Status != models.EnrollmentRejected {
		t.Errorf("status = %q, want rejected", enrollments.rows[row.ID].Status)
	}
}

func TestReviewEnrollmentOnlyCourseOwner(t *testing.T) {
	svc, enrollments, courses := newEnrollmentFixture(t)
	course := courses.add(models.Course{CourseCode: "CS101", CourseName: "Intro", FacultyID: 1})
	row := enrollments.add(models.Enrollment{StudentID: 204, CourseID: course.ID, Status: models.EnrollmentPending})

	err := svc.ReviewEnrollment(context.Background(), 2, row.ID, &dto.ReviewEnrollmentRequest{Action: "approve"})
	if !errors.Is(err, apperrors.ErrPermissionDenied) {
		t.Errorf("err = %v, want ErrPermissionDenied", err)
	}
}

func TestReviewEnrollmentDecisionIsFinal(t *testing.T) {
	svc, enrollments, courses := newEnrollmentFixture(t)
	course := courses.add(models.Course{CourseCode: "CS101", CourseName: "Intro", FacultyID: 1})
	row := enrollments.add(models.Enrollment{StudentID: 204, CourseID: course.ID, Status: models.EnrollmentApproved})

	err := svc.ReviewEnrollment(context.Background(), 1, row.ID, &dto.ReviewEnrollmentRequest{Action: "reject"})
	if !errors.Is(err, apperrors.ErrConflict) {
		t.Errorf("err = %v, want ErrConflict for re-review", err)
	}
	if enrollments.rows[row.ID].Status != models.EnrollmentApproved {
		t.Error("decided enrollment must not change")
	}
}
