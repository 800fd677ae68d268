package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ozgur/rollcall/internal/app/models"
	"github.com/ozgur/rollcall/internal/app/models/dto"
	"github.com/ozgur/rollcall/internal/pkg/apperrors"
)

func newSessionFixture(t *testing.T) (*sessionServiceImpl, *fakeSessionRepo, *fakeCourseRepo, *fakeEnrollmentRepo, *fakeCodeRegistry) {
	t.Helper()
	sessions := newFakeSessionRepo()
	courses := newFakeCourseRepo()
	enrollments := newFakeEnrollmentRepo()
	registry := newFakeCodeRegistry()
	svc := NewSessionService(sessions, courses, enrollments, registry).(*sessionServiceImpl)
	return svc, sessions, courses, enrollments, registry
}

func validCreateRequest(courseID int64) *dto.CreateSessionRequest {
	return &dto.CreateSessionRequest{
		CourseID:  courseID,
		Date:      "2026-09-14",
		StartTime: "09:00",
		EndTime:   "10:30",
	}
}

func TestCreateSessionComputesCodeExpiry(t *testing.T) {
	svc, sessions, courses, _, registry := newSessionFixture(t)
	course := courses.add(models.Course{CourseCode: "CS101", CourseName: "Intro", FacultyID: 1})

	resp, err := svc.CreateSession(context.Background(), 1, validCreateRequest(course.ID))
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}

	if len(resp.AttendanceCode) != 6 {
		t.Errorf("code %q should be six digits", resp.AttendanceCode)
	}

	wantExpiry := time.Date(2026, 9, 14, 12, 30, 0, 0, time.Local)
	if !resp.CodeExpiresAt.Equal(wantExpiry) {
		t.Errorf("expiry = %v, want end+2h = %v", resp.CodeExpiresAt, wantExpiry)
	}

	stored := sessions.sessions[resp.SessionID]
	if !stored.CodeExpiresAt.Equal(wantExpiry) {
		t.Errorf("stored expiry = %v, want %v", stored.CodeExpiresAt, wantExpiry)
	}
	if len(registry.reserved) != 1 || registry.reserved[0] != resp.AttendanceCode {
		t.Errorf("code %q should be reserved in the registry", resp.AttendanceCode)
	}
}

func TestCreateSessionRetriesOnCodeCollision(t *testing.T) {
	svc, _, courses, _, registry := newSessionFixture(t)
	course := courses.add(models.Course{CourseCode: "CS101", CourseName: "Intro", FacultyID: 1})
	registry.rejectN = 2

	resp, err := svc.CreateSession(context.Background(), 1, validCreateRequest(course.ID))
	if err != nil {
		t.Fatalf("CreateSession with collisions: %v", err)
	}
	if len(registry.reserved) != 1 {
		t.Errorf("exactly one code should end up reserved, got %d", len(registry.reserved))
	}
	if resp.AttendanceCode == "" {
		t.Error("response should carry the reserved code")
	}
}

func TestCreateSessionGivesUpAfterBoundedRetries(t *testing.T) {
	svc, _, courses, _, registry := newSessionFixture(t)
	course := courses.add(models.Course{CourseCode: "CS101", CourseName: "Intro", FacultyID: 1})
	registry.rejectN = maxCodeAttempts

	_, err := svc.CreateSession(context.Background(), 1, validCreateRequest(course.ID))
	if !errors.Is(err, apperrors.ErrCodeReservationFailed) {
		t.Errorf("err = %v, want ErrCodeReservationFailed", err)
	}
}

func TestCreateSessionPermission(t *testing.T) {
	svc, _, courses, _, _ := newSessionFixture(t)
	internID := int64(55)
	course := courses.add(models.Course{CourseCode: "CS101", CourseName: "Intro", FacultyID: 1, InternID: &internID})

	if _, err := svc.CreateSession(context.Background(), internID, validCreateRequest(course.ID)); err != nil {
		t.Errorf("assigned intern should be allowed: %v", err)
	}

	_, err := svc.CreateSession(context.Background(), 999, validCreateRequest(course.ID))
	if !errors.Is(err, apperrors.ErrPermissionDenied) {
		t.Errorf("err = %v, want ErrPermissionDenied", err)
	}
}

func TestCreateSessionRejectsInvertedTimes(t *testing.T) {
	svc, _, courses, _, _ := newSessionFixture(t)
	course := courses.add(models.Course{CourseCode: "CS101", CourseName: "Intro", FacultyID: 1})

	req := validCreateRequest(course.ID)
	req.StartTime = "10:30"
	req.EndTime = "09:00"

	_, err := svc.CreateSession(context.Background(), 1, req)
	if !errors.Is(err, apperrors.ErrBadRequest) {
		t.Errorf("err = %v, want ErrBadRequest", err)
	}
}

func TestListSessionsBlanksExpiredCodeForStudents(t *testing.T) {
	svc, sessions, courses, enrollments, _ := newSessionFixture(t)
	course := courses.add(models.Course{CourseCode: "CS101", CourseName: "Intro", FacultyID: 1})
	enrollments.approve(204, course.ID)

	start := time.Date(2026, 9, 14, 9, 0, 0, 0, time.Local)
	sessions.add(models.SessionWithCourse{
		Session: models.Session{
			CourseID:       course.ID,
			StartsAt:       start,
			EndsAt:         start.Add(time.Hour),
			AttendanceCode: "004821",
			CodeExpiresAt:  start.Add(3 * time.Hour),
		},
	})

	// After expiry: students lose the code, staff keep it.
	svc.nowFn = func() time.Time { return start.Add(4 * time.Hour) }

	asStudent, err := svc.ListSessions(context.Background(), 204, models.RoleStudent, course.ID)
	if err != nil {
		t.Fatalf("ListSessions as student: %v", err)
	}
	if asStudent[0].AttendanceCode != nil {
		t.Error("expired code should be blanked for students")
	}

	asFaculty, err := svc.ListSessions(context.Background(), 1, models.RoleFaculty, course.ID)
	if err != nil {
		t.Fatalf("ListSessions as faculty: %v", err)
	}
	if asFaculty[0].AttendanceCode == nil || *asFaculty[0].AttendanceCode != "004821" {
		t.Error("faculty should always see the code")
	}

	// Before expiry the student sees it too.
	svc.nowFn = func() time.Time { return start }
	asStudent, err = svc.ListSessions(context.Background(), 204, models.RoleStudent, course.ID)
	if err != nil {
		t.Fatalf("ListSessions before expiry: %v", err)
	}
	if asStudent[0].AttendanceCode == nil {
		t.Error("unexpired code should be visible to enrolled students")
	}
}

func TestListSessionsRequiresCourseAccess(t *testing.T) {
	svc, _, courses, _, _ := newSessionFixture(t)
	course := courses.add(models.Course{CourseCode: "CS101", CourseName: "Intro", FacultyID: 1})

	_, err := svc.ListSessions(context.Background(), 204, models.RoleStudent, course.ID)
	if !errors.Is(err, apperrors.ErrNotEnrolled) {
		t.Errorf("err = %v, want ErrNotEnrolled", err)
	}
}
