package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ozgur/rollcall/internal/app/models"
	"github.com/ozgur/rollcall/internal/pkg/apperrors"
)

func newReportFixture(t *testing.T) (*reportServiceImpl, *fakeAttendanceRepo, *fakeCourseRepo, *fakeEnrollmentRepo) {
	t.Helper()
	attendance := newFakeAttendanceRepo()
	courses := newFakeCourseRepo()
	enrollments := newFakeEnrollmentRepo()
	svc := NewReportService(attendance, courses, enrollments).(*reportServiceImpl)
	return svc, attendance, courses, enrollments
}

func TestOverallReportPercentage(t *testing.T) {
	svc, attendance, courses, enrollments := newReportFixture(t)
	course := courses.add(models.Course{CourseCode: "CS101", CourseName: "Intro", FacultyID: 1})
	enrollments.approve(204, course.ID)

	// 2 attended (present+late) out of 4 sessions.
	attendance.counts = &models.AttendanceCounts{
		TotalSessions: 4,
		MarkedCount:   3,
		PresentCount:  1,
		LateCount:     1,
		AbsentCount:   1,
	}

	report, err := svc.OverallReport(context.Background(), 204, models.RoleStudent, course.ID, nil)
	if err != nil {
		t.Fatalf("OverallReport: %v", err)
	}

	if report.Summary.AttendedSessions != 2 {
		t.Errorf("attended = %d, want 2", report.Summary.AttendedSessions)
	}
	if report.Summary.AttendancePercentage == nil {
		t.Fatal("percentage should be set when sessions exist")
	}
	if *report.Summary.AttendancePercentage != 50.00 {
		t.Errorf("percentage = %v, want 50.00", *report.Summary.AttendancePercentage)
	}
}

func TestOverallReportRoundsToTwoDecimals(t *testing.T) {
	svc, attendance, courses, enrollments := newReportFixture(t)
	course := courses.add(models.Course{CourseCode: "CS101", CourseName: "Intro", FacultyID: 1})
	enrollments.approve(204, course.ID)

	// 1/3 -> 33.333... -> 33.33
	attendance.counts = &models.AttendanceCounts{TotalSessions: 3, MarkedCount: 1, PresentCount: 1}

	report, err := svc.OverallReport(context.Background(), 204, models.RoleStudent, course.ID, nil)
	if err != nil {
		t.Fatalf("OverallReport: %v", err)
	}
	if got := *report.Summary.AttendancePercentage; got != 33.33 {
		t.Errorf("percentage = %v, want 33.33", got)
	}
}

func TestOverallReportNoSessionsHasNilPercentage(t *testing.T) {
	svc, attendance, courses, enrollments := newReportFixture(t)
	course := courses.add(models.Course{CourseCode: "CS101", CourseName: "Intro", FacultyID: 1})
	enrollments.approve(204, course.ID)
	attendance.counts = &models.AttendanceCounts{}

	report, err := svc.OverallReport(context.Background(), 204, models.RoleStudent, course.ID, nil)
	if err != nil {
		t.Fatalf("OverallReport: %v", err)
	}
	if report.Summary.AttendancePercentage != nil {
		t.Errorf("percentage = %v, want nil when there are no sessions", *report.Summary.AttendancePercentage)
	}
}

func TestStudentCannotReadAnotherStudentsReport(t *testing.T) {
	svc, _, courses, enrollments := newReportFixture(t)
	course := courses.add(models.Course{CourseCode: "CS101", CourseName: "Intro", FacultyID: 1})
	enrollments.approve(204, course.ID)

	other := int64(205)
	_, err := svc.OverallReport(context.Background(), 204, models.RoleStudent, course.ID, &other)
	if !errors.Is(err, apperrors.ErrPermissionDenied) {
		t.Errorf("err = %v, want ErrPermissionDenied", err)
	}
}

func TestStudentReportRequiresApprovedEnrollment(t *testing.T) {
	svc, _, courses, _ := newReportFixture(t)
	course := courses.add(models.Course{CourseCode: "CS101", CourseName: "Intro", FacultyID: 1})

	_, err := svc.OverallReport(context.Background(), 204, models.RoleStudent, course.ID, nil)
	if !errors.Is(err, apperrors.ErrNotEnrolled) {
		t.Errorf("err = %v, want ErrNotEnrolled", err)
	}
}

func TestFacultyReportNeedsStudentID(t *testing.T) {
	svc, _, courses, enrollments := newReportFixture(t)
	course := courses.add(models.Course{CourseCode: "CS101", CourseName: "Intro", FacultyID: 1})
	enrollments.approve(204, course.ID)

	if _, err := svc.OverallReport(context.Background(), 1, models.RoleFaculty, course.ID, nil); !errors.Is(err, apperrors.ErrBadRequest) {
		t.Errorf("err = %v, want ErrBadRequest without studentId", err)
	}

	target := int64(204)
	report, err := svc.OverallReport(context.Background(), 1, models.RoleFaculty, course.ID, &target)
	if err != nil {
		t.Fatalf("OverallReport as faculty: %v", err)
	}
	if report.StudentID != 204 {
		t.Errorf("subject = %d, want 204", report.StudentID)
	}
}

func TestFacultyReportOnlyForOwnCourse(t *testing.T) {
	svc, _, courses, enrollments := newReportFixture(t)
	course := courses.add(models.Course{CourseCode: "CS101", CourseName: "Intro", FacultyID: 1})
	enrollments.approve(204, course.ID)

	target := int64(204)
	_, err := svc.OverallReport(context.Background(), 2, models.RoleFaculty, course.ID, &target)
	if !errors.Is(err, apperrors.ErrPermissionDenied) {
		t.Errorf("err = %v, want ErrPermissionDenied for other faculty", err)
	}
}

func TestDailyReportFiltersByDate(t *testing.T) {
	svc, attendance, courses, enrollments := newReportFixture(t)
	course := courses.add(models.Course{CourseCode: "CS101", CourseName: "Intro", FacultyID: 1})
	enrollments.approve(204, course.ID)

	day := time.Date(2026, 9, 14, 0, 0, 0, 0, time.Local)
	present := models.AttendancePresent
	attendance.withStatus = []models.SessionAttendance{
		{SessionID: 1, StartsAt: day.Add(9 * time.Hour), Status: &present},
		{SessionID: 2, StartsAt: day.Add(14 * time.Hour)},
		{SessionID: 3, StartsAt: day.AddDate(0, 0, 1).Add(9 * time.Hour), Status: &present},
	}

	report, err := svc.DailyReport(context.Background(), 204, models.RoleStudent, course.ID, "2026-09-14", nil)
	if err != nil {
		t.Fatalf("DailyReport: %v", err)
	}
	if report.Count != 2 {
		t.Errorf("count = %d, want only the two sessions on 2026-09-14", report.Count)
	}
	if report.Date != "2026-09-14" {
		t.Errorf("date = %q", report.Date)
	}
	// The unmarked session stays distinguishable from absent.
	if report.Sessions[1].Status != nil {
		t.Error("unmarked session should have nil status")
	}
}

func TestDailyReportRejectsBadDate(t *testing.T) {
	svc, _, courses, enrollments := newReportFixture(t)
	course := courses.add(models.Course{CourseCode: "CS101", CourseName: "Intro", FacultyID: 1})
	enrollments.approve(204, course.ID)

	_, err := svc.DailyReport(context.Background(), 204, models.RoleStudent, course.ID, "14-09-2026", nil)
	if !errors.Is(err, apperrors.ErrBadRequest) {
		t.Errorf("err = %v, want ErrBadRequest", err)
	}
}
