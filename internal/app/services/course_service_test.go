package services

import (
	"context"
	"errors"
	"testing"

	"github.com/ozgur/rollcall/internal/app/models"
	"github.com/ozgur/rollcall/internal/app/models/dto"
	"github.com/ozgur/rollcall/internal/pkg/apperrors"
)

func newCourseFixture(t *testing.T) (CourseService, *fakeCourseRepo, *fakeEnrollmentRepo) {
	t.Helper()
	courses := newFakeCourseRepo()
	enrollments := newFakeEnrollmentRepo()
	return NewCourseService(courses, enrollments), courses, enrollments
}

func TestCreateCourse(t *testing.T) {
	svc, courses, _ := newCourseFixture(t)

	resp, err := svc.CreateCourse(context.Background(), 1, &dto.CreateCourseRequest{
		CourseCode: "CS101",
		CourseName: "Introduction to Computer Science",
	})
	if err != nil {
		t.Fatalf("CreateCourse: %v", err)
	}

	stored := courses.courses[resp.CourseID]
	if stored.FacultyID != 1 {
		t.Errorf("facultyId = %d, want the caller", stored.FacultyID)
	}
}

func TestCreateCourseDuplicateCode(t *testing.T) {
	svc, courses, _ := newCourseFixture(t)
	courses.add(models.Course{CourseCode: "CS101", CourseName: "Intro", FacultyID: 2})

	_, err := svc.CreateCourse(context.Background(), 1, &dto.CreateCourseRequest{
		CourseCode: "CS101",
		CourseName: "Another Intro",
	})
	if !errors.Is(err, apperrors.ErrCourseCodeAlreadyExists) {
		t.Errorf("err = %v, want ErrCourseCodeAlreadyExists", err)
	}
}

func TestClaimInternship(t *testing.T) {
	svc, courses, _ := newCourseFixture(t)
	course := courses.add(models.Course{CourseCode: "CS101", CourseName: "Intro", FacultyID: 1})

	if err := svc.ClaimInternship(context.Background(), 55, course.ID); err != nil {
		t.Fatalf("ClaimInternship: %v", err)
	}
	if courses.courses[course.ID].InternID == nil || *courses.courses[course.ID].InternID != 55 {
		t.Error("intern should be recorded on the course")
	}
}

func TestClaimInternshipSlotTaken(t *testing.T) {
	svc, courses, _ := newCourseFixture(t)
	holder := int64(55)
	course := courses.add(models.Course{CourseCode: "CS101", CourseName: "Intro", FacultyID: 1, InternID: &holder})

	err := svc.ClaimInternship(context.Background(), 56, course.ID)
	if !errors.Is(err, apperrors.ErrInternSlotTaken) {
		t.Errorf("err = %v, want ErrInternSlotTaken", err)
	}
}

func TestClaimInternshipIdempotentForHolder(t *testing.T) {
	svc, courses, _ := newCourseFixture(t)
	holder := int64(55)
	course := courses.add(models.Course{CourseCode: "CS101", CourseName: "Intro", FacultyID: 1, InternID: &holder})

	if err := svc.ClaimInternship(context.Background(), holder, course.ID); err != nil {
		t.Errorf("re-claiming an already held course should be a no-op, got %v", err)
	}
}

func TestGetCourseStudentsPermission(t *testing.T) {
	svc, courses, enrollments := newCourseFixture(t)
	internID := int64(55)
	course := courses.add(models.Course{CourseCode: "CS101", CourseName: "Intro", FacultyID: 1, InternID: &internID})
	enrollments.approve(204, course.ID)
	enrollments.add(models.Enrollment{StudentID: 205, CourseID: course.ID, Status: models.EnrollmentPending})

	roster, err := svc.GetCourseStudents(context.Background(), 1, course.ID)
	if err != nil {
		t.Fatalf("GetCourseStudents as owner: %v", err)
	}
	if len(roster) != 1 {
		t.Errorf("roster has %d students, want only the approved one", len(roster))
	}

	if _, err := svc.GetCourseStudents(context.Background(), internID, course.ID); err != nil {
		t.Errorf("assigned intern should read the roster: %v", err)
	}

	if _, err := svc.GetCourseStudents(context.Background(), 999, course.ID); !errors.Is(err, apperrors.ErrPermissionDenied) {
		t.Errorf("err = %v, want ErrPermissionDenied for outsider", err)
	}
}

func TestListCoursesByRole(t *testing.T) {
	svc, courses, _ := newCourseFixture(t)
	courses.add(models.Course{ID: 1, CourseCode: "CS101", CourseName: "Intro", FacultyID: 1})
	intern := int64(55)
	courses.add(models.Course{ID: 2, CourseCode: "CS201", CourseName: "Data Structures", FacultyID: 2, InternID: &intern})

	owned, err := svc.ListCourses(context.Background(), 1, models.RoleFaculty, "")
	if err != nil {
		t.Fatalf("ListCourses faculty: %v", err)
	}
	if len(owned) != 1 || owned[0].CourseCode != "CS101" {
		t.Errorf("faculty should see own courses, got %v", owned)
	}

	assigned, err := svc.ListCourses(context.Background(), intern, models.RoleFacultyIntern, "")
	if err != nil {
		t.Fatalf("ListCourses intern: %v", err)
	}
	if len(assigned) != 1 || assigned[0].CourseCode != "CS201" {
		t.Errorf("intern should see assigned courses, got %v", assigned)
	}

	open, err := svc.ListCourses(context.Background(), intern, models.RoleFacultyIntern, dto.CourseViewAvailable)
	if err != nil {
		t.Fatalf("ListCourses intern available: %v", err)
	}
	if len(open) != 1 || open[0].CourseCode != "CS101" {
		t.Errorf("intern available view should list courses without an intern, got %v", open)
	}

	if _, err := svc.ListCourses(context.Background(), 204, models.RoleStudent, "bogus"); !errors.Is(err, apperrors.ErrBadRequest) {
		t.Errorf("unknown student view should fail with ErrBadRequest, got %v", err)
	}
}
