package services

import (
	"context"
	"time"

	"github.com/ozgur/rollcall/internal/app/models"
	"github.com/ozgur/rollcall/internal/pkg/apperrors"
)

// In-memory repository fakes. Each backs just enough state for the service
// under test; unused lookups return empty results.

type fakeCourseRepo struct {
	courses map[int64]*models.Course
	nextID  int64
}

func newFakeCourseRepo() *fakeCourseRepo {
	return &fakeCourseRepo{courses: make(map[int64]*models.Course), nextID: 1}
}

func (f *fakeCourseRepo) add(c models.Course) *models.Course {
	if c.ID == 0 {
		c.ID = f.nextID
		f.nextID++
	} else if c.ID >= f.nextID {
		f.nextID = c.ID + 1
	}
	f.courses[c.ID] = &c
	return f.courses[c.ID]
}

func (f *fakeCourseRepo) Create(_ context.Context, course *models.Course) (int64, error) {
	for _, existing := range f.courses {
		if existing.CourseCode == course.CourseCode {
			return 0, apperrors.ErrCourseCodeAlreadyExists
		}
	}
	created := f.add(*course)
	return created.ID, nil
}

func (f *fakeCourseRepo) GetByID(_ context.Context, id int64) (*models.Course, error) {
	course, ok := f.courses[id]
	if !ok {
		return nil, apperrors.ErrCourseNotFound
	}
	copied := *course
	return &copied, nil
}

func (f *fakeCourseRepo) ListByFaculty(_ context.Context, facultyID int64) ([]models.CourseSummary, error) {
	var out []models.CourseSummary
	for _, c := range f.courses {
		if c.FacultyID == facultyID {
			out = append(out, models.CourseSummary{Course: *c})
		}
	}
	return out, nil
}

func (f *fakeCourseRepo) ListByIntern(_ context.Context, internID int64) ([]models.CourseSummary, error) {
	var out []models.CourseSummary
	for _, c := range f.courses {
		if c.InternID != nil && *c.InternID == internID {
			out = append(out, models.CourseSummary{Course: *c})
		}
	}
	return out, nil
}

func (f *fakeCourseRepo) ListEnrolledForStudent(_ context.Context, _ int64, _ models.EnrollmentStatus) ([]models.CourseSummary, error) {
	return nil, nil
}

func (f *fakeCourseRepo) ListAvailableForStudent(_ context.Context, _ int64) ([]models.CourseSummary, error) {
	return nil, nil
}

func (f *fakeCourseRepo) ListWithoutIntern(_ context.Context) ([]models.CourseSummary, error) {
	var out []models.CourseSummary
	for _, c := range f.courses {
		if c.InternID == nil {
			out = append(out, models.CourseSummary{Course: *c})
		}
	}
	return out, nil
}

func (f *fakeCourseRepo) AssignIntern(_ context.Context, courseID, internID int64) error {
	course, ok := f.courses[courseID]
	if !ok {
		return apperrors.ErrCourseNotFound
	}
	if course.InternID != nil {
		return apperrors.ErrInternSlotTaken
	}
	course.InternID = &internID
	return nil
}

type enrollKey struct{ student, course int64 }

type fakeEnrollmentRepo struct {
	rows   map[int64]*models.Enrollment
	byKey  map[enrollKey]int64
	nextID int64
}

func newFakeEnrollmentRepo() *fakeEnrollmentRepo {
	return &fakeEnrollmentRepo{
		rows:   make(map[int64]*models.Enrollment),
		byKey:  make(map[enrollKey]int64),
		nextID: 1,
	}
}

func (f *fakeEnrollmentRepo) add(e models.Enrollment) *models.Enrollment {
	if e.ID == 0 {
		e.ID = f.nextID
		f.nextID++
	}
	f.rows[e.ID] = &e
	f.byKey[enrollKey{e.StudentID, e.CourseID}] = e.ID
	return f.rows[e.ID]
}

func (f *fakeEnrollmentRepo) approve(studentID, courseID int64) {
	f.add(models.Enrollment{
		StudentID:      studentID,
		CourseID:       courseID,
		EnrollmentType: models.EnrollRegular,
		Status:         models.EnrollmentApproved,
	})
}

func (f *fakeEnrollmentRepo) GetByID(_ context.Context, id int64) (*models.Enrollment, error) {
	e, ok := f.rows[id]
	if !ok {
		return nil, apperrors.ErrEnrollmentNotFound
	}
	copied := *e
	return &copied, nil
}

func (f *fakeEnrollmentRepo) GetByStudentCourse(_ context.Context, studentID, courseID int64) (*models.Enrollment, error) {
	id, ok := f.byKey[enrollKey{studentID, courseID}]
	if !ok {
		return nil, apperrors.ErrEnrollmentNotFound
	}
	copied := *f.rows[id]
	return &copied, nil
}

func (f *fakeEnrollmentRepo) CreateRequest(_ context.Context, studentID, courseID int64, enrollmentType models.EnrollmentType) (int64, error) {
	if _, ok := f.byKey[enrollKey{studentID, courseID}]; ok {
		return 0, apperrors.ErrAlreadyEnrolled
	}
	created := f.add(models.Enrollment{
		StudentID:      studentID,
		CourseID:       courseID,
		EnrollmentType: enrollmentType,
		Status:         models.EnrollmentPending,
		RequestedAt:    time.Now(),
	})
	return created.ID, nil
}

func (f *fakeEnrollmentRepo) HasApproved(_ context.Context, studentID, courseID int64) (bool, error) {
	id, ok := f.byKey[enrollKey{studentID, courseID}]
	if !ok {
		return false, nil
	}
	return f.rows[id].Status == models.EnrollmentApproved, nil
}

func (f *fakeEnrollmentRepo) PendingForFaculty(_ context.Context, _ int64) ([]models.EnrollmentRequest, error) {
	var out []models.EnrollmentRequest
	for _, e := range f.rows {
		if e.Status == models.EnrollmentPending {
			out = append(out, models.EnrollmentRequest{Enrollment: *e})
		}
	}
	return out, nil
}

func (f *fakeEnrollmentRepo) UpdateStatus(_ context.Context, id int64, status models.EnrollmentStatus) error {
	e, ok := f.rows[id]
	if !ok || e.Status != models.EnrollmentPending {
		return apperrors.ErrEnrollmentNotFound
	}
	e.Status = status
	now := time.Now()
	e.ReviewedAt = &now
	return nil
}

func (f *fakeEnrollmentRepo) EnrolledStudents(_ context.Context, courseID int64) ([]models.EnrolledStudent, error) {
	var out []models.EnrolledStudent
	for _, e := range f.rows {
		if e.CourseID == courseID && e.Status == models.EnrollmentApproved {
			out = append(out, models.EnrolledStudent{
				StudentID:      e.StudentID,
				EnrollmentType: e.EnrollmentType,
				RequestedAt:    e.RequestedAt,
			})
		}
	}
	return out, nil
}

type fakeSessionRepo struct {
	sessions map[int64]*models.SessionWithCourse
	nextID   int64
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[int64]*models.SessionWithCourse), nextID: 1}
}

func (f *fakeSessionRepo) add(s models.SessionWithCourse) *models.SessionWithCourse {
	if s.ID == 0 {
		s.ID = f.nextID
		f.nextID++
	}
	f.sessions[s.ID] = &s
	return f.sessions[s.ID]
}

func (f *fakeSessionRepo) Create(_ context.Context, session *models.Session) (int64, error) {
	created := f.add(models.SessionWithCourse{Session: *session})
	return created.ID, nil
}

func (f *fakeSessionRepo) GetByID(_ context.Context, id int64) (*models.SessionWithCourse, error) {
	s, ok := f.sessions[id]
	if !ok {
		return nil, apperrors.ErrSessionNotFound
	}
	copied := *s
	return &copied, nil
}

func (f *fakeSessionRepo) GetByCode(_ context.Context, code string) (*models.SessionWithCourse, error) {
	for _, s := range f.sessions {
		if s.AttendanceCode == code {
			copied := *s
			return &copied, nil
		}
	}
	return nil, apperrors.ErrAttendanceCodeInvalid
}

func (f *fakeSessionRepo) ListByCourse(_ context.Context, courseID int64) ([]models.SessionOverview, error) {
	var out []models.SessionOverview
	for _, s := range f.sessions {
		if s.CourseID == courseID {
			out = append(out, models.SessionOverview{Session: s.Session})
		}
	}
	return out, nil
}

type attendKey struct{ session, student int64 }

type fakeAttendanceRepo struct {
	rows   map[attendKey]*models.Attendance
	nextID int64

	counts       *models.AttendanceCounts
	withStatus   []models.SessionAttendance
	rosterByID   map[int64][]models.AttendanceRecord
	lastUpserted *models.Attendance
}

func newFakeAttendanceRepo() *fakeAttendanceRepo {
	return &fakeAttendanceRepo{
		rows:       make(map[attendKey]*models.Attendance),
		nextID:     1,
		rosterByID: make(map[int64][]models.AttendanceRecord),
	}
}

func (f *fakeAttendanceRepo) InsertIfAbsent(_ context.Context, a *models.Attendance) (*models.Attendance, bool, error) {
	key := attendKey{a.SessionID, a.StudentID}
	if existing, ok := f.rows[key]; ok {
		copied := *existing
		return &copied, false, nil
	}
	copied := *a
	copied.ID = f.nextID
	f.nextID++
	f.rows[key] = &copied
	result := copied
	return &result, true, nil
}

func (f *fakeAttendanceRepo) GetBySessionStudent(_ context.Context, sessionID, studentID int64) (*models.Attendance, error) {
	a, ok := f.rows[attendKey{sessionID, studentID}]
	if !ok {
		return nil, nil
	}
	copied := *a
	return &copied, nil
}

func (f *fakeAttendanceRepo) UpsertManual(_ context.Context, a *models.Attendance) error {
	key := attendKey{a.SessionID, a.StudentID}
	copied := *a
	if existing, ok := f.rows[key]; ok {
		copied.ID = existing.ID
	} else {
		copied.ID = f.nextID
		f.nextID++
	}
	f.rows[key] = &copied
	f.lastUpserted = &copied
	return nil
}

func (f *fakeAttendanceRepo) RosterBySession(_ context.Context, sessionID int64) ([]models.AttendanceRecord, error) {
	return f.rosterByID[sessionID], nil
}

func (f *fakeAttendanceRepo) CountsForStudent(_ context.Context, _, _ int64) (*models.AttendanceCounts, error) {
	if f.counts == nil {
		return &models.AttendanceCounts{}, nil
	}
	copied := *f.counts
	return &copied, nil
}

func (f *fakeAttendanceRepo) SessionsWithStatus(_ context.Context, _, _ int64, from, to *time.Time) ([]models.SessionAttendance, error) {
	if from == nil && to == nil {
		return f.withStatus, nil
	}
	var out []models.SessionAttendance
	for _, s := range f.withStatus {
		if from != nil && s.StartsAt.Before(*from) {
			continue
		}
		if to != nil && !s.StartsAt.Before(*to) {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

type fakeCodeRegistry struct {
	taken    map[string]bool
	rejectN  int
	reserved []string
}

func newFakeCodeRegistry() *fakeCodeRegistry {
	return &fakeCodeRegistry{taken: make(map[string]bool)}
}

func (f *fakeCodeRegistry) Reserve(_ context.Context, code string, _ time.Duration) (bool, error) {
	if f.rejectN > 0 {
		f.rejectN--
		return false, nil
	}
	if f.taken[code] {
		return false, nil
	}
	f.taken[code] = true
	f.reserved = append(f.reserved, code)
	return true, nil
}

func (f *fakeCodeRegistry) Release(_ context.Context, code string) error {
	delete(f.taken, code)
	return nil
}
