package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/acasdev/acas-backend/internal/model"
	"github.com/acasdev/acas-backend/internal/repository"
)

// fakeStudentStore is an in-memory StudentStore keyed by user id.
type fakeStudentStore struct {
	users map[string]model.User
}

func (f *fakeStudentStore) GetByID(_ context.Context, id string) (model.User, error) {
	u, ok := f.users[id]
	if !ok {
		return model.User{}, repository.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeStudentStore) ListStudents(_ context.Context, _ repository.StudentQuery) ([]model.User, int64, error) {
	return nil, 0, nil
}

func (f *fakeStudentStore) Create(_ context.Context, _, _, _, _ string, _ int) (string, error) {
	return "", nil
}

func (f *fakeStudentStore) Update(_ context.Context, _ string, _ repository.UserUpdate) error {
	return nil
}

func (f *fakeStudentStore) Delete(_ context.Context, _ string) error { return nil }

// fakeEnrollmentStore records membership as "studentID/courseID" keys.
type fakeEnrollmentStore struct {
	enrolled      map[string]bool
	unenrollCalls int
}

func (f *fakeEnrollmentStore) Enroll(_ context.Context, studentID, courseID string) (model.Enrollment, error) {
	key := studentID + "/" + courseID
	if f.enrolled[key] {
		return model.Enrollment{}, repository.ErrAlreadyEnrolled
	}
	f.enrolled[key] = true
	return model.Enrollment{
		ID:         "e-1",
		StudentID:  studentID,
		CourseID:   courseID,
		EnrolledAt: time.Now().UTC(),
	}, nil
}

func (f *fakeEnrollmentStore) Unenroll(_ context.Context, studentID, courseID string) error {
	f.unenrollCalls++
	key := studentID + "/" + courseID
	if !f.enrolled[key] {
		return repository.ErrNotEnrolled
	}
	delete(f.enrolled, key)
	return nil
}

func (f *fakeEnrollmentStore) CoursesOfStudent(_ context.Context, _ string) ([]repository.StudentCourseRow, error) {
	return nil, nil
}

type fakeCourseStore struct {
	courses map[string]repository.CourseRow
}

func (f *fakeCourseStore) GetByID(_ context.Context, id string) (repository.CourseRow, error) {
	row, ok := f.courses[id]
	if !ok {
		return repository.CourseRow{}, repository.ErrCourseNotFound
	}
	return row, nil
}

func newStudentFixture() (*StudentHandler, *fakeEnrollmentStore) {
	users := &fakeStudentStore{users: map[string]model.User{
		"s-1": {ID: "s-1", Email: "student@acas.com", Name: "Jane Student", Role: model.RoleStudent, Status: model.StatusActive},
		"t-1": {ID: "t-1", Email: "teacher@acas.com", Name: "John Teacher", Role: model.RoleTeacher, Status: model.StatusActive},
	}}
	courses := &fakeCourseStore{courses: map[string]repository.CourseRow{
		"c-1": {Course: model.Course{ID: "c-1", Name: "Algebra"}},
	}}
	enrollments := &fakeEnrollmentStore{enrolled: map[string]bool{"s-1/c-1": true}}
	return NewStudentHandler(testConfig(), users, courses, enrollments), enrollments
}

func doUnenroll(t *testing.T, h *StudentHandler, studentID, courseID string) (*httptest.ResponseRecorder, envelopeBody) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodDelete, "/students/"+studentID+"/enroll/"+courseID, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id", "courseId")
	c.SetParamValues(studentID, courseID)
	if err := h.Unenroll(c); err != nil {
		t.Fatalf("Unenroll returned error: %v", err)
	}
	var env envelopeBody
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	return rec, env
}

func TestUnenrollSuccess(t *testing.T) {
	h, enrollments := newStudentFixture()
	rec, env := doUnenroll(t, h, "s-1", "c-1")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body %s", rec.Code, rec.Body.String())
	}
	if env.Message == nil || *env.Message != "Student unenrolled successfully" {
		t.Fatalf("message = %v", env.Message)
	}
	if enrollments.enrolled["s-1/c-1"] {
		t.Fatal("enrollment still present after unenroll")
	}
}

func TestUnenrollUnknownStudent(t *testing.T) {
	h, enrollments := newStudentFixture()
	rec, env := doUnenroll(t, h, "ghost", "c-1")

	// An unknown student id must surface as a missing student, not as a
	// missing enrollment, and must not touch the enrollments table.
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if env.Error == nil || env.Error.Code != CodeNotFound {
		t.Fatalf("envelope = %s", rec.Body.String())
	}
	if env.Error.Message != "student not found" {
		t.Fatalf("error message = %q", env.Error.Message)
	}
	if enrollments.unenrollCalls != 0 {
		t.Fatalf("unenroll calls = %d, want 0", enrollments.unenrollCalls)
	}
}

func TestUnenrollNonStudentTarget(t *testing.T) {
	h, enrollments := newStudentFixture()
	rec, env := doUnenroll(t, h, "t-1", "c-1")

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if env.Error == nil || env.Error.Code != CodeInvalidRole {
		t.Fatalf("envelope = %s", rec.Body.String())
	}
	if enrollments.unenrollCalls != 0 {
		t.Fatalf("unenroll calls = %d, want 0", enrollments.unenrollCalls)
	}
}

func TestUnenrollNotEnrolled(t *testing.T) {
	h, _ := newStudentFixture()
	// s-1 exists but has no enrollment in an unknown course.
	rec, env := doUnenroll(t, h, "s-1", "c-404")

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if env.Error == nil || env.Error.Code != CodeNotEnrolled {
		t.Fatalf("envelope = %s", rec.Body.String())
	}
}
