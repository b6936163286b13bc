package handler

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/acasdev/acas-backend/internal/config"
	"github.com/acasdev/acas-backend/internal/model"
	"github.com/acasdev/acas-backend/internal/queue"
	"github.com/acasdev/acas-backend/internal/repository"
	queue_publisher "github.com/acasdev/acas-backend/internal/service"
	"github.com/acasdev/acas-backend/internal/utils"
)

// StudentStore is the slice of the user repository the student endpoints
// need. *repository.UserRepo satisfies it; tests substitute an in-memory
// fake.
type StudentStore interface {
	GetByID(ctx context.Context, id string) (model.User, error)
	ListStudents(ctx context.Context, q repository.StudentQuery) ([]model.User, int64, error)
	Create(ctx context.Context, email, password, name, role string, cost int) (string, error)
	Update(ctx context.Context, id string, upd repository.UserUpdate) error
	Delete(ctx context.Context, id string) error
}

// CourseStore is the slice of the course repository the student endpoints
// need.
type CourseStore interface {
	GetByID(ctx context.Context, id string) (repository.CourseRow, error)
}

// EnrollmentStore covers the enrollment repository operations.
type EnrollmentStore interface {
	Enroll(ctx context.Context, studentID, courseID string) (model.Enrollment, error)
	Unenroll(ctx context.Context, studentID, courseID string) error
	CoursesOfStudent(ctx context.Context, studentID string) ([]repository.StudentCourseRow, error)
}

// StudentHandler exposes the student roster endpoints used by teachers and
// admins: listing, CRUD and enrollment management. The whole surface is
// gated to TEACHER/ADMIN at the router; deletes are ADMIN-only.
type StudentHandler struct {
	Cfg         config.Config
	Users       StudentStore
	Courses     CourseStore
	Enrollments EnrollmentStore
}

func NewStudentHandler(cfg config.Config, u StudentStore, co CourseStore, e EnrollmentStore) *StudentHandler {
	return &StudentHandler{Cfg: cfg, Users: u, Courses: co, Enrollments: e}
}

type studentDTO struct {
	ID                   string    `json:"id"`
	Name                 string    `json:"name"`
	Email                string    `json:"email"`
	EnrolledCourses      []string  `json:"enrolledCourses"`
	EnrolledCoursesCount int       `json:"enrolledCoursesCount"`
	CreatedAt            time.Time `json:"createdAt"`
	UpdatedAt            time.Time `json:"updatedAt"`
}

type studentCourseDTO struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	EnrolledAt time.Time `json:"enrolledAt"`
}

func (h *StudentHandler) toStudentDTO(ctx context.Context, u model.User) (studentDTO, []studentCourseDTO, error) {
	enrolled, err := h.Enrollments.CoursesOfStudent(ctx, u.ID)
	if err != nil {
		return studentDTO{}, nil, err
	}
	ids := make([]string, 0, len(enrolled))
	courses := make([]studentCourseDTO, 0, len(enrolled))
	for _, row := range enrolled {
		ids = append(ids, row.CourseID)
		courses = append(courses, studentCourseDTO{ID: row.CourseID, Name: row.CourseName, EnrolledAt: row.EnrolledAt})
	}
	return studentDTO{
		ID:                   u.ID,
		Name:                 u.Name,
		Email:                u.Email,
		EnrolledCourses:      ids,
		EnrolledCoursesCount: len(ids),
		CreatedAt:            u.CreatedAt,
		UpdatedAt:            u.UpdatedAt,
	}, courses, nil
}

// List returns one page of students, optionally narrowed by a substring
// search over name and email.
func (h *StudentHandler) List(c echo.Context) error {
	page, limit := pageQuery(c)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	users, total, err := h.Users.ListStudents(ctx, repository.StudentQuery{
		Search: strings.TrimSpace(c.QueryParam("search")),
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		return fail(c, http.StatusInternalServerError, CodeInternal, "query failed")
	}

	students := make([]studentDTO, 0, len(users))
	for _, u := range users {
		dto, _, err := h.toStudentDTO(ctx, u)
		if err != nil {
			return fail(c, http.StatusInternalServerError, CodeInternal, "query failed")
		}
		students = append(students, dto)
	}
	return ok(c, http.StatusOK, echo.Map{
		"students":   students,
		"pagination": utils.Paginate(total, page, limit),
	})
}

// Get returns one student with their enrolled courses and a grades
// placeholder (the grading engine is out of scope).
func (h *StudentHandler) Get(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByID(ctx, c.Param("id"))
	if err != nil {
		if err == repository.ErrUserNotFound {
			return fail(c, http.StatusNotFound, CodeNotFound, "student not found")
		}
		return fail(c, http.StatusInternalServerError, CodeInternal, "query failed")
	}
	if u.Role != model.RoleStudent {
		return fail(c, http.StatusBadRequest, CodeInvalidRole, "User is not a student")
	}

	dto, courses, err := h.toStudentDTO(ctx, u)
	if err != nil {
		return fail(c, http.StatusInternalServerError, CodeInternal, "query failed")
	}
	return ok(c, http.StatusOK, echo.Map{"student": echo.Map{
		"id":                   dto.ID,
		"name":                 dto.Name,
		"email":                dto.Email,
		"enrolledCourses":      courses,
		"enrolledCoursesCount": dto.EnrolledCoursesCount,
		"grades":               []any{},
		"createdAt":            dto.CreatedAt,
		"updatedAt":            dto.UpdatedAt,
	}})
}

type createStudentReq struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Create registers a new student account with a hashed password.
func (h *StudentHandler) Create(c echo.Context) error {
	var req createStudentReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, CodeValidation, "invalid body")
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return fail(c, http.StatusBadRequest, CodeValidation, "name/email/password required")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	id, err := h.Users.Create(ctx, req.Email, req.Password, req.Name, model.RoleStudent, h.Cfg.BcryptCost)
	if err != nil {
		if err == repository.ErrEmailExists {
			return fail(c, http.StatusConflict, CodeEmailExists, "email already exists")
		}
		return fail(c, http.StatusInternalServerError, CodeInternal, "create student failed")
	}
	u, err := h.Users.GetByID(ctx, id)
	if err != nil {
		return fail(c, http.StatusInternalServerError, CodeInternal, "query failed")
	}
	dto, _, err := h.toStudentDTO(ctx, u)
	if err != nil {
		return fail(c, http.StatusInternalServerError, CodeInternal, "query failed")
	}
	return okMsg(c, http.StatusCreated, echo.Map{"student": dto}, "Student created successfully")
}

type updateStudentReq struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
}

// Update changes a student's name and/or email.
func (h *StudentHandler) Update(c echo.Context) error {
	var req updateStudentReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, CodeValidation, "invalid body")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	id := c.Param("id")
	err := h.Users.Update(ctx, id, repository.UserUpdate{Name: req.Name, Email: req.Email})
	if err != nil {
		switch err {
		case repository.ErrUserNotFound:
			return fail(c, http.StatusNotFound, CodeNotFound, "student not found")
		case repository.ErrEmailExists:
			return fail(c, http.StatusConflict, CodeEmailExists, "email already exists")
		}
		return fail(c, http.StatusInternalServerError, CodeInternal, "update student failed")
	}
	u, err := h.Users.GetByID(ctx, id)
	if err != nil {
		return fail(c, http.StatusInternalServerError, CodeInternal, "query failed")
	}
	dto, _, err := h.toStudentDTO(ctx, u)
	if err != nil {
		return fail(c, http.StatusInternalServerError, CodeInternal, "query failed")
	}
	return okMsg(c, http.StatusOK, echo.Map{"student": dto}, "Student updated successfully")
}

// Delete removes a student account. ADMIN-only at the router; enrollments
// cascade.
func (h *StudentHandler) Delete(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Users.Delete(ctx, c.Param("id")); err != nil {
		if err == repository.ErrUserNotFound {
			return fail(c, http.StatusNotFound, CodeNotFound, "student not found")
		}
		return fail(c, http.StatusInternalServerError, CodeInternal, "delete student failed")
	}
	return okMsg(c, http.StatusOK, nil, "Student deleted successfully")
}

type enrollReq struct {
	CourseID string `json:"courseId"`
}

// Enroll adds a student to a course and publishes an enrollment.confirmed
// event. Publishing is best-effort: a broker outage never fails the
// request.
func (h *StudentHandler) Enroll(c echo.Context) error {
	var req enrollReq
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.CourseID) == "" {
		return fail(c, http.StatusBadRequest, CodeValidation, "courseId required")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	student, err := h.Users.GetByID(ctx, c.Param("id"))
	if err != nil {
		if err == repository.ErrUserNotFound {
			return fail(c, http.StatusNotFound, CodeNotFound, "student not found")
		}
		return fail(c, http.StatusInternalServerError, CodeInternal, "query failed")
	}
	if student.Role != model.RoleStudent {
		return fail(c, http.StatusBadRequest, CodeInvalidRole, "User is not a student")
	}
	course, err := h.Courses.GetByID(ctx, req.CourseID)
	if err != nil {
		if err == repository.ErrCourseNotFound {
			return fail(c, http.StatusNotFound, CodeNotFound, "course not found")
		}
		return fail(c, http.StatusInternalServerError, CodeInternal, "query failed")
	}

	enrollment, err := h.Enrollments.Enroll(ctx, student.ID, course.ID)
	if err != nil {
		if err == repository.ErrAlreadyEnrolled {
			return fail(c, http.StatusConflict, CodeAlreadyEnrolled, "student already enrolled in course")
		}
		return fail(c, http.StatusInternalServerError, CodeInternal, "enroll failed")
	}

	ev := queue.EnrollmentConfirmedEvent{
		EnrollmentID: enrollment.ID,
		StudentID:    student.ID,
		StudentName:  student.Name,
		StudentEmail: student.Email,
		CourseID:     course.ID,
		CourseName:   course.Name,
		EnrolledAt:   enrollment.EnrolledAt.Format(time.RFC3339),
	}
	if course.InstructorName.Valid {
		ev.InstructorName = course.InstructorName.String
	}
	if err := queue_publisher.PublishEnrollmentConfirmed(ctx, ev); err != nil {
		log.Printf("publish enrollment event: %v", err)
	}

	return okMsg(c, http.StatusOK, echo.Map{"enrollment": echo.Map{
		"studentId":  enrollment.StudentID,
		"courseId":   enrollment.CourseID,
		"enrolledAt": enrollment.EnrolledAt,
	}}, "Student enrolled successfully")
}

// Unenroll removes a student from a course. The student is looked up
// first, so an unknown id reports "student not found" rather than a
// missing enrollment.
func (h *StudentHandler) Unenroll(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	student, err := h.Users.GetByID(ctx, c.Param("id"))
	if err != nil {
		if err == repository.ErrUserNotFound {
			return fail(c, http.StatusNotFound, CodeNotFound, "student not found")
		}
		return fail(c, http.StatusInternalServerError, CodeInternal, "query failed")
	}
	if student.Role != model.RoleStudent {
		return fail(c, http.StatusBadRequest, CodeInvalidRole, "User is not a student")
	}

	err = h.Enrollments.Unenroll(ctx, student.ID, c.Param("courseId"))
	if err != nil {
		if err == repository.ErrNotEnrolled {
			return fail(c, http.StatusNotFound, CodeNotEnrolled, "enrollment not found")
		}
		return fail(c, http.StatusInternalServerError, CodeInternal, "unenroll failed")
	}
	return okMsg(c, http.StatusOK, nil, "Student unenrolled successfully")
}
