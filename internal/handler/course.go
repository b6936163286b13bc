package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/acasdev/acas-backend/internal/repository"
	"github.com/acasdev/acas-backend/internal/utils"
)

// CourseHandler exposes course browsing and mutation endpoints. Browsing
// is open to any authenticated role; mutation is gated to TEACHER/ADMIN
// (deletes ADMIN-only) at the router.
type CourseHandler struct {
	Courses *repository.CourseRepo
}

func NewCourseHandler(courses *repository.CourseRepo) *CourseHandler {
	return &CourseHandler{Courses: courses}
}

// courseDTO is the list projection of a course.
type courseDTO struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Description    *string   `json:"description"`
	InstructorID   *string   `json:"instructorId"`
	InstructorName *string   `json:"instructorName"`
	StudentsCount  int64     `json:"studentsCount"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// courseDetailDTO adds roster, syllabus and schedule to the projection.
type courseDetailDTO struct {
	courseDTO
	Students []rosterDTO `json:"students"`
	Syllabus *string     `json:"syllabus"`
	Schedule scheduleDTO `json:"schedule"`
}

type rosterDTO struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	EnrolledAt time.Time `json:"enrolledAt"`
}

type scheduleDTO struct {
	Days []string `json:"days"`
	Time *string  `json:"time"`
}

func toCourseDTO(row repository.CourseRow) courseDTO {
	dto := courseDTO{
		ID:            row.ID,
		Name:          row.Name,
		StudentsCount: row.StudentsCount,
		CreatedAt:     row.CreatedAt,
		UpdatedAt:     row.UpdatedAt,
	}
	if row.Description.Valid {
		dto.Description = &row.Description.String
	}
	if row.InstructorID.Valid {
		dto.InstructorID = &row.InstructorID.String
	}
	if row.InstructorName.Valid {
		dto.InstructorName = &row.InstructorName.String
	}
	return dto
}

// List returns one page of courses. Filters follow the frontend contract
// with precedence enrolled > instructorId > search: enrolled=true
// narrows to the caller's enrollments, instructorId to one teacher's
// courses, search does a substring match over name and description.
func (h *CourseHandler) List(c echo.Context) error {
	page, limit := pageQuery(c)
	q := repository.CourseQuery{Page: page, Limit: limit}

	if strings.EqualFold(c.QueryParam("enrolled"), "true") {
		q.StudentID = currentUserID(c)
	} else if v := c.QueryParam("instructorId"); v != "" {
		q.InstructorID = v
	} else if v := strings.TrimSpace(c.QueryParam("search")); v != "" {
		q.Search = v
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	rows, total, err := h.Courses.List(ctx, q)
	if err != nil {
		return fail(c, http.StatusInternalServerError, CodeInternal, "query failed")
	}
	courses := make([]courseDTO, 0, len(rows))
	for _, row := range rows {
		courses = append(courses, toCourseDTO(row))
	}
	return ok(c, http.StatusOK, echo.Map{
		"courses":    courses,
		"pagination": utils.Paginate(total, page, limit),
	})
}

// Get returns a single course with its roster and schedule.
func (h *CourseHandler) Get(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	row, err := h.Courses.GetByID(ctx, c.Param("id"))
	if err != nil {
		if err == repository.ErrCourseNotFound {
			return fail(c, http.StatusNotFound, CodeNotFound, "course not found")
		}
		return fail(c, http.StatusInternalServerError, CodeInternal, "query failed")
	}
	roster, err := h.Courses.Roster(ctx, row.ID)
	if err != nil {
		return fail(c, http.StatusInternalServerError, CodeInternal, "query failed")
	}

	detail := courseDetailDTO{
		courseDTO: toCourseDTO(row),
		Students:  make([]rosterDTO, 0, len(roster)),
		Schedule:  scheduleDTO{Days: []string{}},
	}
	for _, entry := range roster {
		detail.Students = append(detail.Students, rosterDTO(entry))
	}
	if row.Syllabus.Valid {
		detail.Syllabus = &row.Syllabus.String
	}
	if row.ScheduleDays.Valid && row.ScheduleDays.String != "" {
		detail.Schedule.Days = strings.Split(row.ScheduleDays.String, ",")
	}
	if row.ScheduleTime.Valid {
		detail.Schedule.Time = &row.ScheduleTime.String
	}
	return ok(c, http.StatusOK, echo.Map{"course": detail})
}

type createCourseReq struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Syllabus    string `json:"syllabus"`
}

// Create inserts a course with the calling teacher or admin as instructor.
func (h *CourseHandler) Create(c echo.Context) error {
	var req createCourseReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, CodeValidation, "invalid body")
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return fail(c, http.StatusBadRequest, CodeValidation, "name required")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	id, err := h.Courses.Create(ctx, req.Name, req.Description, req.Syllabus, currentUserID(c))
	if err != nil {
		return fail(c, http.StatusInternalServerError, CodeInternal, "create course failed")
	}
	row, err := h.Courses.GetByID(ctx, id)
	if err != nil {
		return fail(c, http.StatusInternalServerError, CodeInternal, "query failed")
	}
	return okMsg(c, http.StatusCreated, echo.Map{"course": toCourseDTO(row)}, "Course created successfully")
}

type updateCourseReq struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Syllabus    *string `json:"syllabus"`
}

// Update applies a partial update; absent fields keep their value.
func (h *CourseHandler) Update(c echo.Context) error {
	var req updateCourseReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, CodeValidation, "invalid body")
	}
	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		return fail(c, http.StatusBadRequest, CodeValidation, "name cannot be empty")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	id := c.Param("id")
	err := h.Courses.Update(ctx, id, repository.CourseUpdate{
		Name:        req.Name,
		Description: req.Description,
		Syllabus:    req.Syllabus,
	})
	if err != nil {
		if err == repository.ErrCourseNotFound {
			return fail(c, http.StatusNotFound, CodeNotFound, "course not found")
		}
		return fail(c, http.StatusInternalServerError, CodeInternal, "update course failed")
	}
	row, err := h.Courses.GetByID(ctx, id)
	if err != nil {
		return fail(c, http.StatusInternalServerError, CodeInternal, "query failed")
	}
	return okMsg(c, http.StatusOK, echo.Map{"course": toCourseDTO(row)}, "Course updated successfully")
}

// Delete removes a course. ADMIN-only at the router.
func (h *CourseHandler) Delete(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Courses.Delete(ctx, c.Param("id")); err != nil {
		if err == repository.ErrCourseNotFound {
			return fail(c, http.StatusNotFound, CodeNotFound, "course not found")
		}
		return fail(c, http.StatusInternalServerError, CodeInternal, "delete course failed")
	}
	return okMsg(c, http.StatusOK, nil, "Course deleted successfully")
}
