package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/acasdev/acas-backend/internal/model"
)

// CourseRepo provides access to the courses table and its projections.
type CourseRepo struct{ DB *sql.DB }

func NewCourseRepo(db *sql.DB) *CourseRepo { return &CourseRepo{DB: db} }

// CourseRow is a course joined with its instructor name and enrollment
// count, the shape list and detail endpoints project from.
type CourseRow struct {
	model.Course
	InstructorName sql.NullString
	StudentsCount  int64
}

// RosterEntry is one enrolled student of a course.
type RosterEntry struct {
	ID         string
	Name       string
	Email      string
	EnrolledAt time.Time
}

// CourseQuery defines filters and pagination for listing courses. At most
// one of Search, InstructorID and StudentID is set per request; the
// handler decides precedence.
type CourseQuery struct {
	Search       string // substring over name and description
	InstructorID string // only courses taught by this user
	StudentID    string // only courses this student is enrolled in
	Page         int
	Limit        int
}

const courseSelect = `SELECT
		c.id, c.name, c.description, c.instructor_id, c.syllabus,
		c.schedule_days, c.schedule_time, c.created_at, c.updated_at,
		u.name AS instructor_name,
		(SELECT COUNT(*) FROM enrollments e WHERE e.course_id = c.id) AS students_count
	FROM courses c
	LEFT JOIN users u ON u.id = c.instructor_id`

func scanCourseRows(rows *sql.Rows) ([]CourseRow, error) {
	var out []CourseRow
	for rows.Next() {
		var row CourseRow
		if err := rows.Scan(&row.ID, &row.Name, &row.Description, &row.InstructorID,
			&row.Syllabus, &row.ScheduleDays, &row.ScheduleTime, &row.CreatedAt, &row.UpdatedAt,
			&row.InstructorName, &row.StudentsCount); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// List returns one page of courses matching the query plus the total match
// count. Substring search is delegated to the database via LIKE over the
// lowercased columns.
func (r *CourseRepo) List(ctx context.Context, q CourseQuery) ([]CourseRow, int64, error) {
	where := []string{}
	args := []any{}

	if q.StudentID != "" {
		where = append(where, "c.id IN (SELECT course_id FROM enrollments WHERE student_id = ?)")
		args = append(args, q.StudentID)
	}
	if q.InstructorID != "" {
		where = append(where, "c.instructor_id = ?")
		args = append(args, q.InstructorID)
	}
	if q.Search != "" {
		where = append(where, "(LOWER(c.name) LIKE ? OR LOWER(c.description) LIKE ?)")
		pat := "%" + strings.ToLower(q.Search) + "%"
		args = append(args, pat, pat)
	}

	cond := "1=1"
	if len(where) > 0 {
		cond = strings.Join(where, " AND ")
	}

	var total int64
	if err := r.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM courses c WHERE "+cond, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit := q.Limit
	offset := (q.Page - 1) * q.Limit
	rows, err := r.DB.QueryContext(ctx,
		courseSelect+" WHERE "+cond+" ORDER BY c.created_at, c.id LIMIT ? OFFSET ?",
		append(args, limit, offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	out, err := scanCourseRows(rows)
	return out, total, err
}

// GetByID fetches a single course row with instructor name and count.
func (r *CourseRepo) GetByID(ctx context.Context, id string) (CourseRow, error) {
	rows, err := r.DB.QueryContext(ctx, courseSelect+" WHERE c.id = ? LIMIT 1", id)
	if err != nil {
		return CourseRow{}, err
	}
	defer rows.Close()
	out, err := scanCourseRows(rows)
	if err != nil {
		return CourseRow{}, err
	}
	if len(out) == 0 {
		return CourseRow{}, ErrCourseNotFound
	}
	return out[0], nil
}

// Roster lists the students enrolled in a course with their enrollment
// time, ordered by enrollment.
func (r *CourseRepo) Roster(ctx context.Context, courseID string) ([]RosterEntry, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT u.id, u.name, u.email, e.enrolled_at
		FROM enrollments e
		JOIN users u ON u.id = e.student_id
		WHERE e.course_id = ?
		ORDER BY e.enrolled_at, u.id`, courseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []RosterEntry
	for rows.Next() {
		var entry RosterEntry
		if err := rows.Scan(&entry.ID, &entry.Name, &entry.Email, &entry.EnrolledAt); err != nil {
			return nil, err
		}
		out = append(out, entry)
	}
	return out, rows.Err()
}

// Create inserts a course and returns its ID. The creating teacher or
// admin becomes the instructor.
func (r *CourseRepo) Create(ctx context.Context, name, description, syllabus, instructorID string) (string, error) {
	id := uuid.NewString()
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO courses (id, name, description, syllabus, instructor_id) VALUES (?,?,?,?,?)",
		id, name, nullIfEmpty(description), nullIfEmpty(syllabus), nullIfEmpty(instructorID))
	if err != nil {
		return "", err
	}
	return id, nil
}

// CourseUpdate holds the mutable course fields; nil pointers leave the
// column untouched.
type CourseUpdate struct {
	Name        *string
	Description *string
	Syllabus    *string
}

// Update applies a partial update and reports ErrCourseNotFound when the
// id matches no row.
func (r *CourseRepo) Update(ctx context.Context, id string, upd CourseUpdate) error {
	sets := []string{}
	args := []any{}
	if upd.Name != nil {
		sets = append(sets, "name=?")
		args = append(args, *upd.Name)
	}
	if upd.Description != nil {
		sets = append(sets, "description=?")
		args = append(args, *upd.Description)
	}
	if upd.Syllabus != nil {
		sets = append(sets, "syllabus=?")
		args = append(args, *upd.Syllabus)
	}
	if len(sets) == 0 {
		return nil
	}
	args = append(args, id)
	res, err := r.DB.ExecContext(ctx,
		"UPDATE courses SET "+strings.Join(sets, ", ")+" WHERE id=?", args...)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

// Delete removes a course; enrollments cascade at the schema level.
func (r *CourseRepo) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM courses WHERE id=?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrCourseNotFound
	}
	return nil
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
