package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/acasdev/acas-backend/internal/model"
)

// EnrollmentRepo manages the enrollments join table.
type EnrollmentRepo struct{ DB *sql.DB }

func NewEnrollmentRepo(db *sql.DB) *EnrollmentRepo { return &EnrollmentRepo{DB: db} }

// StudentCourseRow is one course a student is enrolled in, for the
// student detail projection.
type StudentCourseRow struct {
	CourseID   string
	CourseName string
	EnrolledAt time.Time
}

// Enroll adds a student to a course. The unique key on
// (student_id, course_id) makes duplicates a constraint violation, which
// surfaces as ErrAlreadyEnrolled.
func (r *EnrollmentRepo) Enroll(ctx context.Context, studentID, courseID string) (model.Enrollment, error) {
	e := model.Enrollment{
		ID:         uuid.NewString(),
		StudentID:  studentID,
		CourseID:   courseID,
		EnrolledAt: time.Now().UTC(),
	}
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO enrollments (id, student_id, course_id, enrolled_at) VALUES (?,?,?,?)",
		e.ID, e.StudentID, e.CourseID, e.EnrolledAt)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return model.Enrollment{}, ErrAlreadyEnrolled
		}
		return model.Enrollment{}, err
	}
	return e, nil
}

// Unenroll removes a student from a course.
func (r *EnrollmentRepo) Unenroll(ctx context.Context, studentID, courseID string) error {
	res, err := r.DB.ExecContext(ctx,
		"DELETE FROM enrollments WHERE student_id=? AND course_id=?", studentID, courseID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotEnrolled
	}
	return nil
}

// CoursesOfStudent lists the courses a student is enrolled in with the
// enrollment time, ordered by enrollment.
func (r *EnrollmentRepo) CoursesOfStudent(ctx context.Context, studentID string) ([]StudentCourseRow, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT c.id, c.name, e.enrolled_at
		FROM enrollments e
		JOIN courses c ON c.id = e.course_id
		WHERE e.student_id = ?
		ORDER BY e.enrolled_at, c.id`, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []StudentCourseRow
	for rows.Next() {
		var row StudentCourseRow
		if err := rows.Scan(&row.CourseID, &row.CourseName, &row.EnrolledAt); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}
