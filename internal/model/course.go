package model

import (
	"database/sql"
	"time"
)

// Course represents a row in the `courses` table. The instructor is a
// nullable foreign key into users; ScheduleDays holds the comma-joined
// weekday list as stored in the column.
type Course struct {
	ID           string         // courses.id
	Name         string         // courses.name
	Description  sql.NullString // courses.description
	InstructorID sql.NullString // courses.instructor_id
	Syllabus     sql.NullString // courses.syllabus
	ScheduleDays sql.NullString // courses.schedule_days (comma-joined)
	ScheduleTime sql.NullString // courses.schedule_time
	CreatedAt    time.Time      // courses.created_at
	UpdatedAt    time.Time      // courses.updated_at
}

// Enrollment models a row in the `enrollments` join table. The pair
// (StudentID, CourseID) is unique.
type Enrollment struct {
	ID         string    // enrollments.id
	StudentID  string    // enrollments.student_id
	CourseID   string    // enrollments.course_id
	EnrolledAt time.Time // enrollments.enrolled_at
}
