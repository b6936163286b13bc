// Package queue defines message payloads exchanged over the message broker.
package queue

// EnrollmentConfirmedEvent is published when a student is successfully
// enrolled in a course. It carries enough information for downstream
// consumers to log, notify, or trigger analytics without querying the
// primary database.
type EnrollmentConfirmedEvent struct {
	EnrollmentID   string `json:"enrollment_id"`
	StudentID      string `json:"student_id"`
	StudentName    string `json:"student_name"`
	StudentEmail   string `json:"student_email"`
	CourseID       string `json:"course_id"`
	CourseName     string `json:"course_name"`
	InstructorName string `json:"instructor_name"`
	EnrolledAt     string `json:"enrolled_at"`
}
