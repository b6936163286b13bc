// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios and map
// them onto the uniform response envelope without string matching.
package repository

import "errors"

// ErrEmailExists is returned when an insert would violate the unique
// email constraint. Handlers translate this into HTTP 409.
var ErrEmailExists = errors.New("email already exists")

// ErrUserNotFound is returned when a user lookup matches no row.
var ErrUserNotFound = errors.New("user not found")

// ErrCourseNotFound is returned when a course lookup matches no row.
var ErrCourseNotFound = errors.New("course not found")

// ErrAlreadyEnrolled is returned when a student is enrolled into a course
// they are already a member of. Handlers translate this into HTTP 409.
var ErrAlreadyEnrolled = errors.New("already enrolled")

// ErrNotEnrolled is returned when an unenroll targets a membership that
// does not exist.
var ErrNotEnrolled = errors.New("not enrolled")
