package model

import (
	"database/sql"
	"time"
)

// Role values stored in users.role and carried in session token claims.
const (
	RoleStudent = "STUDENT"
	RoleTeacher = "TEACHER"
	RoleAdmin   = "ADMIN"
)

// Status values stored in users.status.
const (
	StatusActive   = "ACTIVE"
	StatusInactive = "INACTIVE"
)

// User represents a row in the `users` table. Each field corresponds to a
// column. IDs are UUID strings generated at insert time. The optional
// profile fields (avatar, bio, phone, address) and LastLogin are nullable
// in the schema, so they use sql.Null types. The json tags are omitted
// here because these structs are used internally by the repository layer;
// handlers define separate response types with appropriate JSON tags.
//
// Fields:
//  ID           – primary key (UUID).
//  Email        – unique email address, stored lowercased.
//  PasswordHash – bcrypt hashed password; never exposed.
//  Name         – display name.
//  Role         – STUDENT, TEACHER or ADMIN.
//  Status       – ACTIVE or INACTIVE; inactive accounts cannot log in.
//  LastLogin    – last successful login time (null until first login).
type User struct {
	ID           string         // users.id
	Email        string         // users.email
	PasswordHash string         // users.password_hash
	Name         string         // users.name
	Role         string         // users.role
	Status       string         // users.status
	Avatar       sql.NullString // users.avatar
	Bio          sql.NullString // users.bio
	Phone        sql.NullString // users.phone
	Address      sql.NullString // users.address
	LastLogin    sql.NullTime   // users.last_login
	CreatedAt    time.Time      // users.created_at
	UpdatedAt    time.Time      // users.updated_at
}
