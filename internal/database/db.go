package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

// Open connects to MySQL and verifies the connection.
func Open(user, pass, host, port, name string) (*sql.DB, error) {
	auth := user
	if pass != "" {
		auth = fmt.Sprintf("%s:%s", user, pass)
	}
	// parseTime=true -> DATETIME -> time.Time | loc=UTC keeps times consistent
	dsn := fmt.Sprintf("%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=UTC",
		auth, host, port, name)

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}

	// Pool settings
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(30 * time.Minute)

	// Ping with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate creates the tables the service needs if they do not exist yet,
// so the server is runnable against a fresh database.
func Migrate(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id            CHAR(36) PRIMARY KEY,
			email         VARCHAR(255) NOT NULL UNIQUE,
			password_hash VARCHAR(255) NOT NULL,
			name          VARCHAR(255) NOT NULL,
			role          ENUM('STUDENT','TEACHER','ADMIN') NOT NULL,
			status        ENUM('ACTIVE','INACTIVE') NOT NULL DEFAULT 'ACTIVE',
			avatar        VARCHAR(512) NULL,
			bio           TEXT NULL,
			phone         VARCHAR(64) NULL,
			address       VARCHAR(512) NULL,
			last_login    DATETIME NULL,
			created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS courses (
			id            CHAR(36) PRIMARY KEY,
			name          VARCHAR(255) NOT NULL,
			description   TEXT NULL,
			instructor_id CHAR(36) NULL,
			syllabus      TEXT NULL,
			schedule_days VARCHAR(255) NULL,
			schedule_time VARCHAR(64) NULL,
			created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
			CONSTRAINT fk_courses_instructor FOREIGN KEY (instructor_id)
				REFERENCES users(id) ON DELETE SET NULL
		)`,
		`CREATE TABLE IF NOT EXISTS enrollments (
			id          CHAR(36) PRIMARY KEY,
			student_id  CHAR(36) NOT NULL,
			course_id   CHAR(36) NOT NULL,
			enrolled_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			UNIQUE KEY uq_enrollment (student_id, course_id),
			CONSTRAINT fk_enroll_student FOREIGN KEY (student_id)
				REFERENCES users(id) ON DELETE CASCADE,
			CONSTRAINT fk_enroll_course FOREIGN KEY (course_id)
				REFERENCES courses(id) ON DELETE CASCADE
		)`,
	}
	for _, s := range stmts {
		if _, err := db.ExecContext(ctx, s); err != nil {
			return err
		}
	}
	return nil
}
