package database

import (
	"context"
	"database/sql"
	"log"

	"github.com/google/uuid"

	"github.com/acasdev/acas-backend/internal/model"
	"github.com/acasdev/acas-backend/internal/utils"
)

// Seed creates a default admin, teacher and student account when the users
// table is empty, so a fresh install is immediately usable.  Existing data
// is never touched.
func Seed(ctx context.Context, db *sql.DB, bcryptCost int) error {
	var count int64
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	log.Println("seeding database with default users")
	defaults := []struct {
		email    string
		password string
		name     string
		role     string
	}{
		{"admin@acas.com", "admin123", "Admin User", model.RoleAdmin},
		{"teacher@acas.com", "teacher123", "John Teacher", model.RoleTeacher},
		{"student@acas.com", "student123", "Jane Student", model.RoleStudent},
	}
	for _, d := range defaults {
		hash, err := utils.HashPassword(d.password, bcryptCost)
		if err != nil {
			return err
		}
		_, err = db.ExecContext(ctx,
			"INSERT INTO users (id, email, password_hash, name, role, status) VALUES (?,?,?,?,?,?)",
			uuid.NewString(), d.email, hash, d.name, d.role, model.StatusActive)
		if err != nil {
			return err
		}
		log.Printf("created %s user: %s", d.role, d.email)
	}
	return nil
}
