package main // Entry point package

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"    // .env loader for local development
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/acasdev/acas-backend/internal/config"
	"github.com/acasdev/acas-backend/internal/database"
	"github.com/acasdev/acas-backend/internal/handler"
	"github.com/acasdev/acas-backend/internal/queue"
	"github.com/acasdev/acas-backend/internal/repository"
	"github.com/acasdev/acas-backend/internal/router"
)

func main() {
	// Load .env if present; in production the variables come from the
	// environment directly.
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := database.Migrate(ctx, db); err != nil {
		log.Fatalf("migrate: %v", err)
	}
	if cfg.SeedUsers {
		if err := database.Seed(ctx, db, cfg.BcryptCost); err != nil {
			log.Fatalf("seed: %v", err)
		}
	}

	users := repository.NewUserRepo(db)
	courses := repository.NewCourseRepo(db)
	enrollments := repository.NewEnrollmentRepo(db)

	// Redis backs the login rate limiter and the course detail cache. Both
	// degrade to no-ops when Redis is unreachable.
	rdb := config.NewRedisClient()
	rateCfg := config.LoadRateLimitConfig()
	cacheCfg := config.LoadCacheConfig()

	e := echo.New()
	e.HideBanner = true

	router.RegisterRoutes(e)
	router.RegisterAuth(e, handler.NewAuthHandler(cfg, users), cfg, rateCfg, rdb)
	router.RegisterCourses(e, handler.NewCourseHandler(courses), cfg, cacheCfg, rdb)
	router.RegisterStudents(e, handler.NewStudentHandler(cfg, users, courses, enrollments), cfg)

	// The enrollment consumer runs for the lifetime of the process and
	// reconnects on broker failures.
	go func() {
		if err := queue.StartEnrollmentConsumer(); err != nil {
			log.Printf("enrollment consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
