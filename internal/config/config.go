package config // package config loads application configuration from environment variables

import (
	"log"     // log is used to report configuration errors and halt execution
	"os"      // os provides access to environment variables
	"strconv" // strconv converts strings to other types
	"time"    // time is used for the token validity window
)

// Config holds all runtime configuration values.  Each field corresponds
// to an environment variable.  JWTSecret is loaded once here and injected
// into the token codec and the guard; it is never read from ambient state
// elsewhere, so rotating it requires a restart and invalidates every
// previously issued token.
type Config struct {
	Env          string        // application environment (e.g. "dev", "prod")
	Port         string        // HTTP port to listen on
	DBUser       string        // database username
	DBPass       string        // database password (optional)
	DBHost       string        // database host address
	DBPort       string        // database port number
	DBName       string        // database name
	JWTSecret    string        // secret used to sign session tokens
	TokenTTL     time.Duration // session token validity window
	BcryptCost   int           // bcrypt cost for password hashing
	SeedUsers    bool          // create default users when the users table is empty
	CookieSecure bool          // set the Secure flag on the token cookie
}

// Load reads configuration values from environment variables and returns a
// Config.  Required variables are enforced by must() and missing values
// cause the program to exit with a fatal log message.  TOKEN_TTL_DAYS is
// optional and defaults to the 7-day window the frontend expects.
func Load() Config {
	ttlDays := 7
	if v := os.Getenv("TOKEN_TTL_DAYS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			log.Fatalf("invalid int for TOKEN_TTL_DAYS: %q", v)
		}
		ttlDays = n
	}
	return Config{
		Env:          must("APP_ENV"),
		Port:         must("APP_PORT"),
		DBUser:       must("DB_USER"),
		DBPass:       os.Getenv("DB_PASS"), // empty allowed
		DBHost:       must("DB_HOST"),
		DBPort:       must("DB_PORT"),
		DBName:       must("DB_NAME"),
		JWTSecret:    must("JWT_SECRET"),
		TokenTTL:     time.Duration(ttlDays) * 24 * time.Hour,
		BcryptCost:   mustInt("BCRYPT_COST"),
		SeedUsers:    os.Getenv("SEED_USERS") != "false",
		CookieSecure: os.Getenv("COOKIE_SECURE") == "true",
	}
}

// must retrieves the value of a required environment variable.  If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

// mustInt is like must() but converts the retrieved string into an integer.
func mustInt(key string) int {
	s := must(key)
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, s)
	}
	return n
}
