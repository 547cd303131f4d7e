package config // package config loads application configuration from environment variables

import (
    "log"     // log is used to report configuration errors and halt execution
    "os"      // os provides access to environment variables
    "strconv" // strconv converts strings to other types
)

// Config holds all runtime configuration values. Each field corresponds
// to an environment variable. Required variables are enforced by must()
// at startup; the remaining fields fall back to sensible defaults so a
// bare deployment only has to provide the database and signing secret.
type Config struct {
    Env            string // application environment (e.g. "dev", "prod")
    Port           string // HTTP port to listen on
    DBUser         string // database username
    DBPass         string // database password (optional)
    DBHost         string // database host address
    DBPort         string // database port number
    DBName         string // database name
    JWTSecret      string // secret used to sign access tokens
    AccessTTLMin   int    // access token time-to-live in minutes (default 24h)
    RefreshTTLDays int    // refresh token time-to-live in days
    BcryptCost     int    // bcrypt cost for password hashing
    VitalsProfile  string // deployment profile: which third reading field is required ("spo2" or "bp")
    AISummaryURL   string // optional external text-generation endpoint for ai-summary
}

// Load reads configuration values from environment variables and returns
// a Config. Missing required variables cause the program to exit with a
// fatal log message.
func Load() Config {
    cfg := Config{
        Env:            must("APP_ENV"),      // environment (dev/test/prod)
        Port:           must("APP_PORT"),     // port to bind the HTTP server
        DBUser:         must("DB_USER"),      // database user
        DBPass:         os.Getenv("DB_PASS"), // database password (empty allowed)
        DBHost:         must("DB_HOST"),      // database host
        DBPort:         must("DB_PORT"),      // database port
        DBName:         must("DB_NAME"),      // database name
        JWTSecret:      must("JWT_SECRET"),   // secret used for signing tokens
        AccessTTLMin:   envInt("ACCESS_TOKEN_TTL_MIN", 1440),  // 24h canonical default
        RefreshTTLDays: envInt("REFRESH_TOKEN_TTL_DAYS", 30),  // refresh session lifetime
        BcryptCost:     envInt("BCRYPT_COST", 12),             // bcrypt cost factor
        VitalsProfile:  getenv("VITALS_PROFILE", ProfileSpO2), // reading validation profile
        AISummaryURL:   os.Getenv("AI_SUMMARY_URL"),           // empty disables the external service
    }
    if cfg.VitalsProfile != ProfileSpO2 && cfg.VitalsProfile != ProfileBloodPressure {
        log.Fatalf("invalid VITALS_PROFILE: %q (want %q or %q)", cfg.VitalsProfile, ProfileSpO2, ProfileBloodPressure)
    }
    return cfg
}

// Deployment profiles for reading validation. A "spo2" deployment ships
// pulse-oximeter devices and requires spo2 on every reading; a "bp"
// deployment ships cuff devices and requires blood_pressure instead.
const (
    ProfileSpO2          = "spo2"
    ProfileBloodPressure = "bp"
)

// must retrieves the value of a required environment variable. If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
    v, ok := os.LookupEnv(key)
    if !ok || v == "" {
        log.Fatalf("missing required env var: %s", key)
    }
    return v
}

// envInt reads an integer environment variable, returning def when the
// variable is unset or not a valid integer.
func envInt(key string, def int) int {
    v := os.Getenv(key)
    if v == "" {
        return def
    }
    if n, err := strconv.Atoi(v); err == nil {
        return n
    }
    return def
}
