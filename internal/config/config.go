package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for the service.
type Config struct {
	App      AppConfig
	CORS     CORSConfig
	Logger   LoggerConfig
	Auth     AuthConfig
	Session  SessionConfig
	Firebase FirebaseConfig
	Sheets   SheetsConfig
	Email    EmailConfig
	Redis    RedisConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name    string
	Env     string
	Host    string
	Port    string
	Version string
}

// CORSConfig lists origins allowed to call the API with credentials.
type CORSConfig struct {
	AllowedOrigins []string
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// AuthConfig defines admin credential parameters. AdminPassword may arrive
// pre-hashed (salt:digest) or plain; the credential store decides which.
type AuthConfig struct {
	AdminPassword        string
	AdminDefaultPassword string
}

// SessionConfig controls session issuance.
type SessionConfig struct {
	TTLHours int
	Store    string // "memory" (default) or "redis"
}

// FirebaseConfig holds document-store access values.
type FirebaseConfig struct {
	DatabaseURL        string
	ServiceAccountJSON string
	ServiceAccountPath string
	ClientEmail        string
	PrivateKey         string
}

// Configured reports whether the Firebase client can be constructed.
func (f FirebaseConfig) Configured() bool {
	if f.DatabaseURL == "" {
		return false
	}
	return f.ServiceAccountJSON != "" || f.ServiceAccountPath != "" ||
		(f.ClientEmail != "" && f.PrivateKey != "")
}

// SheetsConfig holds tabular-store access values.
type SheetsConfig struct {
	SpreadsheetID      string
	ServiceAccountJSON string
	ServiceAccountPath string
	ClientEmail        string
	PrivateKey         string
}

// Configured reports whether the Sheets client can be constructed.
func (s SheetsConfig) Configured() bool {
	if s.SpreadsheetID == "" {
		return false
	}
	return s.ServiceAccountJSON != "" || s.ServiceAccountPath != "" ||
		(s.ClientEmail != "" && s.PrivateKey != "")
}

// EmailConfig holds Resend delivery values.
type EmailConfig struct {
	APIKey    string
	FromEmail string
	FromName  string
	To        []string
}

// Configured reports whether email notifications can be sent.
func (e EmailConfig) Configured() bool {
	return e.APIKey != ""
}

// RedisConfig holds Redis connection values for the optional session store.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	cfg := &Config{
		App: AppConfig{
			Name:    getEnv("APP_NAME", "lead-service"),
			Env:     getEnv("APP_ENV", "development"),
			Host:    getEnv("APP_HOST", "0.0.0.0"),
			Port:    getEnv("PORT", "5000"),
			Version: getEnv("APP_VERSION", "dev"),
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(getEnv("ALLOWED_ORIGINS",
				"http://localhost:5000,http://localhost:5173,https://www.nesthome.co.in,https://nesthome.co.in")),
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Auth: AuthConfig{
			AdminPassword:        os.Getenv("ADMIN_PASSWORD"),
			AdminDefaultPassword: getEnv("ADMIN_DEFAULT_PASSWORD", "admin123"),
		},
		Session: SessionConfig{
			TTLHours: getEnvAsInt("SESSION_TTL_HOURS", 24),
			Store:    getEnv("SESSION_STORE", "memory"),
		},
		Firebase: FirebaseConfig{
			DatabaseURL:        strings.TrimSuffix(os.Getenv("FIREBASE_DATABASE_URL"), "/"),
			ServiceAccountJSON: os.Getenv("FIREBASE_SERVICE_ACCOUNT_JSON"),
			ServiceAccountPath: os.Getenv("FIREBASE_SERVICE_ACCOUNT_PATH"),
			ClientEmail:        os.Getenv("FIREBASE_CLIENT_EMAIL"),
			PrivateKey:         unescapeKey(os.Getenv("FIREBASE_PRIVATE_KEY")),
		},
		Sheets: SheetsConfig{
			SpreadsheetID:      os.Getenv("GOOGLE_SPREADSHEET_ID"),
			ServiceAccountJSON: os.Getenv("GOOGLE_SERVICE_ACCOUNT_JSON"),
			ServiceAccountPath: os.Getenv("GOOGLE_SERVICE_ACCOUNT_PATH"),
			ClientEmail:        os.Getenv("GOOGLE_SERVICE_ACCOUNT_EMAIL"),
			PrivateKey:         unescapeKey(os.Getenv("GOOGLE_PRIVATE_KEY")),
		},
		Email: EmailConfig{
			APIKey:    os.Getenv("RESEND_API_KEY"),
			FromEmail: getEnv("RESEND_FROM_EMAIL", "noreply@yourdomain.com"),
			FromName:  getEnv("RESEND_FROM_NAME", "Nesthome"),
			To:        splitList(getEnv("RESEND_TO_EMAIL", "prakhart819@gmail.com")),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "127.0.0.1:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
	}

	return cfg, nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// TTL returns the session lifetime.
func (s SessionConfig) TTL() time.Duration {
	if s.TTLHours <= 0 {
		return 24 * time.Hour
	}
	return time.Duration(s.TTLHours) * time.Hour
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// unescapeKey converts the literal "\n" sequences PEM keys pick up in env
// files back into real newlines.
func unescapeKey(key string) string {
	return strings.ReplaceAll(key, `\n`, "\n")
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}
