package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "lead-service", cfg.App.Name)
	assert.Equal(t, "5000", cfg.App.Port)
	assert.Equal(t, "0.0.0.0:5000", cfg.App.Addr())
	assert.Equal(t, "info", cfg.Logger.Level)
	assert.Equal(t, "admin123", cfg.Auth.AdminDefaultPassword)
	assert.Equal(t, 24, cfg.Session.TTLHours)
	assert.Equal(t, "memory", cfg.Session.Store)
	assert.Contains(t, cfg.CORS.AllowedOrigins, "http://localhost:5173")
	assert.Contains(t, cfg.CORS.AllowedOrigins, "https://nesthome.co.in")
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("SESSION_TTL_HOURS", "1")
	t.Setenv("SESSION_STORE", "redis")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, https://b.example ,")
	t.Setenv("FIREBASE_DATABASE_URL", "https://db.firebaseio.com/")
	t.Setenv("GOOGLE_PRIVATE_KEY", `-----BEGIN\nkey\nEND-----`)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, 1, cfg.Session.TTLHours)
	assert.Equal(t, time.Hour, cfg.Session.TTL())
	assert.Equal(t, "redis", cfg.Session.Store)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, "https://db.firebaseio.com", cfg.Firebase.DatabaseURL, "trailing slash trimmed")
	assert.Equal(t, "-----BEGIN\nkey\nEND-----", cfg.Sheets.PrivateKey, "escaped newlines expanded")
}

func TestSessionTTLFallback(t *testing.T) {
	assert.Equal(t, 24*time.Hour, SessionConfig{TTLHours: 0}.TTL())
	assert.Equal(t, 24*time.Hour, SessionConfig{TTLHours: -5}.TTL())
	assert.Equal(t, 48*time.Hour, SessionConfig{TTLHours: 48}.TTL())
}

func TestInvalidTTLFallsBackToDefault(t *testing.T) {
	t.Setenv("SESSION_TTL_HOURS", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 24, cfg.Session.TTLHours)
}

func TestInvalidRedisDBRejected(t *testing.T) {
	t.Setenv("REDIS_DB", "not-a-number")

	_, err := Load()
	assert.Error(t, err)
}

func TestFirebaseConfigured(t *testing.T) {
	assert.False(t, FirebaseConfig{}.Configured())
	assert.False(t, FirebaseConfig{DatabaseURL: "https://db"}.Configured())
	assert.False(t, FirebaseConfig{ServiceAccountJSON: "{}"}.Configured(), "database url required")
	assert.True(t, FirebaseConfig{DatabaseURL: "https://db", ServiceAccountJSON: "{}"}.Configured())
	assert.True(t, FirebaseConfig{DatabaseURL: "https://db", ServiceAccountPath: "/sa.json"}.Configured())
	assert.True(t, FirebaseConfig{DatabaseURL: "https://db", ClientEmail: "a@b", PrivateKey: "k"}.Configured())
	assert.False(t, FirebaseConfig{DatabaseURL: "https://db", ClientEmail: "a@b"}.Configured(), "key required with email")
}

func TestSheetsConfigured(t *testing.T) {
	assert.False(t, SheetsConfig{}.Configured())
	assert.False(t, SheetsConfig{SpreadsheetID: "sheet"}.Configured())
	assert.True(t, SheetsConfig{SpreadsheetID: "sheet", ServiceAccountJSON: "{}"}.Configured())
	assert.True(t, SheetsConfig{SpreadsheetID: "sheet", ClientEmail: "a@b", PrivateKey: "k"}.Configured())
}

func TestEmailConfigured(t *testing.T) {
	assert.False(t, EmailConfig{}.Configured())
	assert.True(t, EmailConfig{APIKey: "re_123"}.Configured())
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, splitList("a,b"))
	assert.Equal(t, []string{"a", "b"}, splitList(" a , b "))
	assert.Empty(t, splitList(""))
	assert.Empty(t, splitList(" , ,"))
}
