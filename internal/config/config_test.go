package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const minimalConfig = `
[database]
user = "app"
dbname = "diag"

[booking.working_hours]
monday = { open = "08:00", close = "18:00" }
saturday = { open = "09:00", close = "14:00" }

[zones.districts]
ME19 = { drive_minutes = 10, distance_miles = 4.0 }
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimalConfig))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.Equal(t, "Europe/London", cfg.Booking.Timezone)
	assert.Equal(t, 30, cfg.Booking.HorizonDays)
	assert.Equal(t, 30, cfg.Booking.SlotStepMinutes)
	assert.Equal(t, 1, cfg.Booking.MaxConcurrentBookings)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.Equal(t, 10, cfg.Zones.Districts["ME19"].DriveMinutes)
}

func TestLoad_WorkingHours(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimalConfig))
	require.NoError(t, err)

	hours, ok := cfg.Booking.HoursFor(time.Monday)
	require.True(t, ok)
	assert.Equal(t, "08:00", hours.Open.String())
	assert.Equal(t, "18:00", hours.Close.String())

	_, ok = cfg.Booking.HoursFor(time.Sunday)
	assert.False(t, ok)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("DB_PASSWORD", "from-env")
	t.Setenv("STRIPE_SECRET_KEY", "sk_test_env")

	cfg, err := Load(writeConfig(t, minimalConfig))
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Database.Password)
	assert.Equal(t, "sk_test_env", cfg.Payments.SecretKey)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"bad timezone", "[booking]\ntimezone = \"Mars/Olympus\"\n"},
		{"unknown weekday", "[booking.working_hours]\nfunday = { open = \"08:00\", close = \"18:00\" }\n"},
		{"zones not increasing", "[zones]\na_max_minutes = 50\nb_max_minutes = 40\nc_max_minutes = 60\n"},
		{"payments without key", "[payments]\nenabled = true\ndeposit_gbp = 30\n"},
		{"short admin secret", "[admin]\nsession_secret = \"short\"\n[[admin.users]]\nusername = \"a\"\npassword_hash = \"x\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestLoad_BadTimeFormat(t *testing.T) {
	_, err := Load(writeConfig(t, "[booking.working_hours]\nmonday = { open = \"8am\", close = \"18:00\" }\n"))
	assert.Error(t, err)
}

func TestDatabaseConfig_URL(t *testing.T) {
	d := DatabaseConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss", DBName: "diag", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss@db:5432/diag?sslmode=disable", d.URL())
	assert.Contains(t, d.DSN(), "dbname=diag")
}
