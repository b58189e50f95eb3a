package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_DefaultsAndEnv(t *testing.T) {
	t.Setenv("FANBOARD_CLUB_WEEKLY_TARGET", "700")
	t.Setenv("FANBOARD_NOTIFY_WEBHOOK_URL", "https://example.invalid/hook")

	require.NoError(t, LoadConfig())

	assert.Equal(t, DriverSQLite, Cfg.DB.Driver)
	assert.Equal(t, "club_data.db", Cfg.DB.DSN)
	assert.Equal(t, "0 0 8 * * *", Cfg.Schedule.Spec)
	assert.Equal(t, ArchiveFS, Cfg.Archive.Driver)
	assert.Equal(t, int64(700), Cfg.Club.WeeklyTarget)
	assert.Equal(t, "https://example.invalid/hook", Cfg.Notify.WebhookURL)
}

func validConfig() *Config {
	return &Config{
		DB:       DBConfig{Driver: DriverSQLite, DSN: "club.db"},
		Archive:  ArchiveConfig{Driver: ArchiveFS, Dir: "history"},
		Schedule: ScheduleConfig{Timezone: "UTC"},
		Club:     ClubConfig{WeeklyTarget: 3_000_000},
	}
}

func TestValidate(t *testing.T) {
	assert.NoError(t, validConfig().Validate())

	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"unknown db driver", func(c *Config) { c.DB.Driver = "postgres" }},
		{"empty dsn", func(c *Config) { c.DB.DSN = "" }},
		{"minio without bucket", func(c *Config) { c.Archive.Driver = ArchiveMinIO; c.MinIO.Endpoint = "localhost:9000" }},
		{"unknown archive driver", func(c *Config) { c.Archive.Driver = "s3" }},
		{"negative target", func(c *Config) { c.Club.WeeklyTarget = -1 }},
		{"bad timezone", func(c *Config) { c.Schedule.Timezone = "Mars/Olympus" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validConfig()
			tt.mutate(c)
			assert.Error(t, c.Validate())
		})
	}
}
