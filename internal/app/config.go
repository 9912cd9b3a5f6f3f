package app

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"go-timeclock/internal/schedule"
)

// Config memuat dua hal yang harus eksplisit di seluruh perhitungan:
// timezone deployment dan jadwal default sistem. Keduanya dibaca sekali
// di sini lalu dioper sebagai nilai, tidak ada global tersembunyi.
type Config struct {
	Timezone         *time.Location
	ScheduleDefaults schedule.Defaults
}

func LoadConfig() (Config, error) {
	tzName := os.Getenv("APP_TIMEZONE")
	if tzName == "" {
		tzName = "Asia/Jakarta"
	}
	loc, err := time.LoadLocation(tzName)
	if err != nil {
		return Config{}, fmt.Errorf("invalid APP_TIMEZONE %q: %w", tzName, err)
	}

	defaults := schedule.Defaults{
		StartTime:     envOr("SCHEDULE_DEFAULT_START", "09:00"),
		EndTime:       envOr("SCHEDULE_DEFAULT_END", "17:00"),
		ExpectedHours: 8.0,
	}
	if raw := os.Getenv("SCHEDULE_DEFAULT_HOURS"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil || parsed <= 0 || parsed > 24 {
			return Config{}, fmt.Errorf("invalid SCHEDULE_DEFAULT_HOURS %q", raw)
		}
		defaults.ExpectedHours = parsed
	}
	if _, err := time.Parse("15:04", defaults.StartTime); err != nil {
		return Config{}, fmt.Errorf("invalid SCHEDULE_DEFAULT_START %q", defaults.StartTime)
	}
	if _, err := time.Parse("15:04", defaults.EndTime); err != nil {
		return Config{}, fmt.Errorf("invalid SCHEDULE_DEFAULT_END %q", defaults.EndTime)
	}

	return Config{Timezone: loc, ScheduleDefaults: defaults}, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
