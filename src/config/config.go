package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

func GetDSN() string {
	DATABASE_HOST := os.Getenv("DATABASE_HOST")
	DATABASE_PORT := os.Getenv("DATABASE_PORT")
	DATABASE_SSLMODE := os.Getenv("DATABASE_SSLMODE")
	DATABASE_TIMEZONE := os.Getenv("DATABASE_TIMEZONE")
	DATABASE_USER := os.Getenv("DATABASE_USER")
	DATABASE_PASSWORD := os.Getenv("DATABASE_PASSWORD")
	DATABASE_NAME := os.Getenv("DATABASE_NAME")
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s", DATABASE_HOST, DATABASE_USER, DATABASE_PASSWORD, DATABASE_NAME, DATABASE_PORT, DATABASE_SSLMODE, DATABASE_TIMEZONE)
	return dsn
}

const (
	DEFAULT_CURRENCY = "NGN"

	// Fallbacks when the environment does not override the sweeper cadence.
	DEFAULT_ALLOCATION_TIMEOUT_MINUTES = 60
	DEFAULT_SWEEP_INTERVAL_MINUTES     = 5
)

func minutesFromEnv(key string, fallback int) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return time.Duration(fallback) * time.Minute
	}
	mins, err := strconv.Atoi(v)
	if err != nil || mins <= 0 {
		return time.Duration(fallback) * time.Minute
	}
	return time.Duration(mins) * time.Minute
}

// AllocationTimeout is how long a PENDING allocation may wait for a webhook
// before the sweeper reclaims it.
func AllocationTimeout() time.Duration {
	return minutesFromEnv("ALLOCATION_TIMEOUT_MINUTES", DEFAULT_ALLOCATION_TIMEOUT_MINUTES)
}

// SweepInterval is the cadence of the expiry sweeper job.
func SweepInterval() time.Duration {
	return minutesFromEnv("SWEEP_INTERVAL_MINUTES", DEFAULT_SWEEP_INTERVAL_MINUTES)
}

func KorapayBaseURL() string {
	return os.Getenv("KORAPAY_BASE_URL")
}

func KorapaySecretKey() string {
	return os.Getenv("KORAPAY_SECRET_KEY")
}

func BillingNotificationURL() string {
	return fmt.Sprintf("%s/api/v1/billing/verify", os.Getenv("API_HOST"))
}

func BillingRedirectURL() string {
	return fmt.Sprintf("%s/dashboard", os.Getenv("APP_HOST"))
}
