package utils

import (
	"time"

	"solace/config"
)

const (
	// DateLayout is the wire and storage format for calendar dates.
	DateLayout = "2006-01-02"
	// TimeLayout is the wire and storage format for times of day.
	TimeLayout = "15:04"
)

// IsProduction reports whether the server runs with production config.
func IsProduction() bool {
	return config.IsProduction()
}

// HoldTTL returns how long a pending booking's stock hold counts against
// availability before it is treated as expired.
func HoldTTL() time.Duration {
	minutes := config.AppConfig.HoldTTLMinutes
	if minutes <= 0 {
		minutes = 15
	}
	return time.Duration(minutes) * time.Minute
}
