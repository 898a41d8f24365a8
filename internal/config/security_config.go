package config

import (
	"strconv"
	"time"
)

type SecurityConfig interface {
	GetIdleTimeout() time.Duration
	GetOTPDigits() int
	GetPINLength() int
}

type Security struct{}

var _ SecurityConfig = Security{}

// GetIdleTimeout returns the quiet period after which the step-up gate
// is forced. The session token survives the lock.
func (Security) GetIdleTimeout() time.Duration {
	return getDurationEnv("IDLE_TIMEOUT", 10*time.Minute)
}

func (Security) GetOTPDigits() int {
	value := GetEnv("OTP_DIGITS", "")
	if value == "" {
		return 6
	}
	digits, err := strconv.Atoi(value)
	if err != nil || digits < 4 || digits > 10 {
		return 6
	}
	return digits
}

func (Security) GetPINLength() int {
	return 4 // Fixed by the backend contract
}
