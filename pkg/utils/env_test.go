package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetEnv(t *testing.T) {
	t.Setenv("STATUSBOARD_TEST_VAR", "env_value")

	assert.Equal(t, "env_value", GetEnv("STATUSBOARD_TEST_VAR", "default"))
	assert.Equal(t, "default", GetEnv("STATUSBOARD_TEST_VAR_NOT_SET", "default"))

	t.Setenv("STATUSBOARD_TEST_EMPTY", "")
	assert.Equal(t, "default", GetEnv("STATUSBOARD_TEST_EMPTY", "default"))
}

func TestGetEnvInt(t *testing.T) {
	tests := []struct {
		name     string
		envValue string
		expected int
	}{
		{"valid integer", "42", 42},
		{"negative integer", "-3", -3},
		{"invalid integer", "forty-two", 7},
		{"empty", "", 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("STATUSBOARD_TEST_INT", tt.envValue)
			assert.Equal(t, tt.expected, GetEnvInt("STATUSBOARD_TEST_INT", 7))
		})
	}
}

func TestGetEnvDuration(t *testing.T) {
	tests := []struct {
		name     string
		envValue string
		expected time.Duration
	}{
		{"seconds", "10s", 10 * time.Second},
		{"minutes", "2m", 2 * time.Minute},
		{"days", "1d", 24 * time.Hour},
		{"bare number is seconds", "30", 30 * time.Second},
		{"invalid", "invalid", 5 * time.Second},
		{"empty", "", 5 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("STATUSBOARD_TEST_DURATION", tt.envValue)
			assert.Equal(t, tt.expected, GetEnvDuration("STATUSBOARD_TEST_DURATION", 5*time.Second))
		})
	}
}
