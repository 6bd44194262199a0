package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetEnv(t *testing.T) {
	// Test case 1: Check if an existing environment variable is retrieved
	expectedValue := "test value"
	t.Setenv("TEST_KEY", expectedValue)

	actualValue := GetEnv("TEST_KEY", "fallback")
	if actualValue != expectedValue {
		t.Errorf("expected value to be [%s], but got [%s]", expectedValue, actualValue)
	}

	// Test case 2: Check if a missing environment variable falls back to the default value
	expectedValue = "fallback"
	actualValue = GetEnv("MISSING_KEY", expectedValue)
	if actualValue != expectedValue {
		t.Errorf("expected value to be [%s], but got [%s]", expectedValue, actualValue)
	}
}

func TestSetEnv(t *testing.T) {
	tests := []struct {
		name     string
		env      []string
		expected []string
	}{
		{
			name:     "appends new key",
			env:      []string{"HOME=/root"},
			expected: []string{"HOME=/root", "TMPGUARD_PATH=/tmp/x"},
		},
		{
			name:     "replaces existing key",
			env:      []string{"TMPGUARD_PATH=/old", "HOME=/root", "TMPGUARD_PATH=/older"},
			expected: []string{"HOME=/root", "TMPGUARD_PATH=/tmp/x"},
		},
		{
			name:     "keeps keys sharing a prefix",
			env:      []string{"TMPGUARD_PATHS=a"},
			expected: []string{"TMPGUARD_PATHS=a", "TMPGUARD_PATH=/tmp/x"},
		},
		{
			name:     "nil env",
			env:      nil,
			expected: []string{"TMPGUARD_PATH=/tmp/x"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			original := append([]string(nil), tt.env...)

			assert.Equal(t, tt.expected, SetEnv(tt.env, "TMPGUARD_PATH", "/tmp/x"))
			assert.Equal(t, original, tt.env)
		})
	}
}
