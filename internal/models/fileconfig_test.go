package models

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileConfig_Validate(t *testing.T) {
	// Test case 1: Empty config is valid
	cfg := &FileConfig{}
	assert.NoError(t, cfg.Validate())

	// Test case 2: Fully populated config
	cfg = &FileConfig{Kind: "directory", Prefix: "build", Scope: "repository", StaleAfter: "2h"}
	assert.NoError(t, cfg.Validate())

	// Test case 3: Unknown kind
	cfg = &FileConfig{Kind: "socket"}
	err := cfg.Validate()
	assert.True(t, errors.Is(err, UnknownKindError), "Expected validation error: %v, but got: %v", UnknownKindError, err)

	// Test case 4: Unknown scope
	cfg = &FileConfig{Scope: "global"}
	assert.ErrorIs(t, cfg.Validate(), UnknownScopeError)

	// Test case 5: Broken duration
	cfg = &FileConfig{StaleAfter: "yesterday"}
	assert.ErrorIs(t, cfg.Validate(), InvalidStaleAfterError)
}

func TestFileConfig_StaleAfterDuration(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		expected time.Duration
		wantErr  bool
	}{
		{name: "unset", value: "", expected: 0},
		{name: "hours", value: "36h", expected: 36 * time.Hour},
		{name: "negative", value: "-1h", wantErr: true},
		{name: "zero", value: "0s", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := FileConfig{StaleAfter: tt.value}
			d, err := cfg.StaleAfterDuration()
			if tt.wantErr {
				require.ErrorIs(t, err, InvalidStaleAfterError)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, d)
		})
	}
}
