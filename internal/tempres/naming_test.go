package tempres

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewNameIsParseable(t *testing.T) {
	now := time.Unix(1700000000, 123456789)

	name, err := newName("my-task", ".txt", now)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(name, "my-task-1700000000123456789-"))

	parsed, ok := ParseName(name)
	require.True(t, ok)
	assert.Equal(t, "my-task", parsed.Prefix)
	assert.True(t, now.Equal(parsed.CreatedAt))
	assert.Len(t, parsed.Random, randomBytes*2)
	assert.Equal(t, ".txt", parsed.Suffix)
}

func TestNewNameWithDashedPartsIsParseable(t *testing.T) {
	now := time.Unix(1700000000, 42)

	tests := []struct {
		prefix string
		suffix string
	}{
		{prefix: "task", suffix: "-v1.json"},
		{prefix: "build-2024", suffix: "-1-2"},
		{prefix: "a-b-c", suffix: "-abc"},
		{prefix: "release", suffix: "-deadbeef.tar.gz"},
	}

	for _, tt := range tests {
		t.Run(tt.prefix+tt.suffix, func(t *testing.T) {
			require.NoError(t, validateNamePart("suffix", tt.suffix))

			name, err := newName(tt.prefix, tt.suffix, now)
			require.NoError(t, err)

			parsed, ok := ParseName(name)
			require.True(t, ok, "expected %q to parse", name)
			assert.Equal(t, tt.prefix, parsed.Prefix)
			assert.Equal(t, tt.suffix, parsed.Suffix)
			assert.True(t, now.Equal(parsed.CreatedAt))
		})
	}
}

func TestNewNameRandomPart(t *testing.T) {
	now := time.Now()

	a, err := newName("p", "", now)
	require.NoError(t, err)
	b, err := newName("p", "", now)
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestParseNameRejectsForeignNames(t *testing.T) {
	names := []string{
		"",
		"README.md",
		"notes-2024",
		"task-abc-0123456789abcdef",
		"task-1700000000-0123",
		"task-1700000000-zzzzzzzzzzzzzzzz",
		"-1700000000-0123456789abcdef",
		"task--0123456789abcdef",
	}

	for _, name := range names {
		_, ok := ParseName(name)
		assert.False(t, ok, "expected %q to be rejected", name)
	}
}

func TestValidateNamePart(t *testing.T) {
	assert.NoError(t, validateNamePart("prefix", "build-cache"))
	assert.NoError(t, validateNamePart("suffix", ".tar.gz"))
	assert.ErrorIs(t, validateNamePart("prefix", ".."), ErrInvalidRequest)
	assert.ErrorIs(t, validateNamePart("prefix", "a/b"), ErrInvalidRequest)
	assert.NoError(t, validateNamePart("suffix", "-v1.json"))
	assert.ErrorIs(t, validateNamePart("suffix", "-0123456789abcdef"), ErrInvalidRequest)
	assert.NoError(t, validateNamePart("prefix", "x-0123456789abcdef"))
}
