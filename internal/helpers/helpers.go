package helpers

import (
	"os"
	"strings"
)

func GetEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

// SetEnv returns a copy of env with key set to value, replacing any earlier
// assignment of the same key.
func SetEnv(env []string, key, value string) []string {
	prefix := key + "="

	result := make([]string, 0, len(env)+1)
	for _, entry := range env {
		if strings.HasPrefix(entry, prefix) {
			continue
		}
		result = append(result, entry)
	}

	return append(result, prefix+value)
}
