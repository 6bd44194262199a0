package tempres

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const randomBytes = 8

// newName builds <prefix>-<unix-nanos>-<random><suffix>.
func newName(prefix, suffix string, now time.Time) (string, error) {
	buf := make([]byte, randomBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate random suffix: %w", err)
	}
	return fmt.Sprintf("%s-%d-%s%s", prefix, now.UnixNano(), hex.EncodeToString(buf), suffix), nil
}

// validateNamePart rejects fragments that could move the resource out of its
// base directory. A suffix also may not embed a dash followed by a random-like
// hex run, which would make the name ambiguous to ParseName.
func validateNamePart(field, value string) error {
	if strings.ContainsAny(value, `/\`) || strings.Contains(value, "..") || strings.ContainsRune(value, 0) {
		return fmt.Errorf("%w: %s %q must not contain path separators or '..'", ErrInvalidRequest, field, value)
	}
	if field == "suffix" {
		for i := 0; i < len(value); i++ {
			if value[i] == '-' && isRandomPart(value[i+1:]) {
				return fmt.Errorf("%w: suffix %q must not contain a dash followed by %d hex characters", ErrInvalidRequest, value, randomBytes*2)
			}
		}
	}
	return nil
}

// isRandomPart reports whether s starts with a lowercase hex run of the
// random part's length.
func isRandomPart(s string) bool {
	if len(s) < randomBytes*2 {
		return false
	}
	for _, c := range s[:randomBytes*2] {
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}

// ParsedName holds the components of a generated resource name.
type ParsedName struct {
	Prefix    string
	CreatedAt time.Time
	Random    string
	Suffix    string
}

// ParseName splits a base name produced by a Guard. It reports false for
// names that do not follow the scheme, which callers must leave alone.
func ParseName(name string) (ParsedName, bool) {
	// Both prefix and suffix may contain dashes. The random part is the
	// rightmost dash-led hex run preceded by a dash-led timestamp.
	for last := strings.LastIndex(name, "-"); last > 0; last = strings.LastIndex(name[:last], "-") {
		if !isRandomPart(name[last+1:]) {
			continue
		}

		head := name[:last]
		mid := strings.LastIndex(head, "-")
		if mid <= 0 {
			continue
		}
		nanos, err := strconv.ParseInt(head[mid+1:], 10, 64)
		if err != nil || nanos <= 0 {
			continue
		}

		tail := name[last+1:]
		return ParsedName{
			Prefix:    head[:mid],
			CreatedAt: time.Unix(0, nanos),
			Random:    tail[:randomBytes*2],
			Suffix:    tail[randomBytes*2:],
		}, true
	}

	return ParsedName{}, false
}
