package idgen

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// SuffixLength is the number of random characters appended to the timestamp
const SuffixLength = 9

// New generates a record ID from the current time
func New() string {
	return NewAt(time.Now())
}

// NewAt generates a record ID: unix milliseconds followed by a random suffix.
// Collisions are not checked anywhere.
func NewAt(t time.Time) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:SuffixLength]
	return strconv.FormatInt(t.UnixMilli(), 10) + suffix
}
