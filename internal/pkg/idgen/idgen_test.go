package idgen

import (
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAt_PrefixIsMillis(t *testing.T) {
	at := time.Date(2026, 10, 19, 8, 30, 0, 0, time.UTC)
	id := NewAt(at)

	prefix := strconv.FormatInt(at.UnixMilli(), 10)
	require.True(t, strings.HasPrefix(id, prefix))
	assert.Len(t, id, len(prefix)+SuffixLength)
}

func TestNew_Distinct(t *testing.T) {
	seen := make(map[string]struct{}, 1000)
	for i := 0; i < 1000; i++ {
		id := New()
		_, dup := seen[id]
		require.False(t, dup, "duplicate id %s", id)
		seen[id] = struct{}{}
	}
}
