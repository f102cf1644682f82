package planning

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTaskRef(t *testing.T) {
	tests := []struct {
		raw      string
		wantID   string
		wantDate string
	}{
		{"abc123-2025-03-17", "abc123", "2025-03-17"},
		{"a-b-2025-03-17", "a-b", "2025-03-17"},
		{"550e8400-e29b-41d4-a716-446655440000-2025-12-31", "550e8400-e29b-41d4-a716-446655440000", "2025-12-31"},
		{"550e8400-e29b-41d4-a716-446655440000", "550e8400-e29b-41d4-a716-446655440000", ""},
		{"abc123", "abc123", ""},
		// month 13 does not parse, stays a whole-task id
		{"task-2025-13-17", "task-2025-13-17", ""},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			ref := ParseTaskRef(tt.raw)
			assert.Equal(t, tt.wantID, ref.TaskID)
			assert.Equal(t, tt.wantDate, ref.Date)
			assert.Equal(t, tt.wantDate != "", ref.IsSlice())
			assert.Equal(t, tt.raw, ref.SyntheticID())
		})
	}
}

func TestTaskRefDay(t *testing.T) {
	l := mustLoc(t)
	ref := ParseTaskRef("abc123-2025-03-17")
	require.True(t, ref.IsSlice())
	day, err := ref.Day(l)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, time.March, 17, 0, 0, 0, 0, l), day)
}
