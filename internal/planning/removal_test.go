package planning

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRemoveDaySingleDayTask(t *testing.T) {
	l := mustLoc(t)
	start := at(l, 2025, time.June, 2, 7, 30)
	end := at(l, 2025, time.June, 2, 16, 30)

	removal, err := RemoveDay(start, end, at(l, 2025, time.June, 2, 0, 0))
	require.NoError(t, err)
	assert.Equal(t, RemovalDelete, removal.Kind)
}

func TestRemoveDayFirstDay(t *testing.T) {
	l := mustLoc(t)
	start := at(l, 2025, time.June, 2, 7, 30)
	end := at(l, 2025, time.June, 4, 16, 30)

	removal, err := RemoveDay(start, end, at(l, 2025, time.June, 2, 0, 0))
	require.NoError(t, err)
	assert.Equal(t, RemovalShrink, removal.Kind)
	assert.Equal(t, at(l, 2025, time.June, 3, 7, 30), removal.Start)
	assert.Equal(t, end, removal.End)
}

func TestRemoveDayLastDay(t *testing.T) {
	l := mustLoc(t)
	start := at(l, 2025, time.June, 2, 7, 30)
	end := at(l, 2025, time.June, 4, 16, 30)

	removal, err := RemoveDay(start, end, at(l, 2025, time.June, 4, 0, 0))
	require.NoError(t, err)
	assert.Equal(t, RemovalShrink, removal.Kind)
	assert.Equal(t, start, removal.Start)
	assert.Equal(t, at(l, 2025, time.June, 3, 16, 30), removal.End)
}

func TestRemoveDayMiddleSplits(t *testing.T) {
	l := mustLoc(t)
	start := at(l, 2025, time.June, 2, 7, 30)
	end := at(l, 2025, time.June, 6, 16, 30)

	removal, err := RemoveDay(start, end, at(l, 2025, time.June, 4, 0, 0))
	require.NoError(t, err)
	assert.Equal(t, RemovalSplit, removal.Kind)
	assert.Equal(t, start, removal.Start)
	assert.Equal(t, at(l, 2025, time.June, 3, 16, 30), removal.End)
	assert.Equal(t, at(l, 2025, time.June, 5, 7, 30), removal.TailStart)
	assert.Equal(t, end, removal.TailEnd)
}

func TestRemoveDayKeepsSegmentClockTimes(t *testing.T) {
	l := mustLoc(t)
	// morning-only task across two days
	start := at(l, 2025, time.June, 2, 7, 30)
	end := at(l, 2025, time.June, 3, 12, 0)

	removal, err := RemoveDay(start, end, at(l, 2025, time.June, 2, 0, 0))
	require.NoError(t, err)
	assert.Equal(t, RemovalShrink, removal.Kind)
	assert.Equal(t, at(l, 2025, time.June, 3, 7, 30), removal.Start)
}

func TestRemoveDayOutsideCoverage(t *testing.T) {
	l := mustLoc(t)
	start := at(l, 2025, time.June, 2, 7, 30)
	end := at(l, 2025, time.June, 4, 16, 30)

	_, err := RemoveDay(start, end, at(l, 2025, time.June, 10, 0, 0))
	assert.Error(t, err)
	_, err = RemoveDay(start, end, at(l, 2025, time.May, 30, 0, 0))
	assert.Error(t, err)
}

func TestRemoveDayInvalidRange(t *testing.T) {
	l := mustLoc(t)
	start := at(l, 2025, time.June, 2, 16, 30)
	end := at(l, 2025, time.June, 2, 7, 30)
	_, err := RemoveDay(start, end, at(l, 2025, time.June, 2, 0, 0))
	assert.Error(t, err)
}
