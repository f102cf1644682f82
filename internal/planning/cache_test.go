package planning

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/batiplan/batiplan/internal/model"
)

func TestWeekKeyOf(t *testing.T) {
	l := mustLoc(t)
	// every day Monday through Sunday maps to the Monday of its ISO week
	for d := 2; d <= 8; d++ {
		assert.Equal(t, "2025-06-02", WeekKeyOf(at(l, 2025, time.June, d, 10, 0)), "day %d", d)
	}
	assert.Equal(t, "2025-06-09", WeekKeyOf(at(l, 2025, time.June, 9, 10, 0)))
}

func TestWeekCachePutGet(t *testing.T) {
	c := NewWeekCache()
	tasks := []model.PlanningTask{{ID: "t1", Title: "Pose carrelage"}}
	c.Put("2025-06-02", tasks)

	got, ok := c.Get("2025-06-02")
	require.True(t, ok)
	require.Len(t, got, 1)
	assert.Equal(t, "t1", got[0].ID)

	// returned slice is a copy
	got[0].Title = "changed"
	got2, _ := c.Get("2025-06-02")
	assert.Equal(t, "Pose carrelage", got2[0].Title)

	_, ok = c.Get("2025-06-09")
	assert.False(t, ok)
}

func TestWeekCacheInvalidateTask(t *testing.T) {
	c := NewWeekCache()
	c.Put("2025-06-02", []model.PlanningTask{{ID: "t1"}})
	c.Put("2025-06-09", []model.PlanningTask{{ID: "t2"}})

	c.InvalidateTask("t1")
	_, ok := c.Get("2025-06-02")
	assert.False(t, ok)
	_, ok = c.Get("2025-06-09")
	assert.True(t, ok)

	// unknown id drops nothing
	c.InvalidateTask("nope")
	_, ok = c.Get("2025-06-09")
	assert.True(t, ok)
}

func TestWeekCacheInvalidateWeekAndAll(t *testing.T) {
	l := mustLoc(t)
	c := NewWeekCache()
	c.Put("2025-06-02", []model.PlanningTask{{ID: "t1"}})
	c.Put("2025-06-09", []model.PlanningTask{{ID: "t2"}})

	c.InvalidateWeek(at(l, 2025, time.June, 4, 0, 0))
	_, ok := c.Get("2025-06-02")
	assert.False(t, ok)

	c.InvalidateAll()
	_, ok = c.Get("2025-06-09")
	assert.False(t, ok)
}
