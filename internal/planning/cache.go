package planning

import (
	"sync"
	"time"

	"github.com/batiplan/batiplan/internal/model"
	"github.com/batiplan/batiplan/pkg/utils"
)

// WeekCache keeps per-week task snapshots so the calendar grid does not hit
// the store on every render. Mutations invalidate only the weeks holding the
// touched task instead of flushing everything.
type WeekCache struct {
	mu    sync.RWMutex
	weeks map[string]*weekEntry
}

type weekEntry struct {
	tasks     []model.PlanningTask
	ids       map[string]struct{}
	fetchedAt time.Time
}

func NewWeekCache() *WeekCache {
	return &WeekCache{weeks: make(map[string]*weekEntry)}
}

// WeekKeyOf returns the ISO date of the Monday of day's week.
func WeekKeyOf(day time.Time) string {
	offset := (int(day.Weekday()) + 6) % 7
	y, m, d := day.AddDate(0, 0, -offset).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, day.Location()).Format(refDateLayout)
}

// cloneTasks deep-copies a snapshot so cached rows and their assignment
// slices are never shared with callers.
func cloneTasks(tasks []model.PlanningTask) []model.PlanningTask {
	data, err := utils.Json.Marshal(tasks)
	if err != nil {
		return append([]model.PlanningTask(nil), tasks...)
	}
	out := make([]model.PlanningTask, 0, len(tasks))
	if err := utils.Json.Unmarshal(data, &out); err != nil {
		return append([]model.PlanningTask(nil), tasks...)
	}
	return out
}

// Get returns a copy of the cached snapshot for key, if present.
func (c *WeekCache) Get(key string) ([]model.PlanningTask, bool) {
	c.mu.RLock()
	entry, ok := c.weeks[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}
	return cloneTasks(entry.tasks), true
}

func (c *WeekCache) Put(key string, tasks []model.PlanningTask) {
	entry := &weekEntry{
		tasks:     cloneTasks(tasks),
		ids:       make(map[string]struct{}, len(tasks)),
		fetchedAt: time.Now(),
	}
	for i := range tasks {
		entry.ids[tasks[i].ID] = struct{}{}
	}
	c.mu.Lock()
	c.weeks[key] = entry
	c.mu.Unlock()
}

// InvalidateTask drops every cached week containing taskID. Unknown ids drop
// nothing, so callers invalidate unconditionally after mutations.
func (c *WeekCache) InvalidateTask(taskID string) {
	c.mu.Lock()
	for key, entry := range c.weeks {
		if _, ok := entry.ids[taskID]; ok {
			delete(c.weeks, key)
		}
	}
	c.mu.Unlock()
}

// InvalidateWeek drops the snapshot holding day, used after creations where
// the new task is by definition in no snapshot yet.
func (c *WeekCache) InvalidateWeek(day time.Time) {
	key := WeekKeyOf(day)
	c.mu.Lock()
	delete(c.weeks, key)
	c.mu.Unlock()
}

func (c *WeekCache) InvalidateAll() {
	c.mu.Lock()
	c.weeks = make(map[string]*weekEntry)
	c.mu.Unlock()
}
