package planning

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/batiplan/batiplan/internal/model"
)

type fakeStore struct {
	created  []*model.PlanningTask
	failDays map[string]bool
	overlaps int64
	checks   int
}

func (s *fakeStore) CreateTask(ctx context.Context, t *model.PlanningTask) error {
	if s.failDays[t.Start.Format("2006-01-02")] {
		return errors.New("store rejected")
	}
	cp := *t
	s.created = append(s.created, &cp)
	return nil
}

func (s *fakeStore) CountOverlappingAssignments(ctx context.Context, ouvrierIDs, sousTraitantIDs []uint, start, end time.Time) (int64, error) {
	s.checks++
	return s.overlaps, nil
}

func createdDays(s *fakeStore) []string {
	days := make([]string, 0, len(s.created))
	for _, t := range s.created {
		days = append(days, t.Start.Format("2006-01-02"))
	}
	return days
}

func TestExpandDaysSkipsSundays(t *testing.T) {
	l := mustLoc(t)
	// Friday anchor, four days: Fri, Sat, Mon (Sunday excluded)
	days := ExpandDays(at(l, 2025, time.June, 6, 0, 0), 4)
	require.Len(t, days, 3)
	assert.Equal(t, time.Friday, days[0].Weekday())
	assert.Equal(t, time.Saturday, days[1].Weekday())
	assert.Equal(t, time.Monday, days[2].Weekday())
	assert.Equal(t, "2025-06-09", days[2].Format("2006-01-02"))
}

func TestMaterializeMondaySixDays(t *testing.T) {
	l := mustLoc(t)
	store := &fakeStore{}
	m := NewMaterializer(store, OverbookingAllow)

	res, err := m.Materialize(context.Background(), MaterializeRequest{
		Title:        "Pose carrelage",
		Anchor:       at(l, 2025, time.June, 2, 0, 0),
		Segment:      SegmentFull,
		DurationDays: 6,
	})
	require.NoError(t, err)
	assert.Equal(t, 6, res.Created)
	assert.Equal(t, []string{"2025-06-02", "2025-06-03", "2025-06-04", "2025-06-05", "2025-06-06", "2025-06-07"}, createdDays(store))
	assert.Equal(t, store.created[0].ID, res.FirstTaskID)
}

func TestMaterializeSevenDaysSkipsSunday(t *testing.T) {
	l := mustLoc(t)
	store := &fakeStore{}
	m := NewMaterializer(store, OverbookingAllow)

	res, err := m.Materialize(context.Background(), MaterializeRequest{
		Title:        "Pose carrelage",
		Anchor:       at(l, 2025, time.June, 2, 0, 0),
		Segment:      SegmentFull,
		DurationDays: 7,
	})
	require.NoError(t, err)
	// seven calendar days, six requests: Sunday 06-08 skipped
	assert.Equal(t, 6, res.Created)
	assert.NotContains(t, createdDays(store), "2025-06-08")
}

func TestMaterializeSegmentWindows(t *testing.T) {
	l := mustLoc(t)
	store := &fakeStore{}
	m := NewMaterializer(store, OverbookingAllow)

	_, err := m.Materialize(context.Background(), MaterializeRequest{
		Title:   "Réunion chantier",
		Anchor:  at(l, 2025, time.June, 2, 0, 0),
		Segment: SegmentAM,
	})
	require.NoError(t, err)
	require.Len(t, store.created, 1)
	assert.Equal(t, at(l, 2025, time.June, 2, 7, 30), store.created[0].Start)
	assert.Equal(t, at(l, 2025, time.June, 2, 12, 0), store.created[0].End)
	assert.Equal(t, model.StatusPrevu, store.created[0].Status)
}

func TestMaterializeDedupesAssignments(t *testing.T) {
	l := mustLoc(t)
	store := &fakeStore{}
	m := NewMaterializer(store, OverbookingAllow)

	_, err := m.Materialize(context.Background(), MaterializeRequest{
		Title:           "Coffrage",
		Anchor:          at(l, 2025, time.June, 2, 0, 0),
		Segment:         SegmentFull,
		OuvrierIDs:      []uint{3, 1, 3, 2},
		SousTraitantIDs: []uint{5, 5},
	})
	require.NoError(t, err)
	require.Len(t, store.created, 1)
	assert.Equal(t, []uint{1, 2, 3}, store.created[0].OuvrierIDs())
	assert.Equal(t, []uint{5}, store.created[0].SousTraitantIDs())
}

func TestMaterializePartialFailure(t *testing.T) {
	l := mustLoc(t)
	store := &fakeStore{failDays: map[string]bool{"2025-06-04": true}}
	m := NewMaterializer(store, OverbookingAllow)

	res, err := m.Materialize(context.Background(), MaterializeRequest{
		Title:        "Pose carrelage",
		Anchor:       at(l, 2025, time.June, 2, 0, 0),
		Segment:      SegmentFull,
		DurationDays: 4,
	})
	// every day is attempted, already-created rows stay, error is aggregate
	require.Error(t, err)
	assert.Equal(t, 3, res.Created)
	assert.Equal(t, 4, res.Days)
	assert.Equal(t, []string{"2025-06-02", "2025-06-03", "2025-06-05"}, createdDays(store))
	assert.Equal(t, store.created[0].ID, res.FirstTaskID)
}

func TestDuplicateNextWeekShiftsAnchorBySeven(t *testing.T) {
	l := mustLoc(t)
	store := &fakeStore{}
	m := NewMaterializer(store, OverbookingAllow)

	req := MaterializeRequest{
		Title:        "Pose carrelage",
		Anchor:       at(l, 2025, time.June, 2, 0, 0),
		Segment:      SegmentPM,
		DurationDays: 2,
		OuvrierIDs:   []uint{1, 2},
	}
	res, err := m.DuplicateNextWeek(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Created)
	assert.Equal(t, []string{"2025-06-09", "2025-06-10"}, createdDays(store))
	// segment and assignments carried over unchanged
	assert.Equal(t, at(l, 2025, time.June, 9, 13, 0), store.created[0].Start)
	assert.Equal(t, []uint{1, 2}, store.created[0].OuvrierIDs())
}

func TestMaterializeRejectPolicy(t *testing.T) {
	l := mustLoc(t)
	store := &fakeStore{overlaps: 1}
	m := NewMaterializer(store, OverbookingReject)

	res, err := m.Materialize(context.Background(), MaterializeRequest{
		Title:      "Coffrage",
		Anchor:     at(l, 2025, time.June, 2, 0, 0),
		Segment:    SegmentFull,
		OuvrierIDs: []uint{1},
	})
	require.Error(t, err)
	assert.Equal(t, 0, res.Created)
	assert.Empty(t, store.created)
	assert.Equal(t, 1, store.checks)
}

func TestMaterializeWarnPolicyStillCreates(t *testing.T) {
	l := mustLoc(t)
	store := &fakeStore{overlaps: 2}
	m := NewMaterializer(store, OverbookingWarn)

	res, err := m.Materialize(context.Background(), MaterializeRequest{
		Title:      "Coffrage",
		Anchor:     at(l, 2025, time.June, 2, 0, 0),
		Segment:    SegmentFull,
		OuvrierIDs: []uint{1},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Created)
}

func TestMaterializeValidation(t *testing.T) {
	store := &fakeStore{}
	m := NewMaterializer(store, OverbookingAllow)

	_, err := m.Materialize(context.Background(), MaterializeRequest{Segment: SegmentFull})
	assert.Error(t, err)

	_, err = m.Materialize(context.Background(), MaterializeRequest{Title: "x", Segment: "NONE"})
	assert.Error(t, err)

	_, err = m.Materialize(context.Background(), MaterializeRequest{Title: "x", Segment: SegmentFull, Status: "DONE"})
	assert.Error(t, err)
}
