package planning

import (
	"context"
	"errors"
	"slices"
	"time"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/google/uuid"
	pkgerrors "github.com/pkg/errors"

	"github.com/batiplan/batiplan/internal/model"
	"github.com/batiplan/batiplan/pkg/utils"
)

// TaskStore is the slice of the record store the materializer needs.
type TaskStore interface {
	CreateTask(ctx context.Context, t *model.PlanningTask) error
	CountOverlappingAssignments(ctx context.Context, ouvrierIDs, sousTraitantIDs []uint, start, end time.Time) (int64, error)
}

// MaterializeRequest is one logical multi-day creation as submitted by the
// planning form: an anchor day, a segment, a duration and the resource sets
// to assign to every produced row.
type MaterializeRequest struct {
	Title           string
	Description     string
	Anchor          time.Time
	Segment         Segment
	DurationDays    int
	Status          model.TaskStatus
	ChantierID      *uint
	SavTicketID     *uint
	OuvrierIDs      []uint
	SousTraitantIDs []uint
}

type MaterializeResult struct {
	// FirstTaskID is the id of the first successfully created row, used by
	// callers for follow-up attachment uploads.
	FirstTaskID string
	Created     int
	Days        int
}

type Materializer struct {
	store  TaskStore
	policy OverbookingPolicy
}

func NewMaterializer(store TaskStore, policy OverbookingPolicy) *Materializer {
	if policy == "" {
		policy = OverbookingAllow
	}
	return &Materializer{store: store, policy: policy}
}

// ExpandDays lists the calendar days of [anchor, anchor+days) whose weekday
// is not Sunday. Saturdays stay in.
func ExpandDays(anchor time.Time, days int) []time.Time {
	y, m, d := anchor.Date()
	first := time.Date(y, m, d, 0, 0, 0, 0, anchor.Location())
	out := make([]time.Time, 0, days)
	for i := 0; i < days; i++ {
		day := first.AddDate(0, 0, i)
		if day.Weekday() == time.Sunday {
			continue
		}
		out = append(out, day)
	}
	return out
}

func dedupeIDs(ids []uint) []uint {
	if len(ids) == 0 {
		return nil
	}
	out := mapset.NewThreadUnsafeSet(ids...).ToSlice()
	slices.Sort(out)
	return out
}

// Materialize expands req into one task row per included day and submits
// each independently. Partial success is not rolled back: already-created
// rows persist even when a later day fails, and the aggregate error is
// returned only after every day has been attempted.
func (m *Materializer) Materialize(ctx context.Context, req MaterializeRequest) (MaterializeResult, error) {
	if req.Title == "" {
		return MaterializeResult{}, pkgerrors.New("title is required")
	}
	if !req.Segment.Valid() {
		return MaterializeResult{}, pkgerrors.Errorf("invalid segment %q", req.Segment)
	}
	duration := req.DurationDays
	if duration < 1 {
		duration = 1
	}
	status := req.Status
	if status == "" {
		status = model.StatusPrevu
	}
	if !status.Valid() {
		return MaterializeResult{}, pkgerrors.Errorf("invalid status %q", status)
	}
	ouvrierIDs := dedupeIDs(req.OuvrierIDs)
	sousTraitantIDs := dedupeIDs(req.SousTraitantIDs)

	res := MaterializeResult{}
	var errs []error
	for _, day := range ExpandDays(req.Anchor, duration) {
		res.Days++
		start, end := Window(day, req.Segment)
		if m.policy != OverbookingAllow && (len(ouvrierIDs) > 0 || len(sousTraitantIDs) > 0) {
			n, err := m.store.CountOverlappingAssignments(ctx, ouvrierIDs, sousTraitantIDs, start, end)
			if err != nil {
				errs = append(errs, pkgerrors.Wrapf(err, "overbooking check for %s", day.Format(refDateLayout)))
				continue
			}
			if n > 0 {
				if m.policy == OverbookingReject {
					errs = append(errs, pkgerrors.Errorf("resource already booked on %s", day.Format(refDateLayout)))
					continue
				}
				utils.Log.Warnf("overbooking %d resource(s) on %s for task %q", n, day.Format(refDateLayout), req.Title)
			}
		}
		t := &model.PlanningTask{
			ID:          uuid.NewString(),
			Title:       req.Title,
			Description: req.Description,
			Start:       start,
			End:         end,
			Status:      status,
			ChantierID:  req.ChantierID,
			SavTicketID: req.SavTicketID,
		}
		for _, id := range ouvrierIDs {
			t.Ouvriers = append(t.Ouvriers, model.OuvrierInterne{ID: id})
		}
		for _, id := range sousTraitantIDs {
			t.SousTraitants = append(t.SousTraitants, model.SousTraitant{ID: id})
		}
		if err := m.store.CreateTask(ctx, t); err != nil {
			errs = append(errs, pkgerrors.Wrapf(err, "create task for %s", day.Format(refDateLayout)))
			continue
		}
		if res.FirstTaskID == "" {
			res.FirstTaskID = t.ID
		}
		res.Created++
	}
	if len(errs) > 0 {
		return res, pkgerrors.Wrapf(errors.Join(errs...), "%d of %d day(s) failed", len(errs), res.Days)
	}
	return res, nil
}

// DuplicateNextWeek re-applies the expansion with the anchor shifted forward
// by exactly seven days, carrying title, segment, duration and assignments
// unchanged. The produced rows are independent of the source tasks.
func (m *Materializer) DuplicateNextWeek(ctx context.Context, req MaterializeRequest) (MaterializeResult, error) {
	req.Anchor = req.Anchor.AddDate(0, 0, 7)
	return m.Materialize(ctx, req)
}
