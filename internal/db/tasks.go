package db

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/batiplan/batiplan/internal/model"
	"github.com/batiplan/batiplan/internal/planning"
)

func taskJoinRows(t *model.PlanningTask) ([]model.TaskOuvrier, []model.TaskSousTraitant) {
	ouvriers := make([]model.TaskOuvrier, 0, len(t.Ouvriers))
	for _, o := range t.Ouvriers {
		ouvriers = append(ouvriers, model.TaskOuvrier{PlanningTaskID: t.ID, OuvrierInterneID: o.ID})
	}
	sousTraitants := make([]model.TaskSousTraitant, 0, len(t.SousTraitants))
	for _, s := range t.SousTraitants {
		sousTraitants = append(sousTraitants, model.TaskSousTraitant{PlanningTaskID: t.ID, SousTraitantID: s.ID})
	}
	return ouvriers, sousTraitants
}

func createTaskTx(tx *gorm.DB, t *model.PlanningTask) error {
	if err := tx.Omit("Ouvriers", "SousTraitants").Create(t).Error; err != nil {
		return errors.WithStack(err)
	}
	ouvriers, sousTraitants := taskJoinRows(t)
	if len(ouvriers) > 0 {
		if err := tx.Create(&ouvriers).Error; err != nil {
			return errors.WithStack(err)
		}
	}
	if len(sousTraitants) > 0 {
		if err := tx.Create(&sousTraitants).Error; err != nil {
			return errors.WithStack(err)
		}
	}
	return nil
}

func deleteAssignmentsTx(tx *gorm.DB, taskID string) error {
	if err := tx.Where("planning_task_id = ?", taskID).Delete(&model.TaskOuvrier{}).Error; err != nil {
		return errors.WithStack(err)
	}
	return errors.WithStack(tx.Where("planning_task_id = ?", taskID).Delete(&model.TaskSousTraitant{}).Error)
}

// CreateTask inserts one task row with its assignment join rows. Join rows
// reference existing resources only, the resource rows are never touched.
func CreateTask(ctx context.Context, t *model.PlanningTask) error {
	if !t.Start.Before(t.End) {
		return errors.Errorf("task start %s must be before end %s", t.Start, t.End)
	}
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return createTaskTx(tx, t)
	})
}

func GetTaskByID(ctx context.Context, id string) (*model.PlanningTask, error) {
	var t model.PlanningTask
	err := db.WithContext(ctx).
		Preload("Ouvriers").
		Preload("SousTraitants").
		Where("id = ?", id).
		First(&t).Error
	if err != nil {
		return nil, errors.Wrapf(err, "failed find task %s", id)
	}
	return &t, nil
}

// ListTasksBetween returns tasks whose interval overlaps [from, to), with
// assignments preloaded, ordered by start.
func ListTasksBetween(ctx context.Context, from, to time.Time) ([]model.PlanningTask, error) {
	var tasks []model.PlanningTask
	err := db.WithContext(ctx).
		Preload("Ouvriers").
		Preload("SousTraitants").
		Where("start_at < ? AND end_at > ?", to, from).
		Order("start_at").
		Find(&tasks).Error
	return tasks, errors.WithStack(err)
}

// UpdateTask rewrites the task row and replaces its assignment join rows.
func UpdateTask(ctx context.Context, t *model.PlanningTask) error {
	if !t.Start.Before(t.End) {
		return errors.Errorf("task start %s must be before end %s", t.Start, t.End)
	}
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.PlanningTask{}).Where("id = ?", t.ID).
			Select("title", "description", "start_at", "end_at", "status", "chantier_id", "sav_ticket_id").
			Updates(map[string]interface{}{
				"title":         t.Title,
				"description":   t.Description,
				"start_at":      t.Start,
				"end_at":        t.End,
				"status":        t.Status,
				"chantier_id":   t.ChantierID,
				"sav_ticket_id": t.SavTicketID,
			})
		if res.Error != nil {
			return errors.WithStack(res.Error)
		}
		if res.RowsAffected == 0 {
			return errors.Wrapf(gorm.ErrRecordNotFound, "task %s", t.ID)
		}
		if err := deleteAssignmentsTx(tx, t.ID); err != nil {
			return err
		}
		ouvriers, sousTraitants := taskJoinRows(t)
		if len(ouvriers) > 0 {
			if err := tx.Create(&ouvriers).Error; err != nil {
				return errors.WithStack(err)
			}
		}
		if len(sousTraitants) > 0 {
			if err := tx.Create(&sousTraitants).Error; err != nil {
				return errors.WithStack(err)
			}
		}
		return nil
	})
}

// DeleteTask removes the task row and cascades its assignment join rows.
func DeleteTask(ctx context.Context, id string) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := deleteAssignmentsTx(tx, id); err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&model.PlanningTask{})
		if res.Error != nil {
			return errors.WithStack(res.Error)
		}
		if res.RowsAffected == 0 {
			return errors.Wrapf(gorm.ErrRecordNotFound, "task %s", id)
		}
		return nil
	})
}

// RemoveTaskDay shrinks the task's date coverage by one calendar day. The
// whole row goes away when the removed day was its only one; cutting a
// middle day splits the row in two, the tail copying the assignments.
func RemoveTaskDay(ctx context.Context, id string, day time.Time) error {
	t, err := GetTaskByID(ctx, id)
	if err != nil {
		return err
	}
	removal, err := planning.RemoveDay(t.Start, t.End, day)
	if err != nil {
		return err
	}
	switch removal.Kind {
	case planning.RemovalDelete:
		return DeleteTask(ctx, id)
	case planning.RemovalShrink:
		return errors.WithStack(db.WithContext(ctx).
			Model(&model.PlanningTask{}).
			Where("id = ?", id).
			Updates(map[string]interface{}{"start_at": removal.Start, "end_at": removal.End}).Error)
	case planning.RemovalSplit:
		return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			err := tx.Model(&model.PlanningTask{}).
				Where("id = ?", id).
				Updates(map[string]interface{}{"start_at": removal.Start, "end_at": removal.End}).Error
			if err != nil {
				return errors.WithStack(err)
			}
			tail := &model.PlanningTask{
				ID:            uuid.NewString(),
				Title:         t.Title,
				Description:   t.Description,
				Start:         removal.TailStart,
				End:           removal.TailEnd,
				Status:        t.Status,
				ChantierID:    t.ChantierID,
				SavTicketID:   t.SavTicketID,
				Ouvriers:      t.Ouvriers,
				SousTraitants: t.SousTraitants,
			}
			return createTaskTx(tx, tail)
		})
	}
	return errors.Errorf("unknown removal kind %d", removal.Kind)
}

// CountOverlappingAssignments counts assignment rows whose task interval
// overlaps [start, end) for any of the given resource ids.
func CountOverlappingAssignments(ctx context.Context, ouvrierIDs, sousTraitantIDs []uint, start, end time.Time) (int64, error) {
	var total int64
	if len(ouvrierIDs) > 0 {
		var n int64
		err := db.WithContext(ctx).Model(&model.TaskOuvrier{}).
			Joins("JOIN planning_tasks ON planning_tasks.id = task_ouvriers.planning_task_id").
			Where("task_ouvriers.ouvrier_interne_id IN ?", ouvrierIDs).
			Where("planning_tasks.start_at < ? AND planning_tasks.end_at > ?", end, start).
			Count(&n).Error
		if err != nil {
			return 0, errors.WithStack(err)
		}
		total += n
	}
	if len(sousTraitantIDs) > 0 {
		var n int64
		err := db.WithContext(ctx).Model(&model.TaskSousTraitant{}).
			Joins("JOIN planning_tasks ON planning_tasks.id = task_sous_traitants.planning_task_id").
			Where("task_sous_traitants.sous_traitant_id IN ?", sousTraitantIDs).
			Where("planning_tasks.start_at < ? AND planning_tasks.end_at > ?", end, start).
			Count(&n).Error
		if err != nil {
			return 0, errors.WithStack(err)
		}
		total += n
	}
	return total, nil
}

// TaskStore adapts the package-level task functions to the materializer's
// store interface.
type TaskStore struct{}

func (TaskStore) CreateTask(ctx context.Context, t *model.PlanningTask) error {
	return CreateTask(ctx, t)
}

func (TaskStore) CountOverlappingAssignments(ctx context.Context, ouvrierIDs, sousTraitantIDs []uint, start, end time.Time) (int64, error) {
	return CountOverlappingAssignments(ctx, ouvrierIDs, sousTraitantIDs, start, end)
}
