package model

import "time"

type TaskStatus string

const (
	StatusPrevu   TaskStatus = "PREVU"
	StatusEnCours TaskStatus = "EN_COURS"
	StatusTermine TaskStatus = "TERMINE"
)

func (s TaskStatus) Valid() bool {
	switch s {
	case StatusPrevu, StatusEnCours, StatusTermine:
		return true
	}
	return false
}

// PlanningTask is one scheduled block of work. Start and End carry the
// concrete business-hour instants; multi-day requests are materialized into
// one row per day before reaching the store. Invariant: Start < End.
type PlanningTask struct {
	ID          string     `gorm:"column:id;primaryKey;size:64" json:"id"`
	Title       string     `gorm:"column:title;size:255;not null" json:"title"`
	Description string     `gorm:"column:description;type:text" json:"description"`
	Start       time.Time  `gorm:"column:start_at;index:idx_task_start" json:"start"`
	End         time.Time  `gorm:"column:end_at;index:idx_task_end" json:"end"`
	Status      TaskStatus `gorm:"column:status;size:32;index:idx_task_status" json:"status"`
	ChantierID  *uint      `gorm:"column:chantier_id;index" json:"chantierId,omitempty"`
	SavTicketID *uint      `gorm:"column:sav_ticket_id;index" json:"savTicketId,omitempty"`

	Ouvriers      []OuvrierInterne `gorm:"many2many:task_ouvriers;constraint:OnDelete:CASCADE" json:"ouvriers"`
	SousTraitants []SousTraitant   `gorm:"many2many:task_sous_traitants;constraint:OnDelete:CASCADE" json:"sousTraitants"`

	CreatedAt time.Time `json:"-" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"-" gorm:"autoUpdateTime"`
}

func (PlanningTask) TableName() string {
	return "planning_tasks"
}

// TaskOuvrier is the worker assignment join row. Rows are written directly
// so creating a task never upserts the referenced worker.
type TaskOuvrier struct {
	PlanningTaskID   string `gorm:"column:planning_task_id;primaryKey;size:64" json:"taskId"`
	OuvrierInterneID uint   `gorm:"column:ouvrier_interne_id;primaryKey" json:"ouvrierId"`
}

func (TaskOuvrier) TableName() string {
	return "task_ouvriers"
}

// TaskSousTraitant is the subcontractor assignment join row.
type TaskSousTraitant struct {
	PlanningTaskID string `gorm:"column:planning_task_id;primaryKey;size:64" json:"taskId"`
	SousTraitantID uint   `gorm:"column:sous_traitant_id;primaryKey" json:"sousTraitantId"`
}

func (TaskSousTraitant) TableName() string {
	return "task_sous_traitants"
}

// OuvrierIDs returns the assigned worker ids.
func (t *PlanningTask) OuvrierIDs() []uint {
	ids := make([]uint, 0, len(t.Ouvriers))
	for _, o := range t.Ouvriers {
		ids = append(ids, o.ID)
	}
	return ids
}

// SousTraitantIDs returns the assigned subcontractor ids.
func (t *PlanningTask) SousTraitantIDs() []uint {
	ids := make([]uint, 0, len(t.SousTraitants))
	for _, s := range t.SousTraitants {
		ids = append(ids, s.ID)
	}
	return ids
}
