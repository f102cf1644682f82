package model

import "time"

// SavTicket is an after-sales service ticket a planning task may link to.
// The surrounding SAV workflow lives elsewhere; planning only needs the
// foreign-key target and a label.
type SavTicket struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Titre      string    `gorm:"column:titre;size:255;not null" json:"titre"`
	ChantierID *uint     `gorm:"column:chantier_id;index" json:"chantierId,omitempty"`
	Statut     string    `gorm:"column:statut;size:32;index" json:"statut"`
	CreatedAt  time.Time `json:"-" gorm:"autoCreateTime"`
	UpdatedAt  time.Time `json:"-" gorm:"autoUpdateTime"`
}

func (SavTicket) TableName() string {
	return "sav_tickets"
}
