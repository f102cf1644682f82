package model

import "time"

// OuvrierInterne is an in-house worker assignable to planning tasks.
type OuvrierInterne struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Nom       string    `gorm:"column:nom;size:255;not null" json:"nom"`
	Prenom    string    `gorm:"column:prenom;size:255" json:"prenom"`
	Actif     bool      `gorm:"column:actif;index" json:"actif"`
	CreatedAt time.Time `json:"-" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"-" gorm:"autoUpdateTime"`
}

func (OuvrierInterne) TableName() string {
	return "ouvriers_internes"
}

func (o OuvrierInterne) DisplayName() string {
	if o.Prenom == "" {
		return o.Nom
	}
	return o.Prenom + " " + o.Nom
}

// SousTraitant is an external subcontractor assignable to planning tasks.
type SousTraitant struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Societe   string    `gorm:"column:societe;size:255;not null" json:"societe"`
	Contact   string    `gorm:"column:contact;size:255" json:"contact"`
	Actif     bool      `gorm:"column:actif;index" json:"actif"`
	CreatedAt time.Time `json:"-" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"-" gorm:"autoUpdateTime"`
}

func (SousTraitant) TableName() string {
	return "sous_traitants"
}

func (s SousTraitant) DisplayName() string {
	return s.Societe
}
