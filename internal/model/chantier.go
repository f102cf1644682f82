package model

import "time"

// Chantier is a construction site, the top-level entity planning tasks attach to.
// Couleur is the hex color used when rendering the planning grid.
type Chantier struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Nom       string    `gorm:"column:nom;size:255;not null" json:"nom"`
	Adresse   string    `gorm:"column:adresse;size:512" json:"adresse"`
	Couleur   string    `gorm:"column:couleur;size:16" json:"couleur"`
	Actif     bool      `gorm:"column:actif;index" json:"actif"`
	CreatedAt time.Time `json:"-" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"-" gorm:"autoUpdateTime"`
}

func (Chantier) TableName() string {
	return "chantiers"
}
