package db

import (
	"context"

	"github.com/pkg/errors"

	"github.com/batiplan/batiplan/internal/model"
)

func ListChantiers(ctx context.Context) ([]model.Chantier, error) {
	var chantiers []model.Chantier
	err := db.WithContext(ctx).Where("actif = ?", true).Order("nom").Find(&chantiers).Error
	return chantiers, errors.WithStack(err)
}

func ListOuvriers(ctx context.Context) ([]model.OuvrierInterne, error) {
	var ouvriers []model.OuvrierInterne
	err := db.WithContext(ctx).Where("actif = ?", true).Order("nom").Find(&ouvriers).Error
	return ouvriers, errors.WithStack(err)
}

func ListSousTraitants(ctx context.Context) ([]model.SousTraitant, error) {
	var sousTraitants []model.SousTraitant
	err := db.WithContext(ctx).Where("actif = ?", true).Order("societe").Find(&sousTraitants).Error
	return sousTraitants, errors.WithStack(err)
}

func ListSavTickets(ctx context.Context) ([]model.SavTicket, error) {
	var tickets []model.SavTicket
	err := db.WithContext(ctx).Order("id DESC").Find(&tickets).Error
	return tickets, errors.WithStack(err)
}

func CreateChantier(c *model.Chantier) error {
	return errors.WithStack(db.Create(c).Error)
}

func CreateOuvrier(o *model.OuvrierInterne) error {
	return errors.WithStack(db.Create(o).Error)
}

func CreateSousTraitant(s *model.SousTraitant) error {
	return errors.WithStack(db.Create(s).Error)
}

func CountChantiers() (int64, error) {
	var n int64
	err := db.Model(&model.Chantier{}).Count(&n).Error
	return n, errors.WithStack(err)
}
