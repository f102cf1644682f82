package db

import (
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/batiplan/batiplan/internal/model"
)

var db *gorm.DB

// Init installs the gorm handle and migrates the schema.
func Init(d *gorm.DB) {
	db = d
	err := AutoMigrate(
		new(model.User),
		new(model.Chantier),
		new(model.OuvrierInterne),
		new(model.SousTraitant),
		new(model.SavTicket),
		new(model.PlanningTask),
		new(model.TaskOuvrier),
		new(model.TaskSousTraitant),
	)
	if err != nil {
		log.Fatalf("failed migrate database: %s", err.Error())
	}
}

func AutoMigrate(dst ...interface{}) error {
	return db.AutoMigrate(dst...)
}

func GetDb() *gorm.DB {
	return db
}

func Close() {
	log.Info("closing db")
	sqlDB, err := db.DB()
	if err != nil {
		log.Errorf("failed to get db: %s", err.Error())
		return
	}
	if err = sqlDB.Close(); err != nil {
		log.Errorf("failed to close db: %s", err.Error())
	}
}
