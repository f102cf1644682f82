package data

import (
	"crypto/rand"
	"encoding/hex"

	log "github.com/sirupsen/logrus"

	"github.com/batiplan/batiplan/internal/db"
	"github.com/batiplan/batiplan/internal/model"
)

func InitData() {
	initUsers()
	initDemoResources()
}

func initUsers() {
	n, err := db.CountUsers()
	if err != nil {
		log.Fatalf("failed to count users: %+v", err)
	}
	if n > 0 {
		return
	}
	salt := randomHex(8)
	password := randomHex(8)
	admin := &model.User{
		Username: "admin",
		Salt:     salt,
		Role:     model.ADMIN,
	}
	admin.SetPassword(password)
	if err := db.CreateUser(admin); err != nil {
		log.Fatalf("failed to create admin user: %+v", err)
	}
	log.Infof("created initial admin user, password: %s", password)
}

func initDemoResources() {
	n, err := db.CountChantiers()
	if err != nil {
		log.Fatalf("failed to count chantiers: %+v", err)
	}
	if n > 0 {
		return
	}
	chantiers := []model.Chantier{
		{Nom: "Résidence Les Tilleuls", Adresse: "12 rue des Tilleuls", Couleur: "#1976d2", Actif: true},
		{Nom: "Immeuble Grand Large", Adresse: "4 quai du Port", Couleur: "#388e3c", Actif: true},
	}
	for i := range chantiers {
		if err := db.CreateChantier(&chantiers[i]); err != nil {
			log.Warnf("failed to seed chantier: %+v", err)
		}
	}
	ouvriers := []model.OuvrierInterne{
		{Nom: "Martin", Prenom: "Paul", Actif: true},
		{Nom: "Durand", Prenom: "Luc", Actif: true},
	}
	for i := range ouvriers {
		if err := db.CreateOuvrier(&ouvriers[i]); err != nil {
			log.Warnf("failed to seed ouvrier: %+v", err)
		}
	}
	sousTraitants := []model.SousTraitant{
		{Societe: "Elec Plus", Contact: "contact@elecplus.example", Actif: true},
	}
	for i := range sousTraitants {
		if err := db.CreateSousTraitant(&sousTraitants[i]); err != nil {
			log.Warnf("failed to seed sous-traitant: %+v", err)
		}
	}
}

func randomHex(n int) string {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		log.Fatalf("failed to read random bytes: %+v", err)
	}
	return hex.EncodeToString(buf)
}
