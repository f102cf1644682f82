package bootstrap

import (
	"crypto/rand"
	"encoding/hex"

	"github.com/caarlos0/env/v9"
	log "github.com/sirupsen/logrus"

	"github.com/batiplan/batiplan/internal/conf"
)

func InitConfig() {
	cfg := conf.DefaultConfig()
	if err := env.Parse(cfg); err != nil {
		log.Fatalf("failed to parse environment config: %+v", err)
	}
	if cfg.Session.Secret == "" {
		buf := make([]byte, 16)
		if _, err := rand.Read(buf); err != nil {
			log.Fatalf("failed to generate session secret: %+v", err)
		}
		cfg.Session.Secret = hex.EncodeToString(buf)
		log.Warn("SESSION_SECRET not set, generated an ephemeral one; sessions will not survive restarts")
	}
	conf.Conf = cfg
}
