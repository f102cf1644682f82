package bootstrap

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/avast/retry-go"
	log "github.com/sirupsen/logrus"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	glogger "gorm.io/gorm/logger"

	"github.com/batiplan/batiplan/internal/conf"
	"github.com/batiplan/batiplan/internal/db"
	"github.com/batiplan/batiplan/internal/planning"
)

func InitDB() {
	logLevel := glogger.Silent
	if conf.Conf.Debug {
		logLevel = glogger.Info
	}
	gormCfg := &gorm.Config{
		Logger: glogger.Default.LogMode(logLevel),
	}
	database := conf.Conf.Database
	var dialector gorm.Dialector
	switch database.Type {
	case "sqlite3":
		if err := os.MkdirAll(filepath.Dir(database.DBFile), 0o755); err != nil {
			log.Fatalf("failed to create db directory: %+v", err)
		}
		dialector = sqlite.Open(fmt.Sprintf("%s?_journal=WAL&_vacuum=incremental", database.DBFile))
	case "mysql":
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			database.User, database.Password, database.Host, database.Port, database.Name)
		dialector = mysql.Open(dsn)
	case "postgres":
		dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=%s",
			database.Host, database.User, database.Password, database.Name, database.Port, database.SSLMode)
		dialector = postgres.Open(dsn)
	default:
		log.Fatalf("unsupported database type: %s", database.Type)
	}
	var d *gorm.DB
	err := retry.Do(
		func() error {
			var err error
			d, err = gorm.Open(dialector, gormCfg)
			return err
		},
		retry.Attempts(5),
		retry.Delay(2*time.Second),
		retry.OnRetry(func(n uint, err error) {
			log.Warnf("database not reachable (attempt %d): %s", n+1, err.Error())
		}),
	)
	if err != nil {
		log.Fatalf("failed to connect database: %+v", err)
	}
	db.Init(d)
}

// InitPlanning loads the site-local timezone the business hours run in.
func InitPlanning() {
	loc, err := time.LoadLocation(conf.Conf.Planning.Timezone)
	if err != nil {
		log.Warnf("unknown timezone %q, using local time: %s", conf.Conf.Planning.Timezone, err.Error())
		return
	}
	planning.SetLocation(loc)
	if _, err := planning.ParseOverbookingPolicy(conf.Conf.Planning.OverbookingPolicy); err != nil {
		log.Warnf("%s, falling back to allow", err.Error())
	}
}
