package bootstrap

import (
	"io"
	"os"

	log "github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/batiplan/batiplan/internal/conf"
	"github.com/batiplan/batiplan/pkg/utils"
)

func Log() {
	cfg := conf.Conf.Log
	level, err := log.ParseLevel(cfg.Level)
	if err != nil {
		level = log.InfoLevel
	}
	if conf.Conf.Debug {
		level = log.DebugLevel
	}
	log.SetLevel(level)
	log.SetFormatter(&log.TextFormatter{
		ForceColors:               true,
		EnvironmentOverrideColors: true,
		TimestampFormat:           "2006-01-02 15:04:05",
		FullTimestamp:             true,
	})
	var w io.Writer = os.Stdout
	if cfg.Enable {
		logWriter := &lumberjack.Logger{
			Filename:   cfg.Name,
			MaxSize:    cfg.MaxSize,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAge,
			Compress:   cfg.Compress,
		}
		w = io.MultiWriter(os.Stdout, logWriter)
	}
	log.SetOutput(w)
	utils.Log.SetLevel(level)
	utils.Log.SetOutput(w)
	log.Infof("init logrus...")
}
