package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/batiplan/batiplan/internal/conf"
	"github.com/batiplan/batiplan/internal/db"
	"github.com/batiplan/batiplan/server"
)

var ServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the planning API server",
	Run: func(cmd *cobra.Command, args []string) {
		Init()
		if !conf.Conf.Debug {
			gin.SetMode(gin.ReleaseMode)
		}
		r := gin.New()
		r.Use(gin.LoggerWithWriter(log.StandardLogger().Out), gin.RecoveryWithWriter(log.StandardLogger().Out))
		server.Init(r)
		addr := fmt.Sprintf("%s:%d", conf.Conf.Scheme.Address, conf.Conf.Scheme.Port)
		log.Infof("start HTTP server @ %s", addr)
		srv := &http.Server{Addr: addr, Handler: r}
		go func() {
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Fatalf("failed to start http server: %s", err.Error())
			}
		}()
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Println("shutdown server...")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			log.Errorf("http server shutdown: %s", err.Error())
		}
		db.Close()
		log.Println("server exit")
	},
}

func init() {
	RootCmd.AddCommand(ServerCmd)
}
