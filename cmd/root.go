package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/batiplan/batiplan/internal/bootstrap"
	"github.com/batiplan/batiplan/internal/bootstrap/data"
)

var RootCmd = &cobra.Command{
	Use:   "batiplan",
	Short: "Construction-site planning service",
	Long:  "BatiPlan exposes the resource-planning API of a construction-site management application: chantiers, workers, subcontractors, multi-day task scheduling and PDF planning export.",
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// Init runs the bootstrap chain shared by commands needing the full stack.
func Init() {
	bootstrap.InitConfig()
	bootstrap.Log()
	bootstrap.InitDB()
	bootstrap.InitPlanning()
	data.InitData()
}
