package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/batiplan/batiplan/internal/conf"
)

var VersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("batiplan %s (%s)\n", conf.Version, conf.GitCommit)
	},
}

func init() {
	RootCmd.AddCommand(VersionCmd)
}
