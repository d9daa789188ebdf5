package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is overridden at build time with -ldflags "-X novel-binder/cmd.Version=...".
var Version = "dev"

var versionCmd = &cobra.Command{
	Use: "version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), "version: ", Version)
	},
}

func init() {
	RootCmd.AddCommand(versionCmd)
}
