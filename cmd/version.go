package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nsxbet/abap-reviewer/pkg/advisor"
	"github.com/nsxbet/abap-reviewer/pkg/server"
)

// Version is set at build time with -ldflags "-X github.com/nsxbet/abap-reviewer/cmd.Version=...".
var Version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "abap-reviewer %s (service %s, SAP Note %d)\n",
			Version, server.ServiceVersion, advisor.SAPNoteDraftFilter)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
