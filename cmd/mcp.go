package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/nsxbet/abap-reviewer/pkg/mcpserver"
	"github.com/nsxbet/abap-reviewer/pkg/reviewer"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the check as a Model Context Protocol tool on stdio",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		r := reviewer.New()
		if rulesPath := viper.GetString("mcp.rules"); rulesPath != "" {
			if err := r.WithConfig(rulesPath); err != nil {
				return err
			}
		}
		return mcpserver.New(r, Version).ServeStdio()
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)

	mcpCmd.Flags().StringP("rules", "r", "", "path to rules configuration file")
	_ = viper.BindPFlag("mcp.rules", mcpCmd.Flags().Lookup("rules"))
}
