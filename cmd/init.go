package cmd

import (
	"github.com/spf13/cobra"

	"github.com/tressa-sh/tressa/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a tressa config file interactively",
	Run: func(cmd *cobra.Command, args []string) {
		_, err := config.RunWizard(cfgFile)
		exitOnError(err)
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
