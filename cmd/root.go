package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	cfgFile   string
	serverURL string
	verbose   bool
)

var rootCmd = &cobra.Command{
	Use:   "tressa",
	Short: "Share syntax-highlighted code and text snippets",
	Long: `Tressa is a client for the Tressa snippet-sharing service: create, browse
and share syntax-highlighted text snippets ("tresses"), optionally
anonymously, with public/private visibility and optional expiration.
It also ships a built-in web frontend (tressa web).`,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", ".tressa.yml", "config file path")
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "Tressa server base URL (overrides config)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

func exitOnError(err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
