package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show tresses recently created or viewed from this machine",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, closeDB, err := openHistory()
		if err != nil {
			return err
		}
		defer closeDB()

		entries, err := store.Recent(cmd.Context(), historyLimit)
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			fmt.Println("No local history yet.")
			return nil
		}

		for _, e := range entries {
			title := e.Title
			if title == "" {
				title = "(unknown)"
			}
			fmt.Printf("%s  %-7s  #%d  %s\n",
				e.CreatedAt.Local().Format("2006-01-02 15:04"), e.Action, e.TressID, title)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 50, "maximum entries to show")
	rootCmd.AddCommand(historyCmd)
}
