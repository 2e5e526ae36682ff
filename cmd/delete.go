package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/tressa-sh/tressa/internal/history"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete one of your tresses",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid tress id %q", args[0])
		}

		deps, err := openClient()
		if err != nil {
			return err
		}

		deps.sessions.Hydrate(cmd.Context())
		if !deps.sessions.IsLoggedIn() {
			return fmt.Errorf("deleting requires a login; run `tressa login` first")
		}

		if err := deps.client.DeleteTress(cmd.Context(), id); err != nil {
			return err
		}
		fmt.Printf("Deleted tress #%d\n", id)
		recordHistory(cmd.Context(), id, "", "", history.ActionDeleted)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}
