package cmd

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/tressa-sh/tressa/internal/history"
)

var getRaw bool

var getCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Fetch a tress and print its content",
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

		if getRaw {
			content, err := deps.client.RawContent(cmd.Context(), id)
			if err != nil {
				return err
			}
			fmt.Print(content)
			return nil
		}

		tress, err := deps.client.GetTress(cmd.Context(), id)
		if err != nil {
			return err
		}

		owner := "anonymous"
		if tress.OwnerUsername != nil {
			owner = *tress.OwnerUsername
		}
		fmt.Fprintf(os.Stderr, "#%d  %s  (%s, %s, created %s)\n",
			tress.ID, tress.Title, tress.Language, owner, tress.CreatedAt)
		fmt.Fprintf(os.Stderr, "raw: %s\n\n", deps.client.RawURL(tress.ID))
		fmt.Println(tress.Content)

		recordHistory(cmd.Context(), tress.ID, tress.Title, tress.Language, history.ActionViewed)
		return nil
	},
}

// recordHistory appends a local history entry, best effort: the command
// already succeeded, so history failures only warn.
func recordHistory(ctx context.Context, id int, title, language string, action history.Action) {
	store, closeDB, err := openHistory()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		return
	}
	defer closeDB()
	if _, err := store.Record(ctx, id, title, language, action); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: recording history: %v\n", err)
	}
}

func init() {
	getCmd.Flags().BoolVar(&getRaw, "raw", false, "fetch via the raw endpoint (plain text, no metadata)")
	rootCmd.AddCommand(getCmd)
}
