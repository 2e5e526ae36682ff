package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the currently logged-in user",
	RunE: func(cmd *cobra.Command, args []string) error {
		deps, err := openClient()
		if err != nil {
			return err
		}

		deps.sessions.Hydrate(cmd.Context())
		if !deps.sessions.IsLoggedIn() {
			fmt.Println("Not logged in.")
			return nil
		}

		profile, err := deps.client.Me(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Printf("%s <%s> (id %d)\n", profile.Username, profile.Email, profile.ID)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
}
