package cmd

import (
	"fmt"
	"strconv"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
)

var loginCmd = &cobra.Command{
	Use:   "login [username]",
	Short: "Log in to the Tressa server and store the session token",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		deps, err := openClient()
		if err != nil {
			return err
		}

		username := ""
		if len(args) == 1 {
			username = args[0]
		} else {
			prompt := promptui.Prompt{Label: "Username"}
			username, err = prompt.Run()
			if err != nil {
				return fmt.Errorf("reading username: %w", err)
			}
		}

		passPrompt := promptui.Prompt{Label: "Password", Mask: '*'}
		password, err := passPrompt.Run()
		if err != nil {
			return fmt.Errorf("reading password: %w", err)
		}

		tok, err := deps.client.Login(cmd.Context(), username, password)
		if err != nil {
			return err
		}
		if err := deps.sessions.Login(tok.AccessToken, tok.Username); err != nil {
			return err
		}

		// Cache the user id so ownership checks work without a refetch.
		if profile, err := deps.client.Me(cmd.Context()); err == nil {
			deps.sessions.UpdateUserInfo(profile.Username, strconv.Itoa(profile.ID))
		}

		fmt.Printf("Logged in as %s\n", tok.Username)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(loginCmd)
}
