package cmd

import (
	"fmt"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/tressa-sh/tressa/internal/api"
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a new account on the Tressa server",
	RunE: func(cmd *cobra.Command, args []string) error {
		deps, err := openClient()
		if err != nil {
			return err
		}

		userPrompt := promptui.Prompt{Label: "Username"}
		username, err := userPrompt.Run()
		if err != nil {
			return fmt.Errorf("reading username: %w", err)
		}
		emailPrompt := promptui.Prompt{Label: "Email"}
		email, err := emailPrompt.Run()
		if err != nil {
			return fmt.Errorf("reading email: %w", err)
		}
		passPrompt := promptui.Prompt{Label: "Password", Mask: '*'}
		password, err := passPrompt.Run()
		if err != nil {
			return fmt.Errorf("reading password: %w", err)
		}

		err = deps.client.Register(cmd.Context(), api.RegisterRequest{
			Username: username,
			Email:    email,
			Password: password,
		})
		if err != nil {
			return err
		}
		fmt.Println("Account created. Run `tressa login` to log in.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(registerCmd)
}
