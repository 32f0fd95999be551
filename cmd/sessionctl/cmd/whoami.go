package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Restore the stored session and print the signed-in profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr, cleanup, err := newManager()
		if err != nil {
			return err
		}
		defer cleanup()

		mgr.Init(cmd.Context())

		snap := mgr.Snapshot()
		if snap.User == nil {
			return errors.New("not logged in")
		}

		fmt.Printf("User:      %s (ID: %s)\n", snap.User.DisplayName(), snap.User.ID)
		fmt.Printf("Email:     %s\n", snap.User.Email)
		fmt.Printf("Avatar:    %s\n", snap.AvatarURL)
		fmt.Printf("Validated: %t\n", snap.IsAuthenticated)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
}
