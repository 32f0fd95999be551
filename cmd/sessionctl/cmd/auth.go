package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/wavely-app/sessionkit/domain"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in to Wavely and store the session tokens locally",
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr, cleanup, err := newManager()
		if err != nil {
			return err
		}
		defer cleanup()

		fmt.Print("Enter email: ")
		reader := bufio.NewReader(os.Stdin)
		email, _ := reader.ReadString('\n')
		email = strings.TrimSpace(email)

		fmt.Print("Enter password: ")
		bytePassword, err := term.ReadPassword(int(syscall.Stdin))
		fmt.Println()
		if err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}

		res := mgr.Login(cmd.Context(), domain.LoginCredentials{
			Email:    email,
			Password: string(bytePassword),
		})
		if !res.Success {
			return fmt.Errorf("login failed: %s", res.Error)
		}

		snap := mgr.Snapshot()
		fmt.Printf("Login successful. Logged in as: %s (ID: %s)\n", snap.User.Email, snap.User.ID)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "End the session and clear the stored tokens",
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr, cleanup, err := newManager()
		if err != nil {
			return err
		}
		defer cleanup()

		mgr.Logout(cmd.Context())
		fmt.Println("Logged out. Local tokens cleared.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
}
