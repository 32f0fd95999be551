package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/wavely-app/sessionkit/config"
	"github.com/wavely-app/sessionkit/tokenstore"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Inspect the locally stored tokens without contacting the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		store, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer store.Close()

		ctx := cmd.Context()
		access, err := store.AccessToken(ctx)
		if err != nil {
			return err
		}
		refresh, err := store.RefreshToken(ctx)
		if err != nil {
			return err
		}
		userID, err := store.UserID(ctx)
		if err != nil {
			return err
		}

		fmt.Printf("Backend:       %s\n", cfg.TokenStoreBackend)
		fmt.Printf("User ID:       %s\n", orNone(userID))
		fmt.Printf("Refresh token: %s\n", presence(refresh))

		if access == "" {
			fmt.Println("Access token:  (none)")
			return nil
		}
		fmt.Println("Access token:  present")
		if exp, ok := tokenstore.TokenExpiry(access); ok {
			fmt.Printf("Expires:       %s (in %s)\n",
				exp.Format(time.RFC3339), time.Until(exp).Round(time.Second))
		} else {
			fmt.Println("Expires:       no expiry claim")
		}
		fmt.Printf("Expired:       %t (with %s buffer)\n",
			tokenstore.IsTokenExpired(access, cfg.ExpiryBuffer), cfg.ExpiryBuffer)
		return nil
	},
}

func orNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}

func presence(s string) string {
	if s == "" {
		return "(none)"
	}
	return "present"
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
