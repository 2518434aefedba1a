package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	dtcfg "github.com/Dyslex7c/Decentralized-Twitter/internal/config"
)

func newLogoutCmd() *cobra.Command {
	var forgetKey bool

	cmd := &cobra.Command{
		Use:   "logout",
		Short: "Clear the stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := newRuntime()
			if err != nil {
				return err
			}

			for _, key := range []string{"AUTH_TOKEN", "USER_ID"} {
				if err := dtcfg.DeleteEnvValue(key); err != nil {
					return fmt.Errorf("failed to clear %s: %w", key, err)
				}
			}
			if forgetKey {
				if err := dtcfg.DeleteEnvValue("ETH_PRIVATE_KEY"); err != nil {
					return fmt.Errorf("failed to clear key: %w", err)
				}
			}
			r.store.Clear()

			fmt.Fprintln(cmd.OutOrStdout(), "Logged out.")
			if forgetKey {
				fmt.Fprintln(cmd.OutOrStdout(), "Signing key removed from ~/.dtwitter/.env")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&forgetKey, "forget-key", false, "Also remove the stored signing key")

	return cmd
}
