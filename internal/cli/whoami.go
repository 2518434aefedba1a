package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Dyslex7c/Decentralized-Twitter/pkg/models"
)

func newWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session",
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := newRuntime()
			if err != nil {
				return err
			}
			state := r.store.Snapshot()
			out := cmd.OutOrStdout()

			if output == "json" {
				return printJSON(out, models.Profile{
					Address: state.Address,
					UserID:  state.Handle,
					Name:    state.Name,
					Avatar:  state.Avatar,
				})
			}

			if state.Address == "" && state.Handle == "" {
				fmt.Fprintln(out, "Not signed in. Run 'dtwitter login'.")
				return nil
			}
			if state.Handle != "" {
				fmt.Fprintf(out, "handle:  %s\n", state.Handle)
			}
			if state.Name != "" {
				fmt.Fprintf(out, "name:    %s\n", state.Name)
			}
			if state.Address != "" {
				fmt.Fprintf(out, "account: %s\n", state.Address)
			}
			if state.Authenticated {
				fmt.Fprintln(out, "backend: authenticated")
			} else {
				fmt.Fprintln(out, "backend: not authenticated")
			}
			return nil
		},
	}
}
