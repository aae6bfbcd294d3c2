package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newUserCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage users",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "register <name>",
		Short: "Create a user with the default baseline",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := app.Users.Register(context.Background(), args[0])
			if err != nil {
				return err
			}
			fmt.Printf("Registered %q. Set STEMPEL_USER=%s (or `user: %s` in the config file) to act as them.\n",
				user.Name, user.Name, user.Name)
			return nil
		},
	})

	return cmd
}
