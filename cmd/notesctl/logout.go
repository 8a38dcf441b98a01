package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (c *cli) logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Revoke the current token and forget the session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !c.sess.Authenticated() {
				return ErrNotLoggedIn
			}

			ctx, cancel := c.context(cmd)
			defer cancel()

			if owner, ok := c.sess.OwnerKey(); ok {
				c.notes.Forget(owner)
			}
			if err := c.client.Logout(ctx); err != nil {
				return err
			}

			_, err := fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
			return err
		},
	}
}
