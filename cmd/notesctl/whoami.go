package main

import (
	"io"

	"github.com/spf13/cobra"
)

func (c *cli) whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the authenticated user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !c.sess.Authenticated() {
				return ErrNotLoggedIn
			}

			ctx, cancel := c.context(cmd)
			defer cancel()

			user, err := c.client.Me(ctx)
			if err != nil {
				return err
			}
			return c.render(cmd.OutOrStdout(), user, func(w io.Writer) error {
				return writeUser(w, user)
			})
		},
	}
}
