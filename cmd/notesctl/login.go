package main

import (
	"io"

	"github.com/spf13/cobra"
)

func (c *cli) loginCmd() *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Start a session with email and password",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := c.context(cmd)
			defer cancel()

			// Раздел прежнего пользователя больше не нужен.
			if owner, ok := c.sess.OwnerKey(); ok {
				c.notes.Forget(owner)
			}

			user, err := c.client.Login(ctx, email, password)
			if err != nil {
				return err
			}
			c.ephemeral = false
			return c.render(cmd.OutOrStdout(), user, func(w io.Writer) error {
				return writeUser(w, user)
			})
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "email address")
	cmd.Flags().StringVar(&password, "password", "", "password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}
