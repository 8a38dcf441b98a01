package main

import (
	"io"

	"github.com/spf13/cobra"

	"gonotes/internal/client/api"
)

func (c *cli) registerCmd() *cobra.Command {
	var reg api.Registration

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and start a session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := c.context(cmd)
			defer cancel()

			user, err := c.client.Register(ctx, reg)
			if err != nil {
				return err
			}
			c.ephemeral = false
			return c.render(cmd.OutOrStdout(), user, func(w io.Writer) error {
				return writeUser(w, user)
			})
		},
	}

	cmd.Flags().StringVar(&reg.Name, "name", "", "display name")
	cmd.Flags().StringVar(&reg.Email, "email", "", "email address")
	cmd.Flags().StringVar(&reg.Password, "password", "", "password, at least 8 characters")
	return cmd
}
