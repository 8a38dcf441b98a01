package main

import (
	"io"

	"github.com/spf13/cobra"
)

func (c *cli) listCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List your notes, newest first",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := c.context(cmd)
			defer cancel()

			owner, err := c.owner(ctx)
			if err != nil {
				return err
			}
			notes, err := c.notes.Fetch(ctx, owner)
			if err != nil {
				return err
			}
			return c.render(cmd.OutOrStdout(), notes, func(w io.Writer) error {
				return writeNotes(w, notes)
			})
		},
	}
}
