package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (c *cli) deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a note permanently",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseNoteID(args[0])
			if err != nil {
				return err
			}

			ctx, cancel := c.context(cmd)
			defer cancel()

			owner, err := c.owner(ctx)
			if err != nil {
				return err
			}
			if err := c.notes.Delete(ctx, owner, id); err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), "Note Deleted")
			return err
		},
	}
}
