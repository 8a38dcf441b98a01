package main

import (
	"io"
	"strconv"

	"github.com/spf13/cobra"
)

func (c *cli) showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a single note",
		Args:  cobra.ExactArgs(1),
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
			note, err := c.notes.FetchNote(ctx, owner, id)
			if err != nil {
				return err
			}
			return c.render(cmd.OutOrStdout(), note, func(w io.Writer) error {
				return writeNote(w, note)
			})
		},
	}
}

func parseNoteID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrInvalidNoteID
	}
	return id, nil
}
