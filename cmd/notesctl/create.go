package main

import (
	"io"

	"github.com/spf13/cobra"

	"gonotes/internal/client/api"
)

func (c *cli) createCmd() *cobra.Command {
	var title, body string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a note",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := c.context(cmd)
			defer cancel()

			owner, err := c.owner(ctx)
			if err != nil {
				return err
			}

			in := api.NoteInput{Title: title}
			if cmd.Flags().Changed("body") {
				in.Body = &body
			}
			note, err := c.notes.Create(ctx, owner, in)
			if err != nil {
				return err
			}
			return c.render(cmd.OutOrStdout(), note, func(w io.Writer) error {
				return writeNote(w, note)
			})
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "note title")
	cmd.Flags().StringVarP(&body, "body", "b", "", "note body")
	return cmd
}
