package main

import (
	"errors"
	"io"

	"github.com/spf13/cobra"

	"gonotes/internal/client/api"
)

// ErrNothingToEdit - не задано ни одного изменения.
var ErrNothingToEdit = errors.New("nothing to change, pass --title, --body or --clear-body")

func (c *cli) editCmd() *cobra.Command {
	var (
		title, body string
		clearBody   bool
	)

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change the title or body of a note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseNoteID(args[0])
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			if !flags.Changed("title") && !flags.Changed("body") && !clearBody {
				return ErrNothingToEdit
			}

			ctx, cancel := c.context(cmd)
			defer cancel()

			owner, err := c.owner(ctx)
			if err != nil {
				return err
			}

			in := api.NoteInput{Title: title}
			if !flags.Changed("title") {
				// Заголовок обязателен при обновлении, берем текущий.
				current, err := c.notes.FetchNote(ctx, owner, id)
				if err != nil {
					return err
				}
				in.Title = current.Title
			}
			switch {
			case clearBody:
				empty := ""
				in.Body = &empty
			case flags.Changed("body"):
				in.Body = &body
			}

			note, err := c.notes.Update(ctx, owner, id, in)
			if err != nil {
				return err
			}
			return c.render(cmd.OutOrStdout(), note, func(w io.Writer) error {
				return writeNote(w, note)
			})
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "new title")
	cmd.Flags().StringVarP(&body, "body", "b", "", "new body")
	cmd.Flags().BoolVar(&clearBody, "clear-body", false, "remove the body")
	cmd.MarkFlagsMutuallyExclusive("body", "clear-body")
	return cmd
}
