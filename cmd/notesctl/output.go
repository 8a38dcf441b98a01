package main

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"gopkg.in/yaml.v3"

	"gonotes/internal/client/api"
	"gonotes/internal/client/session"
)

// Форматы вывода.
const (
	outputText = "text"
	outputYAML = "yaml"
)

func (c *cli) render(w io.Writer, v any, text func(io.Writer) error) error {
	if c.output != outputYAML {
		return text(w)
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	return enc.Close()
}

func writeNotes(w io.Writer, notes []api.Note) error {
	if len(notes) == 0 {
		_, err := fmt.Fprintln(w, "No notes yet.")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tUPDATED")
	for _, n := range notes {
		fmt.Fprintf(tw, "%d\t%s\t%s\n", n.ID, n.Title, n.UpdatedAt.Local().Format(time.DateTime))
	}
	return tw.Flush()
}

func writeNote(w io.Writer, n *api.Note) error {
	body := ""
	if n.Body != nil {
		body = *n.Body
	}
	_, err := fmt.Fprintf(w, "#%d %s\ncreated: %s\nupdated: %s\n\n%s\n",
		n.ID, n.Title,
		n.CreatedAt.Local().Format(time.DateTime),
		n.UpdatedAt.Local().Format(time.DateTime),
		body)
	return err
}

func writeUser(w io.Writer, u *session.User) error {
	_, err := fmt.Fprintf(w, "%s <%s> (id %d)\n", u.Name, u.Email, u.ID)
	return err
}

// formatError превращает ошибку API в текст с ошибками полей.
func formatError(err error) string {
	var apiErr *api.Error
	if !errors.As(err, &apiErr) || len(apiErr.Fields) == 0 {
		return "Error: " + err.Error()
	}

	fields := make([]string, 0, len(apiErr.Fields))
	for field := range apiErr.Fields {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	var b strings.Builder
	b.WriteString("Error: " + apiErr.Message)
	for _, field := range fields {
		for _, msg := range apiErr.Fields[field] {
			fmt.Fprintf(&b, "\n  %s: %s", field, msg)
		}
	}
	return b.String()
}
