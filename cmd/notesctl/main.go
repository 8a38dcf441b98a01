// Package main реализует notesctl, консольный клиент сервиса заметок.
package main

import (
	"context"
	"fmt"
	"os"

	_ "github.com/joho/godotenv/autoload"
)

func main() {
	if err := execute(context.Background(), newCLI(), os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if _, writeErr := fmt.Fprintln(os.Stderr, formatError(err)); writeErr != nil {
			panic(writeErr)
		}
		os.Exit(1)
	}
}
