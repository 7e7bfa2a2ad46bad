// Package main provides the relcheck CLI tool: it resolves entity
// relationship declaration files and reports resolution diagnostics.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"
)

var version = "dev"

func main() {
	app := &cli.Command{
		Name:    "relcheck",
		Version: version,
		Usage:   "Relationship declaration checker",
		Commands: []*cli.Command{
			checkCommand(),
			snapshotCommand(),
		},
	}

	err := app.Run(context.Background(), os.Args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
