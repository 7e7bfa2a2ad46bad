package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/urfave/cli/v3"

	"github.com/syssam/relink/load"
	"github.com/syssam/relink/resolve"
)

func checkCommand() *cli.Command {
	return &cli.Command{
		Name:      "check",
		Usage:     "Resolve a declaration file and print warnings",
		ArgsUsage: "<declarations file>",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "watch",
				Aliases: []string{"w"},
				Usage:   "re-check whenever the file changes",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			file := cmd.Args().First()
			if file == "" {
				return fmt.Errorf("missing declarations file argument")
			}
			if !cmd.Bool("watch") {
				return check(file)
			}
			w, err := newWatcher(file, func() error { return check(file) })
			if err != nil {
				return err
			}
			defer w.Close()
			return w.Start(ctx)
		},
	}
}

// check resolves the declaration file and prints diagnostics.
func check(file string) error {
	s, err := resolveFile(file)
	if err != nil {
		return err
	}
	for _, w := range s.Warnings {
		color.Yellow("warning: %s", w)
	}
	entities := s.Entities()
	relationships := 0
	for _, e := range entities {
		relationships += len(e.Relationships)
	}
	color.Green("ok: %d entities, %d relationship ends, %d warnings", len(entities), relationships, len(s.Warnings))
	return nil
}

// resolveFile reads a JSON or YAML declaration file and resolves it.
func resolveFile(file string) (*resolve.Schema, error) {
	buf, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	var entities []*load.Entity
	switch filepath.Ext(file) {
	case ".json":
		entities, err = load.UnmarshalEntities(buf)
	default:
		entities, err = load.UnmarshalEntitiesYAML(buf)
	}
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", file, err)
	}
	return resolve.Resolve(entities)
}
