package main

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/urfave/cli/v3"
)

func snapshotCommand() *cli.Command {
	return &cli.Command{
		Name:      "snapshot",
		Usage:     "Resolve a declaration file and write a msgpack schema snapshot",
		ArgsUsage: "<declarations file>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "out",
				Aliases:  []string{"o"},
				Usage:    "snapshot output file",
				Required: true,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			file := cmd.Args().First()
			if file == "" {
				return fmt.Errorf("missing declarations file argument")
			}
			s, err := resolveFile(file)
			if err != nil {
				return err
			}
			for _, w := range s.Warnings {
				color.Yellow("warning: %s", w)
			}
			buf, err := s.EncodeSnapshot()
			if err != nil {
				return err
			}
			out := cmd.String("out")
			if err := os.WriteFile(out, buf, 0o644); err != nil {
				return err
			}
			color.Green("ok: snapshot written to %s (%d bytes)", out, len(buf))
			return nil
		},
	}
}
