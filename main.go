package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/okra-platform/xsd2ts/internal/commands"
)

var (
	// Build information. Populated at build-time via -ldflags flag.
	version = "dev"
	commit  = "HEAD"
	date    = "now"
)

func build() string {
	short := commit
	if len(commit) > 7 {
		short = commit[:7]
	}

	return fmt.Sprintf("%s (%s) %s", version, short, date)
}

func main() {
	ctrl := &commands.Controller{
		Flags: &commands.Flags{},
	}

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	outputFlags := []cli.Flag{
		&cli.StringFlag{
			Name:        "input",
			Aliases:     []string{"i"},
			Usage:       "directory containing XSD files (overrides config)",
			Destination: &ctrl.Flags.Input,
		},
		&cli.StringFlag{
			Name:        "output",
			Aliases:     []string{"o"},
			Usage:       "directory for generated files (overrides config)",
			Destination: &ctrl.Flags.Output,
		},
		&cli.StringFlag{
			Name:        "language",
			Aliases:     []string{"l"},
			Usage:       "target language, see `xsd2ts languages`",
			Destination: &ctrl.Flags.Language,
		},
		&cli.BoolFlag{
			Name:        "no-timestamp",
			Usage:       "omit the \"Generated on\" header line",
			Destination: &ctrl.Flags.NoTimestamp,
		},
		&cli.BoolFlag{
			Name:        "comments",
			Usage:       "render xs:documentation as doc comments",
			Destination: &ctrl.Flags.Comments,
		},
	}

	app := &cli.Command{
		Name:    "xsd2ts",
		Usage:   "Generate TypeScript declarations from XML Schema (XSD) files",
		Version: build(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (debug, info, warn, error, fatal, panic)",
				Sources:     cli.EnvVars("XSD2TS_LOG_LEVEL"),
				Value:       "info",
				Destination: &ctrl.Flags.LogLevel,
			},
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "path to xsd2ts.json or xsd2ts.yaml (default: searched upward from the working directory)",
				Destination: &ctrl.Flags.ConfigPath,
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			level, err := zerolog.ParseLevel(c.String("log-level"))
			if err != nil {
				return ctx, fmt.Errorf("failed to parse log level: %w", err)
			}

			log.Logger = log.Level(level)
			ctrl.Logger = log.Logger

			return ctx, nil
		},
		Commands: []*cli.Command{
			{
				Name:      "convert",
				Usage:     "Convert XSD files to type declarations",
				ArgsUsage: "[file.xsd ...]",
				Flags: append(outputFlags, &cli.BoolFlag{
					Name:        "stdout",
					Usage:       "print generated text instead of writing files (requires file arguments)",
					Destination: &ctrl.Flags.Stdout,
				}),
				Action: func(ctx context.Context, c *cli.Command) error {
					return ctrl.Convert(ctx, c.Args().Slice())
				},
			},
			{
				Name:  "watch",
				Usage: "Convert the input directory and keep converting on changes",
				Flags: outputFlags,
				Action: func(ctx context.Context, c *cli.Command) error {
					return ctrl.Watch(ctx)
				},
			},
			{
				Name:  "init",
				Usage: "Create an xsd2ts config file interactively",
				Action: func(ctx context.Context, c *cli.Command) error {
					return ctrl.Init(ctx)
				},
			},
			{
				Name:  "languages",
				Usage: "List the available target languages",
				Action: func(ctx context.Context, c *cli.Command) error {
					return ctrl.Languages(ctx)
				},
			},
		},
	}

	ctx := context.Background()

	if err := app.Run(ctx, os.Args); err != nil {
		log.Fatal().Err(err).Msg("failed to run xsd2ts")
	}
}
