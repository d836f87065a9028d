// Package commands contains the CLI commands for the application
package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/okra-platform/xsd2ts/internal/codegen"
	"github.com/okra-platform/xsd2ts/internal/config"
	"github.com/okra-platform/xsd2ts/internal/convert"
)

// Flags holds values from the command line. Non-empty values override the
// config file.
type Flags struct {
	LogLevel    string
	ConfigPath  string
	Input       string
	Output      string
	Language    string
	NoTimestamp bool
	Comments    bool
	Stdout      bool
}

type Controller struct {
	Flags    *Flags
	Logger   zerolog.Logger
	Registry *codegen.Registry
	Out      io.Writer
}

func (c *Controller) registry() *codegen.Registry {
	if c.Registry == nil {
		return codegen.DefaultRegistry
	}
	return c.Registry
}

func (c *Controller) out() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

func (c *Controller) flags() *Flags {
	if c.Flags == nil {
		return &Flags{}
	}
	return c.Flags
}

// loadConfig reads the config file, falling back to defaults when none
// exists, then applies command line overrides. Paths from a config file are
// relative to the directory holding it; paths from flags are relative to the
// working directory.
func (c *Controller) loadConfig() (*config.Config, error) {
	flags := c.flags()

	var (
		cfg  *config.Config
		root string
		err  error
	)
	if flags.ConfigPath != "" {
		cfg, err = config.LoadConfigFromPath(flags.ConfigPath)
		root = filepath.Dir(flags.ConfigPath)
	} else {
		cfg, root, err = config.LoadConfig()
		if errors.Is(err, config.ErrConfigNotFound) {
			c.Logger.Debug().Msg("no config file found, using defaults")
			cfg, root, err = config.Default(), "", nil
		}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if root != "" {
		cfg.Input = resolvePath(root, cfg.Input)
		cfg.Output = resolvePath(root, cfg.Output)
	}

	if flags.Input != "" {
		cfg.Input = flags.Input
	}
	if flags.Output != "" {
		cfg.Output = flags.Output
	}
	if flags.Language != "" {
		cfg.Language = flags.Language
	}
	if flags.NoTimestamp {
		disabled := false
		cfg.Timestamp = &disabled
	}
	if flags.Comments {
		cfg.Comments = true
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func resolvePath(root, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(root, path)
}

func (c *Controller) newConverter(cfg *config.Config) (*convert.Converter, error) {
	gen, err := c.registry().Get(cfg.Language, codegen.Options{
		Timestamp:       cfg.TimestampEnabled(),
		IncludeComments: cfg.Comments,
		Logger:          c.Logger,
	})
	if err != nil {
		return nil, err
	}

	return convert.NewConverter(gen, c.Logger).WithConcurrency(cfg.Concurrency), nil
}

// Convert converts the given files, or the configured input directory when
// no files are given.
func (c *Controller) Convert(ctx context.Context, files []string) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}

	conv, err := c.newConverter(cfg)
	if err != nil {
		return err
	}

	if len(files) == 0 {
		return c.convertDir(ctx, conv, cfg)
	}
	if c.flags().Stdout {
		return c.printFiles(conv, files)
	}
	return c.convertFiles(ctx, conv, cfg, files)
}

func (c *Controller) convertDir(ctx context.Context, conv *convert.Converter, cfg *config.Config) error {
	written, err := conv.ConvertDir(ctx, cfg.Input, cfg.Output)
	if errors.Is(err, convert.ErrNoInputFiles) {
		fmt.Fprintf(c.out(), "No XSD files found in %s\n", cfg.Input)
		return nil
	}

	if len(written) > 0 {
		fmt.Fprintf(c.out(), "✅ Generated %d file(s) in %s\n", len(written), cfg.Output)
	}
	return err
}

func (c *Controller) convertFiles(ctx context.Context, conv *convert.Converter, cfg *config.Config, files []string) error {
	if err := os.MkdirAll(cfg.Output, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	var failures []convert.Failure
	for _, file := range files {
		written, err := conv.ConvertFile(ctx, file, cfg.Output)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			failures = append(failures, convert.Failure{Path: file, Err: err})
			continue
		}
		fmt.Fprintf(c.out(), "✅ %s -> %s\n", file, written)
	}

	if len(failures) > 0 {
		return &convert.ConversionError{Failures: failures}
	}
	return nil
}

func (c *Controller) printFiles(conv *convert.Converter, files []string) error {
	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", file, err)
		}

		out, err := conv.Convert(data)
		if err != nil {
			return fmt.Errorf("failed to convert %s: %w", file, err)
		}

		if _, err := c.out().Write(out); err != nil {
			return err
		}
	}
	return nil
}

// Languages prints the registered generator names, one per line
func (c *Controller) Languages(ctx context.Context) error {
	for _, lang := range c.registry().Languages() {
		fmt.Fprintln(c.out(), lang)
	}
	return nil
}
