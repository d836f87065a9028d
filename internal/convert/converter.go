// Package convert drives XSD conversion over files and directories.
package convert

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/okra-platform/xsd2ts/internal/codegen"
	"github.com/okra-platform/xsd2ts/internal/schema"
)

// InputExtension is the suffix of files picked up from the input directory
const InputExtension = ".xsd"

// FileSystem defines the file system operations the converter needs
type FileSystem interface {
	ReadFile(path string) ([]byte, error)
	WriteFile(path string, data []byte, perm os.FileMode) error
	ReadDir(path string) ([]os.DirEntry, error)
	MkdirAll(path string, perm os.FileMode) error
}

type osFileSystem struct{}

func (osFileSystem) ReadFile(path string) ([]byte, error) { return os.ReadFile(path) }
func (osFileSystem) WriteFile(path string, data []byte, perm os.FileMode) error {
	return os.WriteFile(path, data, perm)
}
func (osFileSystem) ReadDir(path string) ([]os.DirEntry, error) { return os.ReadDir(path) }
func (osFileSystem) MkdirAll(path string, perm os.FileMode) error {
	return os.MkdirAll(path, perm)
}

// Converter turns XSD documents into generated files. Each document is
// converted independently, so directory runs fan out over a bounded pool.
type Converter struct {
	generator   codegen.Generator
	fs          FileSystem
	logger      zerolog.Logger
	concurrency int
}

// NewConverter creates a converter writing through the OS file system
func NewConverter(generator codegen.Generator, logger zerolog.Logger) *Converter {
	return &Converter{
		generator:   generator,
		fs:          osFileSystem{},
		logger:      logger.With().Str("component", "converter").Logger(),
		concurrency: 1,
	}
}

// WithFileSystem replaces the file system, mainly for tests
func (c *Converter) WithFileSystem(fs FileSystem) *Converter {
	c.fs = fs
	return c
}

// WithConcurrency bounds how many documents are converted at once
func (c *Converter) WithConcurrency(n int) *Converter {
	if n < 1 {
		n = 1
	}
	c.concurrency = n
	return c
}

// Convert parses XSD text and renders it with the configured generator
func (c *Converter) Convert(data []byte) ([]byte, error) {
	if c.generator == nil {
		return nil, ErrNilGenerator
	}

	s, err := schema.ParseSchema(data)
	if err != nil {
		return nil, err
	}

	return c.generator.Generate(s)
}

// OutputPath maps an input file to its output file: the input stem plus
// the generator's extension, inside outputDir.
func (c *Converter) OutputPath(inputPath, outputDir string) string {
	stem := strings.TrimSuffix(filepath.Base(inputPath), InputExtension)
	return filepath.Join(outputDir, stem+c.generator.FileExtension())
}

// ConvertFile converts a single document and returns the written path.
// Nothing is written when conversion fails.
func (c *Converter) ConvertFile(ctx context.Context, inputPath, outputDir string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	c.logger.Info().Str("input", inputPath).Msg("processing XSD file")

	data, err := c.fs.ReadFile(inputPath)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", inputPath, err)
	}

	out, err := c.Convert(data)
	if err != nil {
		return "", fmt.Errorf("failed to convert %s: %w", inputPath, err)
	}

	outputPath := c.OutputPath(inputPath, outputDir)
	if err := c.fs.WriteFile(outputPath, out, 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", outputPath, err)
	}

	c.logger.Info().Str("output", outputPath).Msg("generated file")
	return outputPath, nil
}

// ConvertDir converts every .xsd file directly inside inputDir. A failed
// document does not stop the others; failures are returned together as a
// *ConversionError next to the paths that were written.
func (c *Converter) ConvertDir(ctx context.Context, inputDir, outputDir string) ([]string, error) {
	c.logger.Info().
		Str("input", inputDir).
		Str("output", outputDir).
		Msg("starting XSD conversion")

	if err := c.fs.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	inputs, err := c.findInputs(inputDir)
	if err != nil {
		return nil, err
	}
	if len(inputs) == 0 {
		c.logger.Warn().Str("input", inputDir).Msg("no XSD files found in input directory")
		return nil, ErrNoInputFiles
	}

	c.logger.Info().Int("count", len(inputs)).Strs("files", inputs).Msg("found XSD files")

	var (
		mu       sync.Mutex
		written  []string
		failures []Failure
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.concurrency)

	for _, name := range inputs {
		inputPath := filepath.Join(inputDir, name)
		g.Go(func() error {
			out, err := c.ConvertFile(gctx, inputPath, outputDir)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				c.logger.Error().Err(err).Str("input", inputPath).Msg("conversion failed")
				failures = append(failures, Failure{Path: inputPath, Err: err})
				return nil
			}
			written = append(written, out)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sort.Strings(written)
	if len(failures) > 0 {
		sort.Slice(failures, func(i, j int) bool { return failures[i].Path < failures[j].Path })
		return written, &ConversionError{Failures: failures}
	}

	c.logger.Info().Int("count", len(written)).Msg("conversion completed successfully")
	return written, nil
}

func (c *Converter) findInputs(inputDir string) ([]string, error) {
	entries, err := c.fs.ReadDir(inputDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read input directory: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), InputExtension) {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)
	return names, nil
}
