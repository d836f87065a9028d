package watch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	"github.com/okra-platform/xsd2ts/internal/convert"
)

// Converter is the part of convert.Converter the server drives
type Converter interface {
	ConvertDir(ctx context.Context, inputDir, outputDir string) ([]string, error)
	ConvertFile(ctx context.Context, inputPath, outputDir string) (string, error)
	OutputPath(inputPath, outputDir string) string
}

// Options configures a watch server
type Options struct {
	InputDir  string
	OutputDir string
	Patterns  []string
	Exclude   []string
}

// Server converts the input directory once, then keeps converting schema
// files as they change. Conversion failures are logged and never stop it.
type Server struct {
	converter Converter
	opts      Options
	logger    zerolog.Logger
}

// NewServer creates a new watch server
func NewServer(converter Converter, opts Options, logger zerolog.Logger) *Server {
	return &Server{
		converter: converter,
		opts:      opts,
		logger:    logger.With().Str("component", "watch-server").Logger(),
	}
}

// Start runs the initial conversion and watches until ctx is cancelled
func (s *Server) Start(ctx context.Context) error {
	if info, err := os.Stat(s.opts.InputDir); err != nil || !info.IsDir() {
		return fmt.Errorf("input directory not found: %s", s.opts.InputDir)
	}

	s.convertAll(ctx)

	watcher, err := NewFileWatcher(s.opts.Patterns, s.opts.Exclude, func(path string, op fsnotify.Op) {
		s.handleFileChange(ctx, path, op)
	})
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	watcher.WithLogger(s.logger)
	defer watcher.Close()

	if err := watcher.AddDirectory(s.opts.InputDir); err != nil {
		return fmt.Errorf("failed to watch input directory: %w", err)
	}

	s.logger.Info().Str("input", s.opts.InputDir).Msg("watching for changes")
	return watcher.Start(ctx)
}

func (s *Server) convertAll(ctx context.Context) {
	written, err := s.converter.ConvertDir(ctx, s.opts.InputDir, s.opts.OutputDir)
	switch {
	case errors.Is(err, convert.ErrNoInputFiles):
		s.logger.Info().Msg("no XSD files yet, waiting for changes")
	case err != nil:
		s.logger.Error().Err(err).Msg("initial conversion had failures")
	default:
		s.logger.Info().Int("count", len(written)).Msg("initial conversion done")
	}
}

func (s *Server) handleFileChange(ctx context.Context, path string, op fsnotify.Op) {
	// Outputs are named by file stem, so only the top level of the input
	// directory is converted, the same set ConvertDir picks up.
	if filepath.Dir(filepath.Clean(path)) != filepath.Clean(s.opts.InputDir) {
		s.logger.Debug().Str("input", path).Msg("ignoring schema outside the input directory")
		return
	}

	switch {
	case op&(fsnotify.Write|fsnotify.Create) != 0:
		if info, err := os.Stat(path); err != nil || info.IsDir() {
			return
		}
		if _, err := s.converter.ConvertFile(ctx, path, s.opts.OutputDir); err != nil {
			s.logger.Error().Err(err).Str("input", path).Msg("conversion failed")
		}

	case op&(fsnotify.Remove|fsnotify.Rename) != 0:
		output := s.converter.OutputPath(path, s.opts.OutputDir)
		if err := os.Remove(output); err != nil && !os.IsNotExist(err) {
			s.logger.Warn().Err(err).Str("output", output).Msg("failed to remove generated file")
			return
		}
		s.logger.Info().Str("input", path).Str("output", output).Msg("schema removed, dropped generated file")
	}
}
