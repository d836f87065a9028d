package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/okra-platform/xsd2ts/internal/config"
	"github.com/okra-platform/xsd2ts/internal/watch"
)

// WatchDependencies for the watch command
type WatchDependencies struct {
	ServerFactory  WatchServerFactory
	SignalNotifier SignalNotifier
	Output         Output
}

// Interfaces for dependency injection
type WatchServerFactory interface {
	NewServer(cfg *config.Config, converter watch.Converter, logger zerolog.Logger) WatchServer
}

type WatchServer interface {
	Start(ctx context.Context) error
}

type SignalNotifier interface {
	Notify(c chan<- os.Signal, sig ...os.Signal)
	Stop(c chan<- os.Signal)
}

type Output interface {
	Printf(format string, args ...any)
	Println(args ...any)
}

// Default implementations
type defaultWatchServerFactory struct{}

func (f *defaultWatchServerFactory) NewServer(cfg *config.Config, converter watch.Converter, logger zerolog.Logger) WatchServer {
	return watch.NewServer(converter, watch.Options{
		InputDir:  cfg.Input,
		OutputDir: cfg.Output,
		Patterns:  cfg.Watch.Patterns,
		Exclude:   cfg.Watch.Exclude,
	}, logger)
}

type defaultSignalNotifier struct{}

func (n *defaultSignalNotifier) Notify(c chan<- os.Signal, sig ...os.Signal) {
	signal.Notify(c, sig...)
}

func (n *defaultSignalNotifier) Stop(c chan<- os.Signal) {
	signal.Stop(c)
}

type defaultOutput struct{}

func (o *defaultOutput) Printf(format string, args ...any) {
	fmt.Printf(format, args...)
}

func (o *defaultOutput) Println(args ...any) {
	fmt.Println(args...)
}

// WatchCommand keeps converting schemas until interrupted
type WatchCommand struct {
	deps   WatchDependencies
	logger zerolog.Logger
}

// NewWatchCommand creates a new watch command with default dependencies
func NewWatchCommand(logger zerolog.Logger) *WatchCommand {
	return &WatchCommand{
		deps: WatchDependencies{
			ServerFactory:  &defaultWatchServerFactory{},
			SignalNotifier: &defaultSignalNotifier{},
			Output:         &defaultOutput{},
		},
		logger: logger,
	}
}

// WithDependencies allows injecting custom dependencies for testing
func (wc *WatchCommand) WithDependencies(deps WatchDependencies) *WatchCommand {
	wc.deps = deps
	return wc
}

// Execute runs the watch server until a signal arrives or ctx ends
func (wc *WatchCommand) Execute(ctx context.Context, cfg *config.Config, converter watch.Converter) error {
	wc.deps.Output.Printf("👀 Watching %s for XSD changes...\n", cfg.Input)
	wc.deps.Output.Printf("📁 Output: %s\n", cfg.Output)
	wc.deps.Output.Printf("🔧 Language: %s\n", cfg.Language)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	wc.deps.SignalNotifier.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer wc.deps.SignalNotifier.Stop(sigChan)

	go func() {
		select {
		case <-sigChan:
			wc.deps.Output.Println("\n\n👋 Stopping watcher...")
			cancel()
		case <-ctx.Done():
		}
	}()

	server := wc.deps.ServerFactory.NewServer(cfg, converter, wc.logger)
	if err := server.Start(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return fmt.Errorf("watch error: %w", err)
	}

	return nil
}

// Watch loads the configuration and runs the watch command
func (c *Controller) Watch(ctx context.Context) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}

	conv, err := c.newConverter(cfg)
	if err != nil {
		return err
	}

	return NewWatchCommand(c.Logger).Execute(ctx, cfg, conv)
}
