package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/okra-platform/xsd2ts/internal/config"
)

// ErrConfigExists is returned when init would overwrite a config file
var ErrConfigExists = errors.New("config file already exists")

type InitOptions struct {
	Input    string
	Output   string
	Language string
	FileName string
}

type FileSystem interface {
	Stat(name string) (os.FileInfo, error)
	MkdirAll(path string, perm os.FileMode) error
	WriteFile(name string, data []byte, perm os.FileMode) error
}

type osFileSystem struct{}

func (fs *osFileSystem) Stat(name string) (os.FileInfo, error) {
	return os.Stat(name)
}

func (fs *osFileSystem) MkdirAll(path string, perm os.FileMode) error {
	return os.MkdirAll(path, perm)
}

func (fs *osFileSystem) WriteFile(name string, data []byte, perm os.FileMode) error {
	return os.WriteFile(name, data, perm)
}

// InitCommand asks for the project layout and writes a config file
type InitCommand struct {
	filesystem FileSystem
	dir        string
	languages  []string
	out        Output
	// For testing: if set, skip prompting
	testOptions *InitOptions
}

func NewInitCommand(dir string, languages []string) *InitCommand {
	return &InitCommand{
		filesystem: &osFileSystem{},
		dir:        dir,
		languages:  languages,
		out:        &defaultOutput{},
	}
}

func (c *Controller) Init(ctx context.Context) error {
	dir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current directory: %w", err)
	}

	cmd := NewInitCommand(dir, c.registry().Languages())
	return cmd.Run(ctx)
}

func (ic *InitCommand) Run(ctx context.Context) error {
	return ic.RunWithOptions(ctx)
}

func (ic *InitCommand) RunWithOptions(ctx context.Context, opts ...tea.ProgramOption) error {
	if existing := ic.existingConfig(); existing != "" {
		return fmt.Errorf("%w: %s", ErrConfigExists, existing)
	}

	var options *InitOptions
	var err error

	// For testing: use provided options instead of prompting
	if ic.testOptions != nil {
		options = ic.testOptions
	} else {
		options, err = ic.promptInitOptions(opts...)
		if err != nil {
			return fmt.Errorf("failed to get init options: %w", err)
		}
	}

	cfg := config.Default()
	cfg.Input = options.Input
	cfg.Output = options.Output
	cfg.Language = options.Language
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid options: %w", err)
	}

	fileName := options.FileName
	if fileName == "" {
		fileName = config.FileNames[0]
	}
	path := filepath.Join(ic.dir, fileName)

	data, err := cfg.Marshal(path)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := ic.filesystem.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	inputDir := resolvePath(ic.dir, cfg.Input)
	if err := ic.filesystem.MkdirAll(inputDir, 0755); err != nil {
		return fmt.Errorf("failed to create input directory: %w", err)
	}

	ic.out.Printf("✅ Created %s\n", path)
	ic.out.Printf("📁 Put your XSD files in %s\n", cfg.Input)
	return nil
}

func (ic *InitCommand) existingConfig() string {
	for _, name := range config.FileNames {
		path := filepath.Join(ic.dir, name)
		if _, err := ic.filesystem.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

func (ic *InitCommand) promptInitOptions(opts ...tea.ProgramOption) (*InitOptions, error) {
	defaults := config.Default()
	options := &InitOptions{
		Input:    defaults.Input,
		Output:   defaults.Output,
		Language: defaults.Language,
		FileName: config.FileNames[0],
	}

	form := ic.createInitForm(options)

	if len(opts) > 0 {
		// For testing: run with provided options
		program := tea.NewProgram(form, opts...)
		if _, err := program.Run(); err != nil {
			return nil, err
		}
	} else {
		if err := form.Run(); err != nil {
			return nil, err
		}
	}

	return options, nil
}

func (ic *InitCommand) createInitForm(options *InitOptions) *huh.Form {
	languages := make([]huh.Option[string], 0, len(ic.languages))
	for _, lang := range ic.languages {
		languages = append(languages, huh.NewOption(lang, lang))
	}

	formats := make([]huh.Option[string], 0, len(config.FileNames))
	for _, name := range config.FileNames {
		formats = append(formats, huh.NewOption(name, name))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Input directory").
				Description("Where your XSD files live").
				Value(&options.Input).
				Validate(validateDir),

			huh.NewInput().
				Title("Output directory").
				Description("Where generated files are written").
				Value(&options.Output).
				Validate(func(s string) error {
					if err := validateDir(s); err != nil {
						return err
					}
					if filepath.Clean(s) == filepath.Clean(options.Input) {
						return fmt.Errorf("output directory must differ from the input directory")
					}
					return nil
				}),

			huh.NewSelect[string]().
				Title("Language").
				Description("Target language of the generated files").
				Options(languages...).
				Value(&options.Language),

			huh.NewSelect[string]().
				Title("Config file").
				Options(formats...).
				Value(&options.FileName),
		),
	)
}

func validateDir(s string) error {
	if s == "" {
		return fmt.Errorf("directory cannot be empty")
	}
	return nil
}
