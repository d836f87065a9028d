package commands

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okra-platform/xsd2ts/internal/codegen"
	"github.com/okra-platform/xsd2ts/internal/convert"
	"github.com/okra-platform/xsd2ts/internal/schema"
)

const personXSD = `<xs:schema xmlns:xs="http://www.w3.org/2001/XMLSchema">
  <xs:complexType name="Person">
    <xs:sequence>
      <xs:element name="name" type="xs:string"/>
      <xs:element name="age" type="xs:int" minOccurs="0"/>
    </xs:sequence>
  </xs:complexType>
</xs:schema>`

func newTestController(flags *Flags) (*Controller, *bytes.Buffer) {
	out := &bytes.Buffer{}
	return &Controller{
		Flags:  flags,
		Logger: zerolog.Nop(),
		Out:    out,
	}, out
}

func writeProject(t *testing.T, config string, schemas map[string]string) string {
	t.Helper()
	root := t.TempDir()
	if config != "" {
		require.NoError(t, os.WriteFile(filepath.Join(root, "xsd2ts.json"), []byte(config), 0644))
	}
	require.NoError(t, os.MkdirAll(filepath.Join(root, "xsd"), 0755))
	for name, content := range schemas {
		require.NoError(t, os.WriteFile(filepath.Join(root, "xsd", name), []byte(content), 0644))
	}
	return root
}

func TestController_loadConfig(t *testing.T) {
	root := writeProject(t, `{"input": "./xsd", "output": "./types", "language": "ts"}`, nil)
	configPath := filepath.Join(root, "xsd2ts.json")

	tests := []struct {
		name  string
		flags *Flags
		check func(t *testing.T, c *Controller)
	}{
		{
			name:  "config paths resolve against the config directory",
			flags: &Flags{ConfigPath: configPath},
			check: func(t *testing.T, c *Controller) {
				cfg, err := c.loadConfig()
				require.NoError(t, err)
				assert.Equal(t, filepath.Join(root, "xsd"), cfg.Input)
				assert.Equal(t, filepath.Join(root, "types"), cfg.Output)
				assert.Equal(t, "ts", cfg.Language)
				assert.True(t, cfg.TimestampEnabled())
			},
		},
		{
			name: "flags override config values",
			flags: &Flags{
				ConfigPath:  configPath,
				Output:      "elsewhere",
				Language:    "json",
				NoTimestamp: true,
				Comments:    true,
			},
			check: func(t *testing.T, c *Controller) {
				cfg, err := c.loadConfig()
				require.NoError(t, err)
				assert.Equal(t, "elsewhere", cfg.Output)
				assert.Equal(t, "json", cfg.Language)
				assert.False(t, cfg.TimestampEnabled())
				assert.True(t, cfg.Comments)
			},
		},
		{
			name:  "overrides are validated",
			flags: &Flags{ConfigPath: configPath, Input: "same", Output: "same"},
			check: func(t *testing.T, c *Controller) {
				_, err := c.loadConfig()
				require.Error(t, err)
				assert.Contains(t, err.Error(), "invalid configuration")
			},
		},
		{
			name:  "missing explicit config file",
			flags: &Flags{ConfigPath: filepath.Join(root, "nope.json")},
			check: func(t *testing.T, c *Controller) {
				_, err := c.loadConfig()
				require.Error(t, err)
				assert.Contains(t, err.Error(), "failed to load config")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestController(tt.flags)
			tt.check(t, c)
		})
	}
}

func TestController_loadConfigDefaults(t *testing.T) {
	// Test: without any config file the defaults apply
	t.Chdir(t.TempDir())

	c, _ := newTestController(nil)
	cfg, err := c.loadConfig()
	require.NoError(t, err)
	assert.Equal(t, "./xsd-files", cfg.Input)
	assert.Equal(t, "./output", cfg.Output)
	assert.Equal(t, "typescript", cfg.Language)
}

func TestController_ConvertDir(t *testing.T) {
	root := writeProject(t, `{"input": "./xsd", "output": "./types"}`, map[string]string{
		"person.xsd": personXSD,
	})

	c, out := newTestController(&Flags{ConfigPath: filepath.Join(root, "xsd2ts.json"), NoTimestamp: true})
	require.NoError(t, c.Convert(context.Background(), nil))

	data, err := os.ReadFile(filepath.Join(root, "types", "person.ts"))
	require.NoError(t, err)
	assert.Equal(t, "// Generated TypeScript definitions from XSD\n\nexport interface Person {\n  name: string;\n  age?: number;\n}\n", string(data))
	assert.Contains(t, out.String(), "Generated 1 file(s)")
}

func TestController_ConvertDirEmpty(t *testing.T) {
	// Test: an empty input directory is reported but is not a failure
	root := writeProject(t, `{"input": "./xsd", "output": "./types"}`, nil)

	c, out := newTestController(&Flags{ConfigPath: filepath.Join(root, "xsd2ts.json")})
	require.NoError(t, c.Convert(context.Background(), nil))
	assert.Contains(t, out.String(), "No XSD files found")
}

func TestController_ConvertDirFailure(t *testing.T) {
	// Test: a failed document fails the run while the others are written
	root := writeProject(t, `{"input": "./xsd", "output": "./types"}`, map[string]string{
		"person.xsd": personXSD,
		"bad.xsd":    `<definitions/>`,
	})

	c, _ := newTestController(&Flags{ConfigPath: filepath.Join(root, "xsd2ts.json")})
	err := c.Convert(context.Background(), nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, schema.ErrSchemaNotFound)

	_, statErr := os.Stat(filepath.Join(root, "types", "person.ts"))
	assert.NoError(t, statErr)
}

func TestController_ConvertFiles(t *testing.T) {
	t.Chdir(t.TempDir())
	root := writeProject(t, "", map[string]string{
		"person.xsd": personXSD,
		"bad.xsd":    `<xs:schema`,
	})
	outDir := filepath.Join(root, "gen")
	good := filepath.Join(root, "xsd", "person.xsd")
	bad := filepath.Join(root, "xsd", "bad.xsd")

	c, out := newTestController(&Flags{
		Input:    filepath.Join(root, "xsd"),
		Output:   outDir,
		Language: "json",
	})
	err := c.Convert(context.Background(), []string{good, bad})

	var convErr *convert.ConversionError
	require.True(t, errors.As(err, &convErr))
	require.Len(t, convErr.Failures, 1)
	assert.Equal(t, bad, convErr.Failures[0].Path)

	_, statErr := os.Stat(filepath.Join(outDir, "person.json"))
	assert.NoError(t, statErr)
	assert.Contains(t, out.String(), "person.json")
}

func TestController_ConvertStdout(t *testing.T) {
	t.Chdir(t.TempDir())
	root := writeProject(t, "", map[string]string{"person.xsd": personXSD})

	c, out := newTestController(&Flags{
		Input:       filepath.Join(root, "xsd"),
		Output:      filepath.Join(root, "gen"),
		NoTimestamp: true,
		Stdout:      true,
	})
	require.NoError(t, c.Convert(context.Background(), []string{filepath.Join(root, "xsd", "person.xsd")}))

	assert.Contains(t, out.String(), "export interface Person {")
	_, statErr := os.Stat(filepath.Join(root, "gen"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestController_ConvertUnsupportedLanguage(t *testing.T) {
	t.Chdir(t.TempDir())
	c, _ := newTestController(&Flags{Input: "in", Output: "out", Language: "cobol"})
	err := c.Convert(context.Background(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported language: cobol")
}

func TestController_Languages(t *testing.T) {
	c, out := newTestController(nil)
	require.NoError(t, c.Languages(context.Background()))
	assert.Equal(t, "json\nts\ntypescript\n", out.String())

	// Test: a custom registry is listed instead of the default one
	c.Registry = codegen.NewRegistry()
	out.Reset()
	require.NoError(t, c.Languages(context.Background()))
	assert.Empty(t, out.String())
}
