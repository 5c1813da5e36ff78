package commands

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gopkg.in/yaml.v3"

	"github.com/moasq/rnmodule/internal/config"
	"github.com/moasq/rnmodule/internal/options"
	"github.com/moasq/rnmodule/internal/process"
	"github.com/moasq/rnmodule/internal/templates"
	"github.com/moasq/rnmodule/internal/terminal"
	"github.com/moasq/rnmodule/internal/toolcheck"
)

func captureOutput(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := terminal.Out
	terminal.Out = &buf
	terminal.SetColor(false)
	t.Cleanup(func() { terminal.Out = prev })
	return &buf
}

func parseCreateFlags(t *testing.T, argv ...string) (*createFlags, *pflag.FlagSet) {
	t.Helper()
	f := &createFlags{}
	fs := pflag.NewFlagSet("create", pflag.ContinueOnError)
	f.register(fs)
	require.NoError(t, fs.Parse(argv))
	return f, fs
}

func TestCreateFlagsOnlyExplicitFlagsOverrideFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "module.yml")
	require.NoError(t, os.WriteFile(file, []byte("name: from file\nprefix: RN\nuseSwift: true\nplatforms: [ios]\n"), 0o644))

	f, fs := parseCreateFlags(t, "-f", file, "--use-kotlin", "--platforms", "android,ios")
	opts, err := f.resolve(fs, nil)
	require.NoError(t, err)

	assert.Equal(t, "from file", opts.Name)
	assert.Equal(t, "RN", opts.Prefix)
	assert.True(t, opts.UseSwift, "unset flag must not clear the file value")
	assert.True(t, opts.UseKotlin)
	assert.Equal(t, []string{"android", "ios"}, opts.Platforms)
}

func TestCreateFlagsNameArgumentWins(t *testing.T) {
	f, fs := parseCreateFlags(t, "--view", "--use-swift=false")
	opts, err := f.resolve(fs, []string{"maps"})
	require.NoError(t, err)
	assert.Equal(t, "maps", opts.Name)
	assert.True(t, opts.View)
	assert.False(t, opts.UseSwift)
	assert.Nil(t, opts.Platforms, "unset platforms keep the default")
}

func TestCreateFlagsBadOptionsFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "module.yml")
	require.NoError(t, os.WriteFile(file, []byte("name: x\nplatforms: [web]\n"), 0o644))

	f, fs := parseCreateFlags(t, "--options-file", file)
	_, err := f.resolve(fs, nil)
	var fe *options.FileError
	assert.True(t, errors.As(err, &fe))
}

func TestRunCreate(t *testing.T) {
	out := captureOutput(t)
	fsys := afero.NewMemMapFs()
	rec := process.NewRecorder()
	env := createEnv{fs: fsys, runner: rec, logger: zaptest.NewLogger(t), defaults: options.Defaults{AuthorName: "Ada"}}

	require.NoError(t, runCreate(context.Background(), env, "/work", options.Options{Name: "maps", Platforms: []string{"android"}}, true))

	text := out.String()
	assert.Contains(t, text, "full package name: react-native-maps")
	assert.Contains(t, text, "authorName: Ada")
	assert.Contains(t, text, "! com.reactlibrary is the default package identifier")
	assert.Contains(t, text, "+ android/build.gradle")
	assert.Contains(t, text, "✓ Created react-native-maps in "+filepath.Join("/work", "react-native-maps"))
	assert.NotContains(t, text, "postinstall")
	assert.Empty(t, rec.Commands())

	b, err := afero.ReadFile(fsys, "/work/react-native-maps/package.json")
	require.NoError(t, err)
	assert.Contains(t, string(b), `"name": "Ada"`)
}

func TestRunCreateWithExample(t *testing.T) {
	out := captureOutput(t)
	fsys := afero.NewMemMapFs()
	rec := process.NewRecorder().On("npx react-native init demo --template react-native@latest", process.Reply{
		Effect: func(c process.Command) error {
			return afero.WriteFile(fsys, filepath.Join(c.Dir, "demo", "package.json"), []byte(`{"name":"demo"}`), 0o644)
		},
	})
	env := createEnv{fs: fsys, runner: rec, logger: zaptest.NewLogger(t)}

	err := runCreate(context.Background(), env, "/work", options.Options{Name: "maps", GenerateExample: true, ExampleName: "demo"}, true)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Added postinstall script to "+filepath.Join("/work", "react-native-maps", "demo", "package.json"))

	b, err := afero.ReadFile(fsys, "/work/react-native-maps/demo/package.json")
	require.NoError(t, err)
	assert.Contains(t, string(b), `"postinstall"`)
}

func TestRunCreateSkipsPostinstall(t *testing.T) {
	captureOutput(t)
	fsys := afero.NewMemMapFs()
	env := createEnv{fs: fsys, runner: process.NewRecorder(), logger: zaptest.NewLogger(t)}

	// no package.json is created by the fake init, so patching would fail
	require.NoError(t, runCreate(context.Background(), env, "/work", options.Options{Name: "maps", GenerateExample: true}, false))
}

func TestRunCreateValidationError(t *testing.T) {
	out := captureOutput(t)
	env := createEnv{fs: afero.NewMemMapFs(), runner: process.NewRecorder(), logger: zaptest.NewLogger(t)}

	err := runCreate(context.Background(), env, "/work", options.Options{}, true)
	var ve *options.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "name", ve.Field)
	assert.Empty(t, out.String(), "nothing is printed before validation passes")
}

func TestRunAddScript(t *testing.T) {
	out := captureOutput(t)
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "/app/package.json", []byte(`{"name":"app"}`), 0o644))

	require.NoError(t, runAddScript(fsys, "/app/package.json", "start", "react-native start"))
	assert.Contains(t, out.String(), "scripts.start")

	err := runAddScript(fsys, "/nope/package.json", "a", "b")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestListTemplatesText(t *testing.T) {
	var buf bytes.Buffer
	err := listTemplates(&buf, options.Options{Name: "maps", Platforms: []string{"ios"}}, options.Defaults{}, false, "text")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.True(t, strings.HasPrefix(lines[0], "TEMPLATE"))
	assert.Contains(t, buf.String(), "react-native-maps.podspec")
	assert.NotContains(t, buf.String(), "android")
}

func TestListTemplatesYAML(t *testing.T) {
	var buf bytes.Buffer
	err := listTemplates(&buf, options.Options{Name: "maps", GenerateExample: true}, options.Defaults{}, true, "yaml")
	require.NoError(t, err)

	var entries []templates.Entry
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &entries))
	require.Len(t, entries, 3)
	assert.Equal(t, "example/App.js", entries[0].Path)
}

func TestListTemplatesUnknownFormat(t *testing.T) {
	err := listTemplates(&bytes.Buffer{}, options.Options{Name: "maps"}, options.Defaults{}, false, "xml")
	assert.ErrorContains(t, err, "unknown format")
}

func TestRunDoctorReportsEveryTool(t *testing.T) {
	out := captureOutput(t)
	rec := process.NewRecorder().On("npx react-native --version", process.Reply{Err: errors.New("exit status 1")})

	err := runDoctor(context.Background(), rec, toolcheck.DefaultTools())
	assert.ErrorContains(t, err, "1 of 2 prerequisites missing")
	assert.Equal(t, []string{"npx react-native --version", "yarn --version"}, rec.Commands())
	assert.Contains(t, out.String(), "✗ react-native")
	assert.Contains(t, out.String(), "✓ yarn")
	assert.Contains(t, out.String(), toolcheck.ExampleRemedy)
}

func TestShowConfig(t *testing.T) {
	out := captureOutput(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("authorName: Ada\n"), 0o644))
	v := config.New(path)
	s, err := config.Load(v)
	require.NoError(t, err)

	showConfig(v, s)
	assert.Contains(t, out.String(), "file: "+path)
	assert.Contains(t, out.String(), "authorName: Ada")
	assert.Contains(t, out.String(), "license: -")
}
